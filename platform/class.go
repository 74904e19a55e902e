// Package platform simulates the single-core machine the copy strategies run
// on: a fast local memory, an external memory behind a write-back data cache,
// a bulk vector register unit, library copy primitives, an allocator and a
// cycle counter.
package platform

import "fmt"

// MemoryClass tells how a piece of memory is reached by the CPU.
type MemoryClass int

// The memory classes of the platform.
const (
	// FastLocal memory is tightly coupled to the CPU and not cached.
	FastLocal MemoryClass = iota

	// ExternalCached memory is reached over a bus through the data cache.
	ExternalCached
)

func (c MemoryClass) String() string {
	switch c {
	case FastLocal:
		return "FastLocal"
	case ExternalCached:
		return "ExternalCached"
	default:
		return fmt.Sprintf("MemoryClass(%d)", int(c))
	}
}

// A Region is a block of memory handed out by the allocator.
type Region struct {
	Base      uint64
	Length    uint64
	Class     MemoryClass
	Alignment uint64
}

// End returns the first address after the region.
func (r Region) End() uint64 {
	return r.Base + r.Length
}

// IsZero reports whether r is the zero Region.
func (r Region) IsZero() bool {
	return r == Region{}
}

func (r Region) String() string {
	return fmt.Sprintf("%s[0x%08x, +%d)", r.Class, r.Base, r.Length)
}

// window is one contiguous piece of the address map.
type window struct {
	class MemoryClass
	base  uint64
	size  uint64
}

func (w window) contains(addr, n uint64) bool {
	return addr >= w.base && addr+n >= addr && addr+n <= w.base+w.size
}
