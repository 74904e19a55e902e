package platform

import (
	"encoding/binary"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/sarchlab/copybench/mem"
	"github.com/sarchlab/copybench/mem/cache"
	"github.com/sarchlab/copybench/sim"
)

// Latency lists the number of cycles each kind of access takes. Accesses to
// ExternalCached memory through the CPU take the cache latencies instead.
type Latency struct {
	// LocalAccess is the cost of one CPU load or store to FastLocal memory.
	LocalAccess uint64

	// VectorLocal is the cost of one bulk register transfer to FastLocal
	// memory.
	VectorLocal uint64

	// VectorExternal is the cost of one bulk register transfer to
	// ExternalCached memory.
	VectorExternal uint64
}

// DefaultLatency returns the latencies of the default platform.
func DefaultLatency() Latency {
	return Latency{
		LocalAccess:    1,
		VectorLocal:    2,
		VectorExternal: 8,
	}
}

type memory struct {
	window
	storage *mem.Storage
}

// externalBacking lets the data cache reach the storage of a window.
type externalBacking struct {
	m *memory
}

func (b externalBacking) Read(addr, size uint64) []byte {
	data, err := b.m.storage.Read(addr-b.m.base, size)
	if err != nil {
		log.Panicf("cache line fill at 0x%x: %v", addr, err)
	}

	return data
}

func (b externalBacking) Write(addr uint64, data []byte) {
	if err := b.m.storage.Write(addr-b.m.base, data); err != nil {
		log.Panicf("cache write-back at 0x%x: %v", addr, err)
	}
}

// Platform is the simulated machine.
//
// Memory and cache state are guarded by a mutex so that the offload engine,
// which runs on its own goroutine, can access memory while the CPU side waits.
// The cycle counter is atomic.
type Platform struct {
	mu       sync.Mutex
	memories []*memory
	dcache   *cache.Cache
	latency  Latency
	vector   vectorRegisters
	alloc    *allocator

	cycles   atomic.Uint64
	barriers atomic.Uint64

	freq         sim.Freq
	fallbackFreq sim.Freq
	warnOnce     sync.Once
}

func (p *Platform) find(addr, n uint64) (*memory, bool) {
	for _, m := range p.memories {
		if m.contains(addr, n) {
			return m, true
		}
	}

	return nil, false
}

func (p *Platform) mustFind(addr, n uint64) *memory {
	m, ok := p.find(addr, n)
	if !ok {
		log.Panicf("access to unmapped memory [0x%x, +%d)", addr, n)
	}

	return m
}

// ClassOf returns the memory class of the window holding addr.
func (p *Platform) ClassOf(addr uint64) (MemoryClass, bool) {
	m, ok := p.find(addr, 1)
	if !ok {
		return ExternalCached, false
	}

	return m.class, true
}

// CacheLineSize returns the line size of the data cache.
func (p *Platform) CacheLineSize() int {
	return int(p.dcache.LineSize())
}

// CacheStats returns the statistics of the data cache.
func (p *Platform) CacheStats() cache.Statistics {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.dcache.Stats()
}

// ResetCacheStats clears the statistics of the data cache.
func (p *Platform) ResetCacheStats() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.dcache.ResetStats()
}

// Now returns the current value of the cycle counter.
func (p *Platform) Now() uint64 {
	return p.cycles.Load()
}

// Advance moves the cycle counter forward.
func (p *Platform) Advance(cycles uint64) {
	p.cycles.Add(cycles)
}

// CPUFrequencyHz returns the CPU clock frequency. If the platform does not
// know its frequency, the last known value is returned and a warning is
// logged once.
func (p *Platform) CPUFrequencyHz() uint64 {
	if p.freq > 0 {
		return p.freq.InHz()
	}

	p.warnOnce.Do(func() {
		log.Printf("warning: CPU frequency unknown, using cached %.0f Hz",
			float64(p.fallbackFreq))
	})

	return p.fallbackFreq.InHz()
}

// cpuRead performs a CPU load. Must be called with p.mu held.
func (p *Platform) cpuRead(addr uint64, buf []byte) {
	m := p.mustFind(addr, uint64(len(buf)))

	if m.class == ExternalCached {
		p.cycles.Add(p.dcache.Read(addr, buf))
		return
	}

	data, err := m.storage.Read(addr-m.base, uint64(len(buf)))
	if err != nil {
		log.Panic(err)
	}

	copy(buf, data)
	p.cycles.Add(p.latency.LocalAccess)
}

// cpuWrite performs a CPU store. Must be called with p.mu held.
func (p *Platform) cpuWrite(addr uint64, data []byte) {
	m := p.mustFind(addr, uint64(len(data)))

	if m.class == ExternalCached {
		p.cycles.Add(p.dcache.Write(addr, data))
		return
	}

	if err := m.storage.Write(addr-m.base, data); err != nil {
		log.Panic(err)
	}

	p.cycles.Add(p.latency.LocalAccess)
}

// Load performs a little-endian CPU load of size bytes (1, 2, 4 or 8).
func (p *Platform) Load(addr uint64, size int) uint64 {
	var buf [8]byte

	p.mu.Lock()
	p.cpuRead(addr, buf[:size])
	p.mu.Unlock()

	return binary.LittleEndian.Uint64(buf[:])
}

// Store performs a little-endian CPU store of the low size bytes of v.
func (p *Platform) Store(addr uint64, size int, v uint64) {
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], v)

	p.mu.Lock()
	p.cpuWrite(addr, buf[:size])
	p.mu.Unlock()
}

// ReadBytes returns n bytes at addr as the CPU sees them.
func (p *Platform) ReadBytes(addr, n uint64) []byte {
	buf := make([]byte, n)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.cpuRead(addr, buf)

	return buf
}

// WriteBytes stores data at addr through the CPU.
func (p *Platform) WriteBytes(addr uint64, data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cpuWrite(addr, data)
}

// FillBytes stores n copies of value at addr through the CPU.
func (p *Platform) FillBytes(addr, n uint64, value byte) {
	data := make([]byte, n)
	for i := range data {
		data[i] = value
	}

	p.WriteBytes(addr, data)
}

// FlushDCache writes back the dirty cache lines overlapping the range. It is
// a no-op for memory that is not cached.
func (p *Platform) FlushDCache(addr, n uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cycles.Add(p.dcache.FlushRange(addr, n))
}

// InvalidateDCache drops the cache lines overlapping the range without
// writing them back.
func (p *Platform) InvalidateDCache(addr, n uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cycles.Add(p.dcache.InvalidateRange(addr, n))
}

// Barrier orders the memory accesses before it against those after it.
func (p *Platform) Barrier(addr, n uint64) {
	p.mu.Lock()
	p.barriers.Add(1)
	p.mu.Unlock()
}

// Barriers returns the number of barriers issued so far.
func (p *Platform) Barriers() uint64 {
	return p.barriers.Load()
}

// BusRead reads memory as a bus master that bypasses the data cache.
func (p *Platform) BusRead(addr, n uint64) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.find(addr, n)
	if !ok {
		return nil, fmt.Errorf("%w: bus read [0x%x, +%d)", ErrUnmapped, addr, n)
	}

	return m.storage.Read(addr-m.base, n)
}

// BusWrite writes memory as a bus master that bypasses the data cache.
func (p *Platform) BusWrite(addr uint64, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.find(addr, uint64(len(data)))
	if !ok {
		return fmt.Errorf("%w: bus write [0x%x, +%d)",
			ErrUnmapped, addr, len(data))
	}

	return m.storage.Write(addr-m.base, data)
}

// Allocate reserves size bytes of the given class aligned to alignment.
func (p *Platform) Allocate(
	class MemoryClass,
	size, alignment uint64,
) (Region, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.alloc.allocate(class, size, alignment)
}

// Release returns a region to the allocator.
func (p *Platform) Release(r Region) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.alloc.release(r)
}
