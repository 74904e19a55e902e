package platform

import (
	"fmt"
	"slices"
)

type arena struct {
	window
	used []Region
}

// allocator is a first-fit allocator over the windows of the address map.
type allocator struct {
	arenas []*arena
}

func newAllocator(windows []window) *allocator {
	a := &allocator{}
	for _, w := range windows {
		a.arenas = append(a.arenas, &arena{window: w})
	}

	return a
}

func alignUp(addr, alignment uint64) uint64 {
	return (addr + alignment - 1) &^ (alignment - 1)
}

func (a *allocator) allocate(
	class MemoryClass,
	size, alignment uint64,
) (Region, error) {
	if alignment == 0 {
		alignment = 1
	}

	if alignment&(alignment-1) != 0 {
		return Region{}, fmt.Errorf("%w: %d", ErrBadAlignment, alignment)
	}

	if size == 0 {
		return Region{}, fmt.Errorf("%w: zero-sized request", ErrOutOfMemory)
	}

	for _, ar := range a.arenas {
		if ar.class != class {
			continue
		}

		if r, ok := ar.fit(size, alignment); ok {
			return r, nil
		}
	}

	return Region{}, fmt.Errorf("%w: %d bytes of %s aligned to %d",
		ErrOutOfMemory, size, class, alignment)
}

func (ar *arena) fit(size, alignment uint64) (Region, bool) {
	cursor := ar.base

	for i, used := range ar.used {
		start := alignUp(cursor, alignment)
		if start+size <= used.Base {
			return ar.insert(i, start, size, alignment), true
		}

		cursor = used.End()
	}

	start := alignUp(cursor, alignment)
	if start+size > ar.base+ar.size {
		return Region{}, false
	}

	return ar.insert(len(ar.used), start, size, alignment), true
}

func (ar *arena) insert(i int, start, size, alignment uint64) Region {
	r := Region{
		Base:      start,
		Length:    size,
		Class:     ar.class,
		Alignment: alignment,
	}

	ar.used = slices.Insert(ar.used, i, r)

	return r
}

func (a *allocator) release(r Region) error {
	for _, ar := range a.arenas {
		i := slices.Index(ar.used, r)
		if i >= 0 {
			ar.used = slices.Delete(ar.used, i, i+1)
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrUnknownRegion, r)
}
