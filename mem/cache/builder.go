package cache

import (
	"log"

	"github.com/sarchlab/copybench/mem"
	"github.com/sarchlab/copybench/mem/cache/internal/tagging"
)

// A Builder can build caches.
type Builder struct {
	byteSize         uint64
	numWays          int
	lineSize         uint64
	hitLatency       uint64
	fillLatency      uint64
	writeBackLatency uint64
	backing          BackingStore
}

// MakeBuilder returns a builder with the geometry of a small MCU data cache:
// 32 KiB, 8 ways, 32-byte lines.
func MakeBuilder() Builder {
	return Builder{
		byteSize:         32 * mem.KB,
		numWays:          8,
		lineSize:         32,
		hitLatency:       1,
		fillLatency:      40,
		writeBackLatency: 40,
	}
}

// WithByteSize sets the capacity of the cache.
func (b Builder) WithByteSize(byteSize uint64) Builder {
	b.byteSize = byteSize
	return b
}

// WithWayAssociativity sets the number of ways in each set.
func (b Builder) WithWayAssociativity(numWays int) Builder {
	b.numWays = numWays
	return b
}

// WithLineSize sets the cache line size in bytes.
func (b Builder) WithLineSize(lineSize uint64) Builder {
	b.lineSize = lineSize
	return b
}

// WithHitLatency sets the number of cycles of a hit.
func (b Builder) WithHitLatency(cycles uint64) Builder {
	b.hitLatency = cycles
	return b
}

// WithFillLatency sets the number of cycles to fetch a line on a miss.
func (b Builder) WithFillLatency(cycles uint64) Builder {
	b.fillLatency = cycles
	return b
}

// WithWriteBackLatency sets the number of cycles to write a dirty line back.
func (b Builder) WithWriteBackLatency(cycles uint64) Builder {
	b.writeBackLatency = cycles
	return b
}

// WithBackingStore sets the memory behind the cache.
func (b Builder) WithBackingStore(backing BackingStore) Builder {
	b.backing = backing
	return b
}

// Build creates a cache with all lines invalid.
func (b Builder) Build() *Cache {
	b.mustBeValid()

	numSets := int(b.byteSize / (uint64(b.numWays) * b.lineSize))

	return &Cache{
		lineSize:         b.lineSize,
		numWays:          b.numWays,
		tags:             tagging.NewTagArray(numSets, b.numWays, int(b.lineSize)),
		victimFinder:     tagging.NewLRUVictimFinder(),
		data:             make([]byte, b.byteSize),
		backing:          b.backing,
		hitLatency:       b.hitLatency,
		fillLatency:      b.fillLatency,
		writeBackLatency: b.writeBackLatency,
	}
}

func (b Builder) mustBeValid() {
	if b.backing == nil {
		log.Panic("cache requires a backing store")
	}

	if b.lineSize == 0 || b.lineSize&(b.lineSize-1) != 0 {
		log.Panicf("cache line size %d must be a power of 2", b.lineSize)
	}

	if b.numWays <= 0 {
		log.Panicf("way associativity %d must be positive", b.numWays)
	}

	if b.byteSize == 0 || b.byteSize%(uint64(b.numWays)*b.lineSize) != 0 {
		log.Panicf("cache size %d must be a multiple of ways * line size",
			b.byteSize)
	}
}
