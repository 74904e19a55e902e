// Package cache provides a synchronous write-back, write-allocate data cache
// that sits between the CPU and a cached memory.
package cache

import (
	"github.com/sarchlab/copybench/mem/cache/internal/tagging"
)

// BackingStore is the memory behind the cache.
type BackingStore interface {
	// Read fetches data from the backing store.
	Read(addr, size uint64) []byte

	// Write stores data to the backing store.
	Write(addr uint64, data []byte)
}

// Statistics holds cache performance statistics.
type Statistics struct {
	Reads         uint64
	Writes        uint64
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	WriteBacks    uint64
	Invalidations uint64
}

// Add returns the sum of s and o.
func (s Statistics) Add(o Statistics) Statistics {
	return Statistics{
		Reads:         s.Reads + o.Reads,
		Writes:        s.Writes + o.Writes,
		Hits:          s.Hits + o.Hits,
		Misses:        s.Misses + o.Misses,
		Evictions:     s.Evictions + o.Evictions,
		WriteBacks:    s.WriteBacks + o.WriteBacks,
		Invalidations: s.Invalidations + o.Invalidations,
	}
}

// Cache is a set-associative write-back cache. All operations return the
// number of cycles they take.
//
// Cache is not safe for concurrent use.
type Cache struct {
	lineSize uint64
	numWays  int

	tags         tagging.TagArray
	victimFinder tagging.VictimFinder
	data         []byte
	backing      BackingStore

	hitLatency       uint64
	fillLatency      uint64
	writeBackLatency uint64

	stats Statistics
}

// LineSize returns the size of a cache line in bytes.
func (c *Cache) LineSize() uint64 {
	return c.lineSize
}

// Stats returns cache statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// ResetStats clears cache statistics.
func (c *Cache) ResetStats() {
	c.stats = Statistics{}
}

// Probe reports whether the line holding addr is cached, and whether it is
// dirty.
func (c *Cache) Probe(addr uint64) (valid, dirty bool) {
	block, ok := c.tags.Lookup(c.lineAddr(addr))
	if !ok {
		return false, false
	}

	return true, block.IsDirty
}

// NumValidLines returns the number of lines the cache currently holds.
func (c *Cache) NumValidLines() int {
	return c.tags.NumValid()
}

func (c *Cache) lineAddr(addr uint64) uint64 {
	return addr / c.lineSize * c.lineSize
}

func (c *Cache) blockData(block tagging.Block) []byte {
	return c.data[block.CacheAddress : block.CacheAddress+c.lineSize]
}

// Read copies len(buf) bytes starting at addr into buf.
func (c *Cache) Read(addr uint64, buf []byte) (cycles uint64) {
	c.stats.Reads++

	c.forEachLine(addr, uint64(len(buf)),
		func(block tagging.Block, offset, bufOffset, n uint64) {
			copy(buf[bufOffset:bufOffset+n], c.blockData(block)[offset:offset+n])
		}, &cycles)

	return cycles
}

// Write copies data into the cache starting at addr. Written lines become
// dirty; the backing store is not updated until the lines are flushed or
// evicted.
func (c *Cache) Write(addr uint64, data []byte) (cycles uint64) {
	c.stats.Writes++

	c.forEachLine(addr, uint64(len(data)),
		func(block tagging.Block, offset, dataOffset, n uint64) {
			copy(c.blockData(block)[offset:offset+n], data[dataOffset:dataOffset+n])
			block.IsDirty = true
			c.tags.Update(block)
		}, &cycles)

	return cycles
}

func (c *Cache) forEachLine(
	addr, size uint64,
	f func(block tagging.Block, offset, dataOffset, n uint64),
	cycles *uint64,
) {
	dataOffset := uint64(0)
	for dataOffset < size {
		curr := addr + dataOffset
		lineAddr := c.lineAddr(curr)
		offset := curr - lineAddr
		n := min(size-dataOffset, c.lineSize-offset)

		block, latency := c.access(lineAddr)
		*cycles += latency

		f(block, offset, dataOffset, n)

		dataOffset += n
	}
}

// access returns the block holding lineAddr, filling it on a miss.
func (c *Cache) access(lineAddr uint64) (tagging.Block, uint64) {
	block, ok := c.tags.Lookup(lineAddr)
	if ok {
		c.stats.Hits++
		c.tags.Visit(block)

		return block, c.hitLatency
	}

	c.stats.Misses++
	latency := c.fillLatency

	victim := c.victimFinder.FindVictim(c.tags, lineAddr)
	if victim.IsValid {
		c.stats.Evictions++

		if victim.IsDirty {
			latency += c.writeBack(victim)
		}
	}

	copy(c.blockData(victim), c.backing.Read(lineAddr, c.lineSize))

	victim.Tag = lineAddr
	victim.IsValid = true
	victim.IsDirty = false
	c.tags.Update(victim)
	c.tags.Visit(victim)

	return victim, latency
}

func (c *Cache) writeBack(block tagging.Block) uint64 {
	c.stats.WriteBacks++
	c.backing.Write(block.Tag, c.blockData(block))

	return c.writeBackLatency
}

// FlushRange writes every dirty line overlapping [addr, addr+size) back to the
// backing store. Flushed lines stay valid and become clean.
func (c *Cache) FlushRange(addr, size uint64) (cycles uint64) {
	c.forEachCachedLine(addr, size, func(block tagging.Block) {
		cycles += c.hitLatency

		if !block.IsDirty {
			return
		}

		cycles += c.writeBack(block)
		block.IsDirty = false
		c.tags.Update(block)
	})

	return cycles
}

// InvalidateRange drops every line overlapping [addr, addr+size) without
// writing it back. Whole lines are dropped, including bytes outside the range
// that share a line with it.
func (c *Cache) InvalidateRange(addr, size uint64) (cycles uint64) {
	c.forEachCachedLine(addr, size, func(block tagging.Block) {
		cycles += c.hitLatency
		c.stats.Invalidations++

		block.IsValid = false
		block.IsDirty = false
		c.tags.Update(block)
	})

	return cycles
}

func (c *Cache) forEachCachedLine(
	addr, size uint64,
	f func(block tagging.Block),
) {
	if size == 0 {
		return
	}

	end := addr + size
	for lineAddr := c.lineAddr(addr); lineAddr < end; lineAddr += c.lineSize {
		block, ok := c.tags.Lookup(lineAddr)
		if !ok {
			continue
		}

		f(block)
	}
}
