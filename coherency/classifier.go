// Package coherency keeps the CPU data cache and memory consistent around
// transfers that bypass the cache.
package coherency

import (
	"log"
	"sync"

	"github.com/sarchlab/copybench/platform"
)

// AddressMap tells which memory an address belongs to.
type AddressMap interface {
	ClassOf(addr uint64) (platform.MemoryClass, bool)
	CacheLineSize() int
}

// A Classifier maps addresses to memory classes.
//
// The cache line size is read from the address map on first use and never
// again; cache geometry does not change at run time.
type Classifier struct {
	addressMap AddressMap

	lineSizeOnce sync.Once
	lineSize     int
}

// NewClassifier creates a classifier over an address map.
func NewClassifier(addressMap AddressMap) *Classifier {
	return &Classifier{addressMap: addressMap}
}

// Classify returns the memory class of addr. Addresses the map does not know
// are treated as ExternalCached, since extra cache maintenance is always safe
// and missing maintenance is not.
func (c *Classifier) Classify(addr uint64) platform.MemoryClass {
	class, ok := c.addressMap.ClassOf(addr)
	if !ok {
		return platform.ExternalCached
	}

	return class
}

// CacheLineSize returns the size of a data cache line in bytes.
func (c *Classifier) CacheLineSize() int {
	c.lineSizeOnce.Do(func() {
		c.lineSize = c.addressMap.CacheLineSize()
		if c.lineSize <= 0 {
			log.Panicf("invalid cache line size %d", c.lineSize)
		}
	})

	return c.lineSize
}
