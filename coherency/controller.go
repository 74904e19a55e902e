package coherency

import (
	"fmt"

	"github.com/sarchlab/copybench/platform"
)

// CacheOps are the cache maintenance operations of the platform.
type CacheOps interface {
	FlushDCache(addr, n uint64)
	InvalidateDCache(addr, n uint64)
	Barrier(addr, n uint64)
}

// A Range is a span of memory.
type Range struct {
	Addr uint64
	Len  uint64
}

// RangeOf returns the range covering the first n bytes of a region.
func RangeOf(r platform.Region, n uint64) Range {
	return Range{Addr: r.Base, Len: n}
}

func (r Range) String() string {
	return fmt.Sprintf("[0x%08x, +%d)", r.Addr, r.Len)
}

// Controller runs the coherency protocol around transfers.
//
// Ranges are widened to whole cache lines. A line shared between a range and
// unrelated data is flushed or invalidated as a whole, so callers must not
// place live data next to a buffer in the same line.
type Controller struct {
	classifier *Classifier
	ops        CacheOps
}

// NewController creates a controller.
func NewController(classifier *Classifier, ops CacheOps) *Controller {
	return &Controller{
		classifier: classifier,
		ops:        ops,
	}
}

// Classifier returns the classifier the controller uses.
func (c *Controller) Classifier() *Classifier {
	return c.classifier
}

// lineAligned widens r to cache line boundaries.
func (c *Controller) lineAligned(r Range) Range {
	line := uint64(c.classifier.CacheLineSize())
	start := r.Addr / line * line
	end := (r.Addr + r.Len + line - 1) / line * line

	return Range{Addr: start, Len: end - start}
}

func (c *Controller) isCached(r Range) bool {
	return r.Len > 0 &&
		c.classifier.Classify(r.Addr) == platform.ExternalCached
}

// Flush writes any dirty cached copy of r back to memory. Afterwards memory
// holds the most recent CPU writes. Required before a cache-bypassing path
// reads r.
func (c *Controller) Flush(r Range) {
	if !c.isCached(r) {
		return
	}

	aligned := c.lineAligned(r)
	c.ops.FlushDCache(aligned.Addr, aligned.Len)
}

// Invalidate drops any cached copy of r without writing it back. Required
// before a cache-bypassing path writes r, so later CPU reads do not see stale
// lines.
func (c *Controller) Invalidate(r Range) {
	if !c.isCached(r) {
		return
	}

	aligned := c.lineAligned(r)
	c.ops.InvalidateDCache(aligned.Addr, aligned.Len)
}

// PrepareForTransfer runs before a transfer from src to dst. It returns true
// if the caller must call FinishTransfer with needsPostFlush set after the
// transfer.
//
// When enabled is false, only a barrier over src is issued.
func (c *Controller) PrepareForTransfer(dst, src Range, enabled bool) bool {
	if !enabled {
		c.ops.Barrier(src.Addr, src.Len)
		return false
	}

	if c.isCached(src) {
		c.Flush(src)
		c.Invalidate(src)
	}

	if c.isCached(dst) {
		c.Invalidate(dst)
		return true
	}

	return false
}

// FinishTransfer runs after a transfer into dst. If needsPostFlush is set, it
// issues a barrier over dst and flushes dst, after which dst is visible in
// memory.
func (c *Controller) FinishTransfer(dst Range, needsPostFlush bool) {
	if !needsPostFlush {
		return
	}

	c.ops.Barrier(dst.Addr, dst.Len)
	c.Flush(dst)
}
