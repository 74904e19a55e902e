package cmd

import (
	"log"

	"github.com/sarchlab/copybench/experiment"
	"github.com/sarchlab/copybench/mem/cache"
	"github.com/sarchlab/copybench/sim"
)

type cacheCounter interface {
	CacheStats() cache.Statistics
	ResetCacheStats()
}

// cacheStatsHook logs the data cache statistics of every step of an
// experiment and sums them over the run. Priming the source buffer happens
// before the step starts and is not counted.
type cacheStatsHook struct {
	counter cacheCounter
	total   cache.Statistics
}

func (h *cacheStatsHook) Func(ctx sim.HookCtx) {
	step, ok := ctx.Item.(experiment.Step)
	if !ok {
		return
	}

	switch ctx.Pos {
	case experiment.HookPosStepStart:
		h.counter.ResetCacheStats()
	case experiment.HookPosStepEnd:
		stats := h.counter.CacheStats()
		logCacheStats(step.Label(), stats)
		h.total = h.total.Add(stats)
	}
}

func logCacheStats(what string, stats cache.Statistics) {
	log.Printf("%s: %d reads, %d writes, %d hits, %d misses, "+
		"%d evictions, %d write-backs, %d invalidations",
		what, stats.Reads, stats.Writes, stats.Hits, stats.Misses,
		stats.Evictions, stats.WriteBacks, stats.Invalidations)
}
