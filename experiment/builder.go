package experiment

import (
	"log"
	"math/rand"
	"time"

	"github.com/sarchlab/copybench/mem"
	"github.com/sarchlab/copybench/sim"
	"github.com/sarchlab/copybench/strategy"
)

// Defaults of an experiment.
const (
	DefaultSize      = 100 * mem.KB
	DefaultAlignment = 32
)

// Builder can build drivers.
type Builder struct {
	allocator  Allocator
	primer     Primer
	runner     Runner
	strategies []strategy.Strategy
	steps      []Step
	size       uint64
	alignment  uint64
	coherency  bool
	seed       int64
}

// MakeBuilder creates a builder with 100 KiB buffers, 32-byte alignment, the
// coherency protocol enabled and a time-based seed.
func MakeBuilder() Builder {
	return Builder{
		steps:        Matrix(),
		size:         DefaultSize,
		alignment:    DefaultAlignment,
		coherency:    true,
		seed:      time.Now().UnixNano(),
	}
}

// WithAllocator sets where buffers come from.
func (b Builder) WithAllocator(a Allocator) Builder {
	b.allocator = a
	return b
}

// WithPrimer sets how source buffers are filled.
func (b Builder) WithPrimer(p Primer) Builder {
	b.primer = p
	return b
}

// WithRunner sets the runner, usually a bench.Harness.
func (b Builder) WithRunner(r Runner) Builder {
	b.runner = r
	return b
}

// WithStrategies sets the strategies run on every step, in order.
func (b Builder) WithStrategies(s []strategy.Strategy) Builder {
	b.strategies = s
	return b
}

// WithSteps replaces the default matrix.
func (b Builder) WithSteps(steps []Step) Builder {
	b.steps = steps
	return b
}

// WithSize sets the buffer size in bytes.
func (b Builder) WithSize(size uint64) Builder {
	b.size = size
	return b
}

// WithAlignment sets the buffer alignment in bytes.
func (b Builder) WithAlignment(alignment uint64) Builder {
	b.alignment = alignment
	return b
}

// WithCoherency turns the coherency protocol on or off for every request.
func (b Builder) WithCoherency(enabled bool) Builder {
	b.coherency = enabled
	return b
}

// WithSeed sets the seed of the priming patterns.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// Build creates a driver.
func (b Builder) Build() *Driver {
	if b.allocator == nil || b.primer == nil || b.runner == nil {
		log.Panic("experiment needs an allocator, a primer and a runner")
	}

	if b.size == 0 {
		log.Panic("experiment buffer size must not be 0")
	}

	return &Driver{
		HookableBase: sim.NewHookableBase(),
		allocator:    b.allocator,
		primer:       b.primer,
		runner:       b.runner,
		strategies:   b.strategies,
		steps:        b.steps,
		size:         b.size,
		alignment:    b.alignment,
		coherency:    b.coherency,
		rng:          rand.New(rand.NewSource(b.seed)),
	}
}
