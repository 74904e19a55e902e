// Package experiment runs every strategy over every pair of memory classes.
package experiment

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/sarchlab/copybench/bench"
	"github.com/sarchlab/copybench/mem"
	"github.com/sarchlab/copybench/platform"
	"github.com/sarchlab/copybench/sim"
	"github.com/sarchlab/copybench/strategy"
)

// HookPosStepStart marks the buffers of a step being in place, right before
// the first strategy runs. The hook item is the Step.
var HookPosStepStart = &sim.HookPos{Name: "Step Start"}

// HookPosStepEnd marks every strategy of a step having run. The hook item is
// the Step.
var HookPosStepEnd = &sim.HookPos{Name: "Step End"}

// Allocator hands out memory regions.
type Allocator interface {
	Allocate(class platform.MemoryClass, size, alignment uint64) (
		platform.Region, error)
	Release(r platform.Region) error
}

// Primer fills a source buffer through the CPU.
type Primer interface {
	WriteBytes(addr uint64, data []byte)
}

// Runner runs one strategy on one request.
type Runner interface {
	Run(ctx context.Context, s strategy.Strategy, req strategy.Request) bench.Outcome
}

// A Step is one source/destination pairing of the experiment.
type Step struct {
	Src platform.MemoryClass
	Dst platform.MemoryClass
}

// Label names the pairing in reports.
func (s Step) Label() string {
	return s.Src.String() + "->" + s.Dst.String()
}

// Matrix returns the pairings in the order they run. Consecutive steps share
// a buffer, so only one buffer changes from one step to the next.
func Matrix() []Step {
	return []Step{
		{platform.FastLocal, platform.FastLocal},
		{platform.FastLocal, platform.ExternalCached},
		{platform.ExternalCached, platform.FastLocal},
		{platform.ExternalCached, platform.ExternalCached},
	}
}

// Driver owns the source and destination buffers and runs the experiment.
type Driver struct {
	*sim.HookableBase

	allocator  Allocator
	primer     Primer
	runner     Runner
	strategies []strategy.Strategy
	steps      []Step
	size       uint64
	alignment  uint64
	coherency  bool
	rng        *rand.Rand

	src platform.Region
	dst platform.Region
}

// Run runs every strategy on every step and returns the outcomes in order.
// Only a failed allocation stops the experiment early; the outcomes gathered
// before it are returned with the error.
func (d *Driver) Run(ctx context.Context) ([]bench.Outcome, error) {
	defer d.releaseAll()

	var outcomes []bench.Outcome

	for _, step := range d.steps {
		if err := d.arrange(step); err != nil {
			return outcomes, err
		}

		d.InvokeHook(sim.HookCtx{Domain: d, Pos: HookPosStepStart, Item: step})

		for _, s := range d.strategies {
			if err := ctx.Err(); err != nil {
				return outcomes, err
			}

			o := d.runner.Run(ctx, s, strategy.Request{
				Dst:       d.dst,
				Src:       d.src,
				Bytes:     d.size,
				Coherency: d.coherency,
				Label:     step.Label(),
			})
			outcomes = append(outcomes, o)
		}

		d.InvokeHook(sim.HookCtx{Domain: d, Pos: HookPosStepEnd, Item: step})
	}

	return outcomes, nil
}

// arrange gets the buffers of step in place, reusing the buffers of the
// previous step where the classes allow it.
func (d *Driver) arrange(step Step) error {
	switch {
	case d.src.IsZero():
		if err := d.allocate(&d.src, step.Src); err != nil {
			return err
		}

		d.prime()
	case d.src.Class != step.Src && d.dst.Class == step.Src:
		log.Printf("Swapping source and destination buffers")

		d.src, d.dst = d.dst, d.src
		d.prime()
	case d.src.Class != step.Src:
		d.release(&d.src)

		if err := d.allocate(&d.src, step.Src); err != nil {
			return err
		}

		d.prime()
	}

	if !d.dst.IsZero() && d.dst.Class == step.Dst {
		return nil
	}

	d.release(&d.dst)

	return d.allocate(&d.dst, step.Dst)
}

func (d *Driver) allocate(r *platform.Region, class platform.MemoryClass) error {
	log.Printf("Allocating %dkb in %s, alignment: %d bytes",
		d.size/mem.KB, class, d.alignment)

	region, err := d.allocator.Allocate(class, d.size, d.alignment)
	if err != nil {
		return fmt.Errorf("allocate %s buffer: %w", class, err)
	}

	*r = region

	return nil
}

func (d *Driver) release(r *platform.Region) {
	if r.IsZero() {
		return
	}

	log.Printf("Freeing %dkb from %s", r.Length/mem.KB, r.Class)

	if err := d.allocator.Release(*r); err != nil {
		log.Printf("release %s: %v", r, err)
	}

	*r = platform.Region{}
}

func (d *Driver) releaseAll() {
	d.release(&d.src)
	d.release(&d.dst)
}

// prime fills the source with byte(i + r) for a fresh random r.
func (d *Driver) prime() {
	Prime(d.primer, d.src, d.size, d.rng.Uint32())
}

// Prime fills the first n bytes of r with byte(i + seed).
func Prime(p Primer, r platform.Region, n uint64, seed uint32) {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(uint32(i) + seed)
	}

	p.WriteBytes(r.Base, data)
}
