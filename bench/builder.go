package bench

import (
	"log"
	"time"

	"github.com/sarchlab/copybench/coherency"
	"github.com/sarchlab/copybench/sim"
	"github.com/sarchlab/copybench/sim/id"
)

// MaxSettleDelay bounds the pause after each outcome.
const MaxSettleDelay = time.Second

// Builder can build harnesses.
type Builder struct {
	machine     Machine
	controller  *coherency.Controller
	sink        Sink
	ids         id.IDGenerator
	settleDelay time.Duration
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{}
}

// WithMachine sets the machine whose CPU view is verified.
func (b Builder) WithMachine(m Machine) Builder {
	b.machine = m
	return b
}

// WithCoherency sets the controller used to flush the destination before
// each transfer.
func (b Builder) WithCoherency(c *coherency.Controller) Builder {
	b.controller = c
	return b
}

// WithSink sets where outcomes are reported.
func (b Builder) WithSink(s Sink) Builder {
	b.sink = s
	return b
}

// WithIDGenerator sets the generator of outcome IDs.
func (b Builder) WithIDGenerator(g id.IDGenerator) Builder {
	b.ids = g
	return b
}

// WithSettleDelay sets the pause after each outcome, capped at
// MaxSettleDelay.
func (b Builder) WithSettleDelay(d time.Duration) Builder {
	b.settleDelay = min(d, MaxSettleDelay)
	return b
}

// Build creates a harness.
func (b Builder) Build() *Harness {
	if b.machine == nil || b.controller == nil {
		log.Panic("harness needs a machine and a coherency controller")
	}

	ids := b.ids
	if ids == nil {
		ids = id.NewIDGenerator()
	}

	return &Harness{
		HookableBase: sim.NewHookableBase(),
		machine:      b.machine,
		controller:   b.controller,
		sink:         b.sink,
		ids:          ids,
		settleDelay:  b.settleDelay,
	}
}
