package strategy

import (
	"log"
	"time"

	"github.com/sarchlab/copybench/coherency"
	"github.com/sarchlab/copybench/mem/datamover"
)

// Builder creates strategies that share a machine, a coherency controller and
// a copy engine.
type Builder struct {
	machine        Machine
	controller     *coherency.Controller
	engine         datamover.Engine
	offloadTimeout time.Duration
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		offloadTimeout: DefaultOffloadTimeout,
	}
}

// WithMachine sets the machine the strategies run on.
func (b Builder) WithMachine(m Machine) Builder {
	b.machine = m
	return b
}

// WithCoherency sets the coherency controller that brackets every transfer.
func (b Builder) WithCoherency(c *coherency.Controller) Builder {
	b.controller = c
	return b
}

// WithEngine sets the copy engine used by the offload strategy.
func (b Builder) WithEngine(e datamover.Engine) Builder {
	b.engine = e
	return b
}

// WithOffloadTimeout sets how long the offload strategy waits for the copy
// engine.
func (b Builder) WithOffloadTimeout(d time.Duration) Builder {
	b.offloadTimeout = d
	return b
}

// Build creates the strategy of the given kind.
func (b Builder) Build(kind Kind) Strategy {
	if b.machine == nil || b.controller == nil {
		log.Panic("strategy builder needs a machine and a coherency controller")
	}

	common := base{machine: b.machine, controller: b.controller}

	switch kind {
	case ScalarLoop8:
		return newScalarLoop(kind, 1, common)
	case ScalarLoop16:
		return newScalarLoop(kind, 2, common)
	case ScalarLoop32:
		return newScalarLoop(kind, 4, common)
	case ScalarLoop64:
		return newScalarLoop(kind, 8, common)
	case BulkLibraryCopy:
		return newBulkLibraryCopy(common)
	case OffloadEngineCopy:
		if b.engine == nil {
			log.Panic("offload strategy needs a copy engine")
		}

		return newOffloadCopy(common, b.engine, b.offloadTimeout)
	case WideVectorLoop16:
		return newWideVectorLoop(kind, 1, common)
	case WideVectorLoop32:
		return newWideVectorLoop(kind, 2, common)
	case AcceleratorLibraryCopy:
		return newAcceleratorLibraryCopy(common)
	default:
		log.Panicf("unknown strategy kind %d", int(kind))
	}

	return nil
}

// BuildAll creates one strategy per kind, in order.
func (b Builder) BuildAll(kinds []Kind) []Strategy {
	strategies := make([]Strategy, 0, len(kinds))
	for _, k := range kinds {
		strategies = append(strategies, b.Build(k))
	}

	return strategies
}
