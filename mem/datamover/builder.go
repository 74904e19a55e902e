package datamover

import "log"

// A Builder can build copy engines.
type Builder struct {
	bus           Bus
	bytesPerCycle uint64
	setupLatency  uint64
	maxChannels   int
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		bytesPerCycle: 2,
		setupLatency:  200,
		maxChannels:   4,
	}
}

// WithBus sets the memory the engine moves data in.
func (b Builder) WithBus(bus Bus) Builder {
	b.bus = bus
	return b
}

// WithBytesPerCycle sets the transfer rate of the engine.
func (b Builder) WithBytesPerCycle(n uint64) Builder {
	b.bytesPerCycle = n
	return b
}

// WithSetupLatency sets the number of cycles before the first byte moves.
func (b Builder) WithSetupLatency(cycles uint64) Builder {
	b.setupLatency = cycles
	return b
}

// WithMaxChannels sets the number of channels that can be installed at once.
func (b Builder) WithMaxChannels(n int) Builder {
	b.maxChannels = n
	return b
}

// Build creates an engine.
func (b Builder) Build() *Comp {
	if b.bus == nil {
		log.Panic("copy engine requires a bus")
	}

	if b.bytesPerCycle == 0 {
		log.Panic("copy engine must move at least 1 byte per cycle")
	}

	return &Comp{
		bus:           b.bus,
		bytesPerCycle: b.bytesPerCycle,
		setupLatency:  b.setupLatency,
		maxChannels:   b.maxChannels,
		channels:      make(map[Handle]*channel),
	}
}
