package platform

import (
	"log"

	"github.com/sarchlab/copybench/mem"
	"github.com/sarchlab/copybench/mem/cache"
	"github.com/sarchlab/copybench/sim"
)

// Default address map, modelled after an MCU with internal SRAM on the data
// bus and PSRAM mapped through the data cache.
const (
	DefaultFastLocalBase uint64 = 0x3FC88000
	DefaultFastLocalSize uint64 = 416 * mem.KB
	DefaultExternalBase  uint64 = 0x3C000000
	DefaultExternalSize  uint64 = 8 * mem.MB
)

// A Builder can build platforms.
type Builder struct {
	fastLocal    window
	external     window
	cacheBuilder cache.Builder
	latency      Latency
	freq         sim.Freq
	fallbackFreq sim.Freq
}

// MakeBuilder returns a builder with the default address map, a 32 KiB data
// cache and a 240 MHz clock.
func MakeBuilder() Builder {
	return Builder{
		fastLocal: window{
			class: FastLocal,
			base:  DefaultFastLocalBase,
			size:  DefaultFastLocalSize,
		},
		external: window{
			class: ExternalCached,
			base:  DefaultExternalBase,
			size:  DefaultExternalSize,
		},
		cacheBuilder: cache.MakeBuilder(),
		latency:      DefaultLatency(),
		freq:         240 * sim.MHz,
		fallbackFreq: 240 * sim.MHz,
	}
}

// WithFastLocalWindow places the fast local memory.
func (b Builder) WithFastLocalWindow(base, size uint64) Builder {
	b.fastLocal.base = base
	b.fastLocal.size = size

	return b
}

// WithExternalWindow places the cached external memory.
func (b Builder) WithExternalWindow(base, size uint64) Builder {
	b.external.base = base
	b.external.size = size

	return b
}

// WithCache configures the data cache. The backing store is set by Build.
func (b Builder) WithCache(cacheBuilder cache.Builder) Builder {
	b.cacheBuilder = cacheBuilder
	return b
}

// WithLatency sets the access latencies.
func (b Builder) WithLatency(latency Latency) Builder {
	b.latency = latency
	return b
}

// WithFreq sets the CPU frequency. A zero frequency makes the platform fall
// back to the cached frequency.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithFallbackFreq sets the frequency reported when the CPU frequency is
// unknown.
func (b Builder) WithFallbackFreq(freq sim.Freq) Builder {
	b.fallbackFreq = freq
	return b
}

// Build creates a platform with zeroed memories and an empty cache.
func (b Builder) Build() *Platform {
	b.mustBeValid()

	p := &Platform{
		latency:      b.latency,
		freq:         b.freq,
		fallbackFreq: b.fallbackFreq,
	}

	local := &memory{
		window:  b.fastLocal,
		storage: mem.NewStorage(b.fastLocal.size),
	}
	external := &memory{
		window:  b.external,
		storage: mem.NewStorage(b.external.size),
	}
	p.memories = []*memory{local, external}

	p.dcache = b.cacheBuilder.
		WithBackingStore(externalBacking{m: external}).
		Build()
	p.alloc = newAllocator([]window{b.fastLocal, b.external})

	return p
}

func (b Builder) mustBeValid() {
	if b.fastLocal.base == 0 || b.external.base == 0 {
		log.Panic("address 0 is reserved as the null pointer")
	}

	if overlaps(b.fastLocal, b.external) {
		log.Panicf("fast local window [0x%x, +%d) overlaps external "+
			"window [0x%x, +%d)",
			b.fastLocal.base, b.fastLocal.size,
			b.external.base, b.external.size)
	}

	if b.fallbackFreq <= 0 {
		log.Panic("fallback frequency must be positive")
	}
}

func overlaps(a, b window) bool {
	return a.base < b.base+b.size && b.base < a.base+a.size
}
