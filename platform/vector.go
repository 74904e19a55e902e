package platform

import "log"

const (
	vectorWidth        = 16
	numVectorRegisters = 8
)

type vectorRegisters [numVectorRegisters][vectorWidth]byte

// VectorWidth returns the number of bytes one bulk register transfer moves.
// Pointers passed to VectorLoad and VectorStore must be aligned to it.
func (p *Platform) VectorWidth() uint64 {
	return vectorWidth
}

// VectorLoad loads the vector register slot from *ptr and advances *ptr by
// the vector width. The load goes straight to memory and does not look up the
// data cache.
func (p *Platform) VectorLoad(slot int, ptr *uint64) {
	p.mustBeValidVectorAccess(slot, *ptr)

	p.mu.Lock()
	defer p.mu.Unlock()

	m := p.mustFind(*ptr, vectorWidth)

	data, err := m.storage.Read(*ptr-m.base, vectorWidth)
	if err != nil {
		log.Panic(err)
	}

	copy(p.vector[slot][:], data)
	p.cycles.Add(p.vectorLatency(m.class))

	*ptr += vectorWidth
}

// VectorStore stores the vector register slot to *ptr and advances *ptr by
// the vector width. The store goes straight to memory and does not update the
// data cache.
func (p *Platform) VectorStore(slot int, ptr *uint64) {
	p.mustBeValidVectorAccess(slot, *ptr)

	p.mu.Lock()
	defer p.mu.Unlock()

	m := p.mustFind(*ptr, vectorWidth)

	if err := m.storage.Write(*ptr-m.base, p.vector[slot][:]); err != nil {
		log.Panic(err)
	}

	p.cycles.Add(p.vectorLatency(m.class))

	*ptr += vectorWidth
}

func (p *Platform) vectorLatency(class MemoryClass) uint64 {
	if class == ExternalCached {
		return p.latency.VectorExternal
	}

	return p.latency.VectorLocal
}

func (p *Platform) mustBeValidVectorAccess(slot int, addr uint64) {
	if slot < 0 || slot >= numVectorRegisters {
		log.Panicf("vector register q%d does not exist", slot)
	}

	if addr%vectorWidth != 0 {
		log.Panicf("vector access at 0x%x is not %d-byte aligned",
			addr, vectorWidth)
	}
}
