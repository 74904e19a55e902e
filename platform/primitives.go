package platform

import "fmt"

const acceleratedChunk = 16

func (p *Platform) checkCopyArgs(dst, src, n uint64) error {
	if dst == 0 {
		return ErrNullDestination
	}

	if _, ok := p.find(dst, n); !ok {
		return fmt.Errorf("%w: destination [0x%x, +%d)", ErrUnmapped, dst, n)
	}

	if _, ok := p.find(src, n); !ok {
		return fmt.Errorf("%w: source [0x%x, +%d)", ErrUnmapped, src, n)
	}

	return nil
}

// copyInChunks moves n bytes through the CPU, chunk bytes per load/store pair,
// finishing with single bytes. Must be called with p.mu held.
func (p *Platform) copyInChunks(dst, src, n, chunk uint64) {
	buf := make([]byte, chunk)
	offset := uint64(0)

	for ; offset+chunk <= n; offset += chunk {
		p.cpuRead(src+offset, buf)
		p.cpuWrite(dst+offset, buf)
	}

	for ; offset < n; offset++ {
		p.cpuRead(src+offset, buf[:1])
		p.cpuWrite(dst+offset, buf[:1])
	}
}

// Memcpy is the C library copy: it moves n bytes through the CPU a word at a
// time.
func (p *Platform) Memcpy(dst, src, n uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkCopyArgs(dst, src, n); err != nil {
		return err
	}

	p.copyInChunks(dst, src, n, 4)

	return nil
}

// AcceleratedCopy is the DSP library copy: it moves n bytes through the CPU
// 16 bytes at a time.
func (p *Platform) AcceleratedCopy(dst, src, n uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkCopyArgs(dst, src, n); err != nil {
		return err
	}

	p.copyInChunks(dst, src, n, acceleratedChunk)

	return nil
}
