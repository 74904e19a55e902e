// Package datamover provides an asynchronous copy engine that moves memory
// without the CPU and reports completion through a callback.
package datamover

import (
	"fmt"
	"log"
	"sync"
)

// Bus is the memory the engine reads and writes. Bus accesses do not go
// through the CPU data cache.
type Bus interface {
	BusRead(addr, n uint64) ([]byte, error)
	BusWrite(addr uint64, data []byte) error
	Advance(cycles uint64)
}

// Comp is a copy engine. Each submitted transfer runs on its own goroutine
// and calls back from it.
type Comp struct {
	mu sync.Mutex
	wg sync.WaitGroup

	bus           Bus
	bytesPerCycle uint64
	setupLatency  uint64
	maxChannels   int

	nextHandle Handle
	channels   map[Handle]*channel
}

// Install allocates a copy channel.
func (c *Comp) Install(cfg Config) (Handle, error) {
	if cfg.Backlog <= 0 {
		return 0, fmt.Errorf("%w: backlog %d", ErrInvalidArgument, cfg.Backlog)
	}

	cfg.SrcAlignment = max(cfg.SrcAlignment, 1)
	cfg.DstAlignment = max(cfg.DstAlignment, 1)

	if !isPowerOfTwo(cfg.SrcAlignment) || !isPowerOfTwo(cfg.DstAlignment) {
		return 0, fmt.Errorf("%w: alignment %d/%d",
			ErrInvalidArgument, cfg.SrcAlignment, cfg.DstAlignment)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.channels) >= c.maxChannels {
		return 0, fmt.Errorf("%w: all %d channels in use",
			ErrInvalidArgument, c.maxChannels)
	}

	c.nextHandle++
	c.channels[c.nextHandle] = &channel{cfg: cfg}

	return c.nextHandle, nil
}

// Uninstall releases a copy channel. If a transfer is still in flight,
// Uninstall blocks until its last write has landed. The callback of that
// transfer is not invoked. Callbacks must not call Uninstall.
func (c *Comp) Uninstall(h Handle) error {
	c.mu.Lock()

	ch, ok := c.channels[h]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: handle %d", ErrNotInstalled, h)
	}

	delete(c.channels, h)
	inFlight := ch.inFlight
	c.mu.Unlock()

	if inFlight != nil {
		<-inFlight.done
	}

	return nil
}

// Submit starts a transfer.
func (c *Comp) Submit(
	h Handle,
	dst, src, size uint64,
	cb Callback,
	arg any,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch, ok := c.channels[h]
	if !ok {
		return fmt.Errorf("%w: handle %d", ErrNotInstalled, h)
	}

	if ch.inFlight != nil {
		return ErrBusy
	}

	trans := &transaction{
		handle: h,
		dst:    dst,
		src:    src,
		size:   size,
		cb:     cb,
		arg:    arg,
		done:   make(chan struct{}),
	}

	if err := ch.validate(trans); err != nil {
		return err
	}

	ch.inFlight = trans

	c.wg.Add(1)
	go c.run(ch, trans)

	return nil
}

func (ch *channel) validate(t *transaction) error {
	if t.size == 0 || t.cb == nil {
		return fmt.Errorf("%w: size %d", ErrInvalidArgument, t.size)
	}

	align := max(ch.cfg.SrcAlignment, ch.cfg.DstAlignment)
	if t.src%ch.cfg.SrcAlignment != 0 ||
		t.dst%ch.cfg.DstAlignment != 0 ||
		t.size%align != 0 {
		return fmt.Errorf("%w: dst 0x%x src 0x%x size %d not aligned to %d/%d",
			ErrInvalidArgument, t.dst, t.src, t.size,
			ch.cfg.DstAlignment, ch.cfg.SrcAlignment)
	}

	if t.numDescriptors() > ch.cfg.Backlog {
		return fmt.Errorf("%w: need %d, have %d",
			ErrBacklogFull, t.numDescriptors(), ch.cfg.Backlog)
	}

	return nil
}

func (c *Comp) run(ch *channel, t *transaction) {
	defer c.wg.Done()
	defer close(t.done)

	err := c.move(t)

	c.mu.Lock()
	ch.inFlight = nil
	_, installed := c.channels[t.handle]
	c.mu.Unlock()

	if err != nil {
		log.Printf("copy engine: transfer on handle %d failed: %v", t.handle, err)
		return
	}

	if installed {
		t.cb(t.handle, t.arg)
	}
}

func (c *Comp) move(t *transaction) error {
	for offset := uint64(0); offset < t.size; offset += DescriptorSize {
		n := min(DescriptorSize, t.size-offset)

		data, err := c.bus.BusRead(t.src+offset, n)
		if err != nil {
			return err
		}

		if err := c.bus.BusWrite(t.dst+offset, data); err != nil {
			return err
		}
	}

	c.bus.Advance(c.setupLatency + (t.size+c.bytesPerCycle-1)/c.bytesPerCycle)

	return nil
}

// Wait blocks until every submitted transfer has finished.
func (c *Comp) Wait() {
	c.wg.Wait()
}

func isPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}
