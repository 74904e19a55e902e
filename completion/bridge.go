// Package completion lets a synchronous caller wait for a transfer that
// finishes on another goroutine.
package completion

import (
	"context"
	"fmt"
	"time"

	"github.com/sarchlab/copybench/mem/datamover"
)

// Clock is the cycle counter read when a transfer completes.
type Clock interface {
	Now() uint64
}

// pendingTransfer is one submitted transfer. The resume mailbox holds a single
// completion timestamp.
type pendingTransfer struct {
	clock       Clock
	resume      chan uint64
	submittedAt uint64
}

// onComplete runs on the engine goroutine. It must not block, so a second
// completion for the same transfer is dropped.
func onComplete(_ datamover.Handle, arg any) bool {
	p := arg.(*pendingTransfer)

	select {
	case p.resume <- p.clock.Now():
		return true
	default:
		return false
	}
}

// A Bridge submits transfers to an offload engine and waits for them.
//
// A bridge tracks one transfer at a time. Each Submit gets a fresh mailbox, so
// a late callback from a transfer that timed out cannot resume a later wait.
type Bridge struct {
	clock   Clock
	pending *pendingTransfer
}

// NewBridge creates a bridge that timestamps completions with clock.
func NewBridge(clock Clock) *Bridge {
	return &Bridge{clock: clock}
}

// Submit starts copying n bytes from src to dst on the installed channel h.
func (b *Bridge) Submit(
	engine datamover.Engine,
	h datamover.Handle,
	dst, src, n uint64,
) error {
	p := &pendingTransfer{
		clock:       b.clock,
		resume:      make(chan uint64, 1),
		submittedAt: b.clock.Now(),
	}

	err := engine.Submit(h, dst, src, n, onComplete, p)
	if err != nil {
		b.pending = nil
		return fmt.Errorf("submit transfer: %w", err)
	}

	b.pending = p

	return nil
}

// SubmittedAt returns the cycle at which the pending transfer was submitted.
func (b *Bridge) SubmittedAt() (uint64, bool) {
	if b.pending == nil {
		return 0, false
	}

	return b.pending.submittedAt, true
}

// Await blocks until the pending transfer completes, timeout passes or ctx is
// done. It returns the cycle captured at completion. A timeout of zero or less
// waits on ctx alone.
//
// The pending transfer is forgotten whatever the result.
func (b *Bridge) Await(
	ctx context.Context,
	timeout time.Duration,
) (uint64, bool) {
	p := b.pending
	if p == nil {
		return 0, false
	}

	b.pending = nil

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	select {
	case cycle := <-p.resume:
		return cycle, true
	case <-ctx.Done():
		return 0, false
	}
}
