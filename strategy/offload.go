package strategy

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sarchlab/copybench/completion"
	"github.com/sarchlab/copybench/mem/datamover"
)

// DefaultOffloadTimeout bounds the wait for the copy engine.
const DefaultOffloadTimeout = 1000 * time.Millisecond

// offloadCopy hands the transfer to the asynchronous copy engine and waits
// for its completion callback. The end cycle is the one the callback saw.
type offloadCopy struct {
	base
	engine  datamover.Engine
	timeout time.Duration
}

func newOffloadCopy(b base, engine datamover.Engine, timeout time.Duration) *offloadCopy {
	b.kind = OffloadEngineCopy
	b.name = "async_memcpy"
	b.req = Requirements{Unit: 4, Alignment: 4}

	return &offloadCopy{base: b, engine: engine, timeout: timeout}
}

func (o *offloadCopy) Execute(
	ctx context.Context,
	req Request,
	obs StateObserver,
) Result {
	return o.bracket(req, obs, func() Result {
		return o.transfer(ctx, req)
	})
}

func (o *offloadCopy) transfer(ctx context.Context, req Request) Result {
	h, err := o.engine.Install(datamover.Config{
		Backlog:      datamover.BacklogFor(req.Bytes),
		SrcAlignment: req.Src.Alignment,
		DstAlignment: req.Dst.Alignment,
	})
	if err != nil {
		return Result{Err: fmt.Errorf("install copy engine: %w", err)}
	}

	defer func() {
		if err := o.engine.Uninstall(h); err != nil {
			log.Printf("uninstall copy engine: %v", err)
		}
	}()

	bridge := completion.NewBridge(o.machine)

	err = bridge.Submit(o.engine, h, req.Dst.Base, req.Src.Base, req.Bytes)
	if err != nil {
		now := o.machine.Now()
		return Result{Start: now, End: now, Err: err}
	}

	start, _ := bridge.SubmittedAt()

	end, ok := bridge.Await(ctx, o.timeout)
	if !ok {
		err := fmt.Errorf("%w after %v", ErrTimeout, o.timeout)
		if ctx.Err() != nil {
			err = fmt.Errorf("waiting for copy engine: %w", ctx.Err())
		}

		return Result{Start: start, End: o.machine.Now(), Err: err}
	}

	return Result{Start: start, End: end}
}
