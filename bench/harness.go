// Package bench runs transfer strategies, checks what the CPU sees afterwards
// and measures how long each transfer took.
package bench

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/sarchlab/copybench/coherency"
	"github.com/sarchlab/copybench/sim"
	"github.com/sarchlab/copybench/sim/id"
	"github.com/sarchlab/copybench/strategy"
)

// HookPosStateChange marks a transfer entering a new state. The hook item is
// the request and the detail is the strategy.State.
var HookPosStateChange = &sim.HookPos{Name: "State Change"}

// HookPosOutcome marks a finished transfer. The hook item is the Outcome.
var HookPosOutcome = &sim.HookPos{Name: "Outcome"}

// Machine is the CPU view of memory the harness verifies through.
type Machine interface {
	ReadBytes(addr, n uint64) []byte
	FillBytes(addr, n uint64, value byte)
	CPUFrequencyHz() uint64
}

// A Sink receives every outcome.
type Sink interface {
	Report(o Outcome)
}

// Harness runs one strategy at a time.
type Harness struct {
	*sim.HookableBase

	machine     Machine
	controller  *coherency.Controller
	sink        Sink
	ids         id.IDGenerator
	settleDelay time.Duration
}

// Run moves req.Bytes from req.Src to req.Dst with s and returns the
// outcome. Run never returns a half-filled outcome: validation errors and
// transfer errors end up in Outcome.Err with State set to Failure.
func (h *Harness) Run(
	ctx context.Context,
	s strategy.Strategy,
	req strategy.Request,
) Outcome {
	o := Outcome{
		ID:        h.ids.Generate(),
		Kind:      s.Kind(),
		Strategy:  s.Name(),
		Label:     joinLabel(s.Name(), req.Label),
		SrcClass:  req.Src.Class,
		DstClass:  req.Dst.Class,
		Requested: req.Bytes,
		FreqHz:    h.machine.CPUFrequencyHz(),
	}

	h.publish(req, strategy.Idle)

	n, err := h.validate(s.Requirements(), req)
	if err != nil {
		o.Err = &ConfigError{Label: o.Label, Err: err}
		return h.finish(ctx, req, o, strategy.Failure)
	}

	req.Bytes = n
	o.Bytes = n

	h.clearDestination(req)

	result := s.Execute(ctx, req, func(st strategy.State) {
		h.publish(req, st)
	})

	o.Start = result.Start
	o.End = result.End

	if result.Err != nil {
		o.Err = &TransferError{Strategy: s.Name(), Err: result.Err}
		return h.finish(ctx, req, o, strategy.Failure)
	}

	h.publish(req, strategy.Verifying)

	if !h.matches(req) {
		o.Mismatch = true
		return h.finish(ctx, req, o, strategy.Mismatch)
	}

	o.Success = true
	o.BandwidthMBps = Bandwidth(o.Bytes, o.Elapsed(), o.FreqHz)

	return h.finish(ctx, req, o, strategy.Success)
}

func (h *Harness) validate(
	r strategy.Requirements,
	req strategy.Request,
) (uint64, error) {
	align := max(r.Alignment, 1)
	if req.Src.Base%align != 0 || req.Dst.Base%align != 0 {
		return 0, fmt.Errorf("%w: src 0x%x, dst 0x%x, need %d bytes",
			ErrMisaligned, req.Src.Base, req.Dst.Base, align)
	}

	if req.Bytes > req.Src.Length || req.Bytes > req.Dst.Length {
		return 0, fmt.Errorf("%w: %d bytes into %d/%d byte buffers",
			ErrTooLong, req.Bytes, req.Src.Length, req.Dst.Length)
	}

	unit := max(r.Unit, 1)
	n := req.Bytes / unit * unit

	if n == 0 {
		return 0, fmt.Errorf("%w: %d bytes, unit %d",
			ErrTooShort, req.Bytes, unit)
	}

	return n, nil
}

// clearDestination zeroes the destination and makes sure memory holds the
// zeros, so that data left over from an earlier transfer cannot pass
// verification.
func (h *Harness) clearDestination(req strategy.Request) {
	h.machine.FillBytes(req.Dst.Base, req.Bytes, 0)
	h.controller.Flush(coherency.RangeOf(req.Dst, req.Bytes))
}

func (h *Harness) matches(req strategy.Request) bool {
	dst := h.machine.ReadBytes(req.Dst.Base, req.Bytes)
	src := h.machine.ReadBytes(req.Src.Base, req.Bytes)

	return bytes.Equal(dst, src)
}

func (h *Harness) finish(
	ctx context.Context,
	req strategy.Request,
	o Outcome,
	state strategy.State,
) Outcome {
	o.State = state
	h.publish(req, state)

	if h.sink != nil {
		h.sink.Report(o)
	}

	h.InvokeHook(sim.HookCtx{
		Domain: h,
		Pos:    HookPosOutcome,
		Item:   o,
	})

	h.publish(req, strategy.Idle)
	h.settle(ctx)

	return o
}

func (h *Harness) publish(req strategy.Request, s strategy.State) {
	if h.NumHooks() == 0 {
		return
	}

	h.InvokeHook(sim.HookCtx{
		Domain: h,
		Pos:    HookPosStateChange,
		Item:   req,
		Detail: s,
	})
}

func (h *Harness) settle(ctx context.Context) {
	if h.settleDelay <= 0 {
		return
	}

	t := time.NewTimer(h.settleDelay)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func joinLabel(name, label string) string {
	if label == "" {
		return name
	}

	return name + " " + label
}
