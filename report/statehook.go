package report

import (
	"log"

	"github.com/sarchlab/copybench/bench"
	"github.com/sarchlab/copybench/sim"
	"github.com/sarchlab/copybench/strategy"
)

// StateLogHook logs every state change a harness publishes.
type StateLogHook struct {
	sim.LogHookBase
}

// NewStateLogHook creates a hook that logs to logger.
func NewStateLogHook(logger *log.Logger) *StateLogHook {
	return &StateLogHook{LogHookBase: sim.NewLogHookBase(logger)}
}

// Func logs the state change described by ctx.
func (h *StateLogHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != bench.HookPosStateChange {
		return
	}

	req, ok := ctx.Item.(strategy.Request)
	if !ok {
		return
	}

	h.Printf("[%s] %s", req.Label, ctx.Detail)
}
