// Package sim holds the small pieces of simulation plumbing the benchmark is
// built on: clock frequencies and hooks.
package sim

// HookPos names a place in a hookable object where hooks are invoked.
type HookPos struct {
	Name string
}

// HookCtx describes one hook invocation. Item is what the invocation is about;
// Detail carries position-specific extra information.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   any
	Detail any
}

// Hookable objects accept hooks.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
}

// A Hook observes a hookable object.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func calls f(ctx).
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// HookableBase keeps a list of hooks and invokes them in registration order.
// Embed it to make a type Hookable.
type HookableBase struct {
	Hooks []Hook
}

// NewHookableBase creates a HookableBase without hooks.
func NewHookableBase() *HookableBase {
	return &HookableBase{}
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of registered hooks.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook calls every hook with ctx.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
