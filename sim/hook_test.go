package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("HookableBase", func() {
	var (
		h   *HookableBase
		pos = &HookPos{Name: "TestPos"}
	)

	BeforeEach(func() {
		h = NewHookableBase()
	})

	It("should invoke hooks in registration order", func() {
		var calls []string

		h.AcceptHook(HookFunc(func(ctx HookCtx) {
			calls = append(calls, "first:"+ctx.Pos.Name)
		}))
		h.AcceptHook(HookFunc(func(ctx HookCtx) {
			calls = append(calls, "second:"+ctx.Item.(string))
		}))

		h.InvokeHook(HookCtx{Domain: h, Pos: pos, Item: "item"})

		Expect(h.NumHooks()).To(Equal(2))
		Expect(calls).To(Equal([]string{"first:TestPos", "second:item"}))
	})

	It("should do nothing without hooks", func() {
		Expect(func() {
			h.InvokeHook(HookCtx{Domain: h, Pos: pos})
		}).NotTo(Panic())
	})
})
