package strategy

import (
	"context"
	"fmt"
)

// wideVectorLoop moves data with bulk register transfers. Each iteration
// loads a group of registers from the source and then stores them to the
// destination, so stride is a multiple of the vector width.
type wideVectorLoop struct {
	base
	registers int
}

func newWideVectorLoop(kind Kind, registers int, b base) *wideVectorLoop {
	width := b.machine.VectorWidth()

	b.kind = kind
	b.req = Requirements{
		Unit:      width * uint64(registers),
		Alignment: width,
	}

	b.name = fmt.Sprintf("%d-bit vector copy", width*8)
	if registers > 1 {
		b.name = fmt.Sprintf("%dx%d-bit vector copy", registers, width*8)
	}

	return &wideVectorLoop{base: b, registers: registers}
}

func (v *wideVectorLoop) Execute(
	_ context.Context,
	req Request,
	obs StateObserver,
) Result {
	return v.bracket(req, obs, func() Result {
		count := req.Bytes / v.req.Unit
		srcP := req.Src.Base
		dstP := req.Dst.Base

		start := v.machine.Now()

		for i := uint64(0); i < count; i++ {
			for q := 0; q < v.registers; q++ {
				v.machine.VectorLoad(q, &srcP)
			}

			for q := 0; q < v.registers; q++ {
				v.machine.VectorStore(q, &dstP)
			}
		}

		return Result{Start: start, End: v.machine.Now()}
	})
}
