package strategy

import (
	"context"
	"fmt"
)

// scalarLoop copies one element of unit bytes per iteration through the CPU.
type scalarLoop struct {
	base
}

func newScalarLoop(kind Kind, unit uint64, b base) *scalarLoop {
	b.kind = kind
	b.name = fmt.Sprintf("%d-bit for loop copy", unit*8)
	b.req = Requirements{Unit: unit, Alignment: unit}

	return &scalarLoop{base: b}
}

func (s *scalarLoop) Execute(
	_ context.Context,
	req Request,
	obs StateObserver,
) Result {
	return s.bracket(req, obs, func() Result {
		unit := s.req.Unit
		size := int(unit)
		copies := req.Bytes / unit

		start := s.machine.Now()

		for i := uint64(0); i < copies; i++ {
			offset := i * unit
			v := s.machine.Load(req.Src.Base+offset, size)
			s.machine.Store(req.Dst.Base+offset, size, v)
		}

		return Result{Start: start, End: s.machine.Now()}
	})
}
