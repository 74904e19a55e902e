package strategy

import (
	"context"
	"fmt"
)

// libraryCopy hands the whole transfer to one platform copy routine.
type libraryCopy struct {
	base
	copyFn func(dst, src, n uint64) error
}

func newBulkLibraryCopy(b base) *libraryCopy {
	b.kind = BulkLibraryCopy
	b.name = "memcpy"
	b.req = Requirements{Unit: 1, Alignment: 1}

	return &libraryCopy{base: b, copyFn: b.machine.Memcpy}
}

func newAcceleratorLibraryCopy(b base) *libraryCopy {
	b.kind = AcceleratorLibraryCopy
	b.name = "accelerated memcpy"
	b.req = Requirements{Unit: 1, Alignment: 1}

	return &libraryCopy{base: b, copyFn: b.machine.AcceleratedCopy}
}

func (c *libraryCopy) Execute(
	_ context.Context,
	req Request,
	obs StateObserver,
) Result {
	return c.bracket(req, obs, func() Result {
		start := c.machine.Now()
		err := c.copyFn(req.Dst.Base, req.Src.Base, req.Bytes)
		end := c.machine.Now()

		if err != nil {
			err = fmt.Errorf("%s: %w", c.name, err)
		}

		return Result{Start: start, End: end, Err: err}
	})
}
