// Package strategy implements the ways of moving a block of bytes between two
// memory regions, each bracketed by the cache coherency protocol.
package strategy

import (
	"context"
	"errors"

	"github.com/sarchlab/copybench/coherency"
	"github.com/sarchlab/copybench/platform"
)

// ErrTimeout is returned when an asynchronous transfer does not complete in
// time.
var ErrTimeout = errors.New("timed out waiting for transfer completion")

// Requirements are the constraints a strategy puts on a transfer.
type Requirements struct {
	// Unit is the number of bytes moved per step. A transfer moves the largest
	// multiple of Unit that fits in the requested length.
	Unit uint64

	// Alignment is the alignment both buffers must have.
	Alignment uint64
}

// A Request asks for Bytes bytes to be moved from Src to Dst.
type Request struct {
	Dst       platform.Region
	Src       platform.Region
	Bytes     uint64
	Coherency bool
	Label     string
}

// A Result is what a strategy reports about one transfer. Start and End are
// cycle counts sampled right around the transfer itself.
type Result struct {
	Start uint64
	End   uint64
	Err   error
}

// Machine is the part of the platform the strategies drive.
type Machine interface {
	Now() uint64
	Load(addr uint64, size int) uint64
	Store(addr uint64, size int, v uint64)
	VectorWidth() uint64
	VectorLoad(slot int, ptr *uint64)
	VectorStore(slot int, ptr *uint64)
	Memcpy(dst, src, n uint64) error
	AcceleratedCopy(dst, src, n uint64) error
}

// Strategy is one way of moving bytes.
type Strategy interface {
	Kind() Kind
	Name() string
	Requirements() Requirements
	Execute(ctx context.Context, req Request, obs StateObserver) Result
}

// base holds what every strategy needs.
type base struct {
	kind       Kind
	name       string
	req        Requirements
	machine    Machine
	controller *coherency.Controller
}

func (b *base) Kind() Kind {
	return b.kind
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Requirements() Requirements {
	return b.req
}

// bracket runs transfer between the coherency preparation and the post-flush.
// Cache maintenance stays outside the cycles transfer reports.
func (b *base) bracket(
	req Request,
	obs StateObserver,
	transfer func() Result,
) Result {
	dst := coherency.RangeOf(req.Dst, req.Bytes)
	src := coherency.RangeOf(req.Src, req.Bytes)

	obs.notify(CoherencyPrep)
	needsPostFlush := b.controller.PrepareForTransfer(dst, src, req.Coherency)

	obs.notify(Transferring)
	result := transfer()
	if result.Err != nil {
		return result
	}

	if needsPostFlush {
		obs.notify(CoherencyPostFlush)
		b.controller.FinishTransfer(dst, true)
	}

	return result
}
