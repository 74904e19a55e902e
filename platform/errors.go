package platform

import "errors"

// Errors returned by the platform primitives and the allocator.
var (
	ErrNullDestination = errors.New("destination pointer is null")
	ErrUnmapped        = errors.New("address range is not mapped")
	ErrOutOfMemory     = errors.New("not enough free memory")
	ErrBadAlignment    = errors.New("alignment must be a power of two")
	ErrUnknownRegion   = errors.New("region was not allocated")
)
