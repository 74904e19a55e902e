package datamover

import "errors"

// Handle identifies an installed copy channel.
type Handle uint64

// Config configures a copy channel at install time.
type Config struct {
	// Backlog is the number of transfer descriptors the channel can queue.
	// One descriptor covers up to DescriptorSize bytes.
	Backlog int

	// SrcAlignment and DstAlignment are the alignments, in bytes, that the
	// source address, destination address and size must satisfy.
	SrcAlignment uint64
	DstAlignment uint64
}

// A Callback is invoked from the engine's own goroutine when a transfer
// completes. It must not block. The return value tells whether the callback
// woke up a waiting context.
type Callback func(h Handle, arg any) bool

// Engine is an asynchronous memory-to-memory copy engine.
type Engine interface {
	// Install allocates a copy channel.
	Install(cfg Config) (Handle, error)

	// Submit starts copying size bytes from src to dst and returns
	// immediately. cb is called with arg once the data has landed.
	Submit(h Handle, dst, src, size uint64, cb Callback, arg any) error

	// Uninstall releases a copy channel.
	Uninstall(h Handle) error
}

// Errors returned by the engine.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotInstalled    = errors.New("copy channel is not installed")
	ErrBusy            = errors.New("copy channel has a transfer in flight")
	ErrBacklogFull     = errors.New("transfer needs more descriptors than the backlog")
)

// DescriptorSize is the largest number of bytes one descriptor can move.
const DescriptorSize uint64 = 4095

// BacklogFor returns the backlog needed to move size bytes in one submission.
func BacklogFor(size uint64) int {
	return int((size + 4091) / 4065)
}
