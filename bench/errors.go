package bench

import (
	"errors"
	"fmt"
)

// Errors describing a request the harness cannot run.
var (
	ErrMisaligned = errors.New("buffer is not aligned")
	ErrTooShort   = errors.New("transfer is shorter than one unit")
	ErrTooLong    = errors.New("transfer does not fit in the buffers")
)

// A ConfigError reports a request that does not satisfy a strategy's
// requirements. Nothing was transferred. The message leaves out Label, which
// reports already lead with.
type ConfigError struct {
	Label string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// A TransferError reports a strategy that could not complete its transfer.
type TransferError struct {
	Strategy string
	Err      error
}

func (e *TransferError) Error() string {
	return e.Err.Error()
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
