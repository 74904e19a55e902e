// Package mem provides the backing storage of the simulated memories.
package mem

// Units of memory sizes.
const (
	B  uint64 = 1
	KB uint64 = 1 << 10
	MB uint64 = 1 << 20
	GB uint64 = 1 << 30
)
