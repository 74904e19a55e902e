package sim

import (
	"log"
	"math"
)

// VTimeInSec is a time measured in seconds.
type VTimeInSec float64

// Freq defines the type of frequency
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// Duration converts a number of cycles into the time they take.
func (f Freq) Duration(cycles uint64) VTimeInSec {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return VTimeInSec(float64(cycles) / float64(f))
}

// InHz returns the frequency as an integer number of hertz.
func (f Freq) InHz() uint64 {
	if f < 0 || math.IsNaN(float64(f)) {
		log.Panicf("invalid frequency %f", float64(f))
	}

	return uint64(math.Round(float64(f)))
}
