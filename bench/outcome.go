package bench

import (
	"github.com/sarchlab/copybench/platform"
	"github.com/sarchlab/copybench/sim"
	"github.com/sarchlab/copybench/strategy"
)

// An Outcome is the result of running one strategy on one request.
type Outcome struct {
	ID       string
	Kind     strategy.Kind
	Strategy string
	Label    string
	SrcClass platform.MemoryClass
	DstClass platform.MemoryClass

	// Requested is the length asked for; Bytes is the length moved after
	// rounding down to the strategy's unit.
	Requested uint64
	Bytes     uint64

	Start uint64
	End   uint64

	FreqHz        uint64
	BandwidthMBps float64

	State    strategy.State
	Success  bool
	Mismatch bool
	Err      error
}

// Elapsed returns the number of cycles the transfer took.
func (o Outcome) Elapsed() uint64 {
	if o.End < o.Start {
		return 0
	}

	return o.End - o.Start
}

// Failed reports whether the transfer could not be carried out.
func (o Outcome) Failed() bool {
	return o.State == strategy.Failure
}

// Reason returns the failure reason, or an empty string.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}

	return o.Err.Error()
}

// Bandwidth returns bytes per second in MiB/s for a transfer of the given
// length and duration.
func Bandwidth(bytes, cycles, freqHz uint64) float64 {
	if cycles == 0 || freqHz == 0 {
		return 0
	}

	seconds := float64(sim.Freq(freqHz).Duration(cycles))

	return float64(bytes) / seconds / (1024 * 1024)
}
