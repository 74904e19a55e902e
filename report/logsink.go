// Package report turns benchmark outcomes into log lines and database rows.
package report

import (
	"fmt"
	"log"

	"github.com/sarchlab/copybench/bench"
	"github.com/sarchlab/copybench/strategy"
)

// LogSink prints one line per outcome.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink that prints to logger. A nil logger uses the
// standard logger.
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}

	return &LogSink{logger: logger}
}

// Report prints the outcome.
func (s *LogSink) Report(o bench.Outcome) {
	s.logger.Print(Format(o))
}

// Format returns the line that describes an outcome.
func Format(o bench.Outcome) string {
	switch o.State {
	case strategy.Success:
		return fmt.Sprintf("%s took %d cycles = %.2f MB/s",
			o.Label, o.Elapsed(), o.BandwidthMBps)
	case strategy.Mismatch:
		return fmt.Sprintf("%s failed because the buffers don't match!",
			o.Label)
	default:
		return fmt.Sprintf("%s failed: %s", o.Label, o.Reason())
	}
}
