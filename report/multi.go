package report

import (
	"sync"

	"github.com/sarchlab/copybench/bench"
)

// Multi forwards every outcome to each sink in order.
type Multi []bench.Sink

// Report forwards o.
func (m Multi) Report(o bench.Outcome) {
	for _, s := range m {
		s.Report(o)
	}
}

// Collector keeps every outcome it receives.
type Collector struct {
	mu       sync.Mutex
	outcomes []bench.Outcome
}

// Report stores o.
func (c *Collector) Report(o bench.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.outcomes = append(c.outcomes, o)
}

// Outcomes returns a copy of the stored outcomes.
func (c *Collector) Outcomes() []bench.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]bench.Outcome(nil), c.outcomes...)
}

// Summary counts outcomes by result.
type Summary struct {
	Success  int
	Mismatch int
	Failure  int
}

// Summary counts the stored outcomes.
func (c *Collector) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	var s Summary

	for _, o := range c.outcomes {
		switch {
		case o.Success:
			s.Success++
		case o.Mismatch:
			s.Mismatch++
		default:
			s.Failure++
		}
	}

	return s
}
