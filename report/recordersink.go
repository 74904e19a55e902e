package report

import (
	"github.com/sarchlab/copybench/bench"
	"github.com/sarchlab/copybench/datarecording"
)

// OutcomeTable is the table that holds one row per outcome.
const OutcomeTable = "outcomes"

// OutcomeRow is the database row of an outcome.
type OutcomeRow struct {
	RunID         string
	OutcomeID     string
	Strategy      string
	Label         string
	SrcClass      string
	DstClass      string
	Requested     uint64
	Bytes         uint64
	StartCycle    uint64
	EndCycle      uint64
	Cycles        uint64
	FreqHz        uint64
	BandwidthMBps float64
	State         string
	Success       bool
	Mismatch      bool
	Reason        string
}

// RowOf converts an outcome into a row.
func RowOf(runID string, o bench.Outcome) OutcomeRow {
	return OutcomeRow{
		RunID:         runID,
		OutcomeID:     o.ID,
		Strategy:      o.Kind.String(),
		Label:         o.Label,
		SrcClass:      o.SrcClass.String(),
		DstClass:      o.DstClass.String(),
		Requested:     o.Requested,
		Bytes:         o.Bytes,
		StartCycle:    o.Start,
		EndCycle:      o.End,
		Cycles:        o.Elapsed(),
		FreqHz:        o.FreqHz,
		BandwidthMBps: o.BandwidthMBps,
		State:         o.State.String(),
		Success:       o.Success,
		Mismatch:      o.Mismatch,
		Reason:        o.Reason(),
	}
}

// RecorderSink writes every outcome to a data recorder.
type RecorderSink struct {
	runID    string
	recorder datarecording.DataRecorder
}

// NewRecorderSink creates the outcome table and returns a sink that fills it.
func NewRecorderSink(
	recorder datarecording.DataRecorder,
	runID string,
) *RecorderSink {
	recorder.CreateTable(OutcomeTable, OutcomeRow{})

	return &RecorderSink{
		runID:    runID,
		recorder: recorder,
	}
}

// Report buffers the outcome row.
func (s *RecorderSink) Report(o bench.Outcome) {
	s.recorder.InsertData(OutcomeTable, RowOf(s.runID, o))
}
