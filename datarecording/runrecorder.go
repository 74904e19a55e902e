package datarecording

import (
	"os"
	"strings"
	"time"
)

// RunInfoTable is the table that holds the run properties.
const RunInfoTable = "run_info"

// RunInfo is one property of a benchmark run.
type RunInfo struct {
	RunID    string
	Property string
	Value    string
}

// A RunRecorder records when and how a benchmark run was started.
type RunRecorder struct {
	runID    string
	recorder DataRecorder
	entries  []RunInfo
}

// NewRunRecorder creates a run recorder that writes to recorder.
func NewRunRecorder(recorder DataRecorder, runID string) *RunRecorder {
	recorder.CreateTable(RunInfoTable, RunInfo{})

	return &RunRecorder{
		runID:    runID,
		recorder: recorder,
	}
}

// Set records a property of the run.
func (r *RunRecorder) Set(property, value string) {
	r.entries = append(r.entries, RunInfo{
		RunID:    r.runID,
		Property: property,
		Value:    value,
	})
}

// Start records the start time and the command line.
func (r *RunRecorder) Start() {
	r.Set("Start Time", time.Now().Format(time.RFC3339Nano))
	r.Set("Command", strings.Join(os.Args, " "))

	if wd, err := os.Getwd(); err == nil {
		r.Set("Working Directory", wd)
	}
}

// End records the end time and writes all properties.
func (r *RunRecorder) End() {
	r.Set("End Time", time.Now().Format(time.RFC3339Nano))

	for _, entry := range r.entries {
		r.recorder.InsertData(RunInfoTable, entry)
	}

	r.entries = nil

	r.recorder.Flush()
}
