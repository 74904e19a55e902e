// Package monitoring serves the progress and results of a benchmark run over
// HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/copybench/bench"
	"github.com/sarchlab/copybench/report"
	"github.com/sarchlab/copybench/sim/id"
)

// DefaultProfileDuration is how long a CPU profile request samples.
const DefaultProfileDuration = time.Second

// OutcomeSource provides the outcomes reported so far.
type OutcomeSource interface {
	Outcomes() []bench.Outcome
}

// Monitor turns a benchmark run into a server that can be watched from a
// browser or with curl.
type Monitor struct {
	portNumber      int
	profileDuration time.Duration
	outcomes        OutcomeSource
	runID           string

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar

	profileLock sync.Mutex
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		profileDuration: DefaultProfileDuration,
	}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 select
// a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithProfileDuration sets how long a CPU profile request samples.
func (m *Monitor) WithProfileDuration(d time.Duration) *Monitor {
	m.profileDuration = d
	return m
}

// RegisterOutcomes sets where the monitor reads outcomes from.
func (m *Monitor) RegisterOutcomes(runID string, src OutcomeSource) {
	m.runID = runID
	m.outcomes = src
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        id.NewUniqueIDGenerator().Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar from the list being served.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Handler returns the routes of the monitor.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/progress", m.listProgressBars).Methods(http.MethodGet)
	r.HandleFunc("/api/outcomes", m.listOutcomes).Methods(http.MethodGet)
	r.HandleFunc("/api/outcome/{id}", m.outcomeDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/resource", m.listResources).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", m.collectProfile).Methods(http.MethodGet)

	return r
}

// StartServer starts serving in the background and returns the URL of the
// server.
func (m *Monitor) StartServer() (string, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", m.portNumber))
	if err != nil {
		return "", fmt.Errorf("start monitor: %w", err)
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring benchmark with %s\n", url)

	go func() {
		err := http.Serve(listener, m.Handler())
		if err != nil {
			log.Printf("monitor stopped: %v", err)
		}
	}()

	return url, nil
}

// OpenInBrowser opens the outcome list of a running server.
func OpenInBrowser(url string) error {
	return browser.OpenURL(url + "/api/outcomes")
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]progressRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.snapshot())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, bars)
}

func (m *Monitor) currentOutcomes() []bench.Outcome {
	if m.outcomes == nil {
		return nil
	}

	return m.outcomes.Outcomes()
}

func (m *Monitor) listOutcomes(w http.ResponseWriter, _ *http.Request) {
	outcomes := m.currentOutcomes()

	rows := make([]report.OutcomeRow, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, report.RowOf(m.runID, o))
	}

	writeJSON(w, rows)
}

func (m *Monitor) outcomeDetails(w http.ResponseWriter, r *http.Request) {
	outcomeID := mux.Vars(r)["id"]

	for _, o := range m.currentOutcomes() {
		if o.ID != outcomeID {
			continue
		}

		row := report.RowOf(m.runID, o)

		serializer := goseth.NewSerializer()
		serializer.SetRoot(&row)
		serializer.SetMaxDepth(1)

		if err := serializer.Serialize(w); err != nil {
			log.Printf("serialize outcome %s: %v", outcomeID, err)
		}

		return
	}

	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, "Outcome not found")
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		httpError(w, err)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		httpError(w, err)
		return
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memInfo.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	m.profileLock.Lock()
	defer m.profileLock.Unlock()

	buf := bytes.NewBuffer(nil)

	if err := pprof.StartCPUProfile(buf); err != nil {
		httpError(w, err)
		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		httpError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(data); err != nil {
		log.Printf("monitor response: %v", err)
	}
}

func httpError(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprintf(w, "Error: %s", err)
}
