package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/shirou/gopsutil/process"
	"github.com/spf13/cobra"

	"github.com/sarchlab/copybench/bench"
	"github.com/sarchlab/copybench/coherency"
	"github.com/sarchlab/copybench/datarecording"
	"github.com/sarchlab/copybench/experiment"
	"github.com/sarchlab/copybench/mem"
	"github.com/sarchlab/copybench/mem/cache"
	"github.com/sarchlab/copybench/mem/datamover"
	"github.com/sarchlab/copybench/monitoring"
	"github.com/sarchlab/copybench/platform"
	"github.com/sarchlab/copybench/report"
	"github.com/sarchlab/copybench/sim"
	"github.com/sarchlab/copybench/sim/id"
	"github.com/sarchlab/copybench/strategy"
)

type runOptions struct {
	size        uint64
	align       uint64
	noCoherency bool
	record      bool
	recordDB    string
	timeout     time.Duration
	freqMHz     float64
	strategies  string
	seed        int64
	settle      time.Duration
	verbose     bool
	monitor     bool
	monitorPort int
	open        bool
}

var opts runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every copy strategy over every pair of memory classes.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return run(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.Uint64Var(&opts.size, "size", experiment.DefaultSize,
		"Size of the copied buffers in bytes")
	f.Uint64Var(&opts.align, "align", experiment.DefaultAlignment,
		"Alignment of the buffers in bytes")
	f.BoolVar(&opts.noCoherency, "no-coherency", false,
		"Skip the cache flush and invalidate around each copy; "+
			"buffers larger than the 32 KiB data cache evict most "+
			"stale lines, so mismatches show up mainly at small sizes")
	f.BoolVar(&opts.record, "record", false,
		"Record every outcome to an SQLite database")
	f.StringVar(&opts.recordDB, "record-db", "",
		"Name of the database file, without suffix (default: unique name)")
	f.DurationVar(&opts.timeout, "timeout", strategy.DefaultOffloadTimeout,
		"How long to wait for the copy engine")
	f.Float64Var(&opts.freqMHz, "freq-mhz", 240,
		"CPU frequency in MHz; 0 means unknown")
	f.StringVar(&opts.strategies, "strategies", "",
		"Comma separated strategies to run (default: all)")
	f.Int64Var(&opts.seed, "seed", 0,
		"Seed of the source patterns (default: time based)")
	f.DurationVar(&opts.settle, "settle", 0,
		"Pause after each copy, at most 1s")
	f.BoolVarP(&opts.verbose, "verbose", "v", false,
		"Log every state change of every copy")
	f.BoolVar(&opts.monitor, "monitor", false,
		"Serve progress and outcomes over HTTP while running")
	f.IntVar(&opts.monitorPort, "monitor-port", 0,
		"Port of the monitoring server (default: random)")
	f.BoolVar(&opts.open, "open", false,
		"Open the monitoring server in a browser")
}

func run(ctx context.Context, o runOptions) error {
	kinds := strategy.Standard()
	if o.strategies != "" {
		var err error

		kinds, err = strategy.ParseKinds(o.strategies)
		if err != nil {
			return err
		}
	}

	p := platform.MakeBuilder().
		WithFreq(sim.Freq(o.freqMHz) * sim.MHz).
		Build()
	controller := coherency.NewController(coherency.NewClassifier(p), p)
	engine := datamover.MakeBuilder().WithBus(p).Build()
	defer engine.Wait()

	runID := id.NewUniqueIDGenerator().Generate()
	collector := &report.Collector{}
	sinks := report.Multi{report.NewLogSink(nil), collector}

	if o.monitor {
		monitor, err := startMonitor(o, runID, collector)
		if err != nil {
			return err
		}

		bar := monitor.CreateProgressBar("copies",
			uint64(len(kinds)*len(experiment.Matrix())))
		defer monitor.CompleteProgressBar(bar)

		sinks = append(sinks, bar)
	}

	if o.record {
		recorder := datarecording.New(o.recordDB)
		defer recorder.Flush()

		runInfo := datarecording.NewRunRecorder(recorder, runID)
		runInfo.Start()
		runInfo.Set("Size", fmt.Sprint(o.size))
		runInfo.Set("Alignment", fmt.Sprint(o.align))
		runInfo.Set("Coherency", fmt.Sprint(!o.noCoherency))
		runInfo.Set("Frequency Hz", fmt.Sprint(p.CPUFrequencyHz()))
		defer runInfo.End()

		sinks = append(sinks, report.NewRecorderSink(recorder, runID))
	}

	harness := bench.MakeBuilder().
		WithMachine(p).
		WithCoherency(controller).
		WithSink(sinks).
		WithSettleDelay(o.settle).
		Build()

	if o.verbose {
		harness.AcceptHook(report.NewStateLogHook(nil))
	}

	strategies := strategy.MakeBuilder().
		WithMachine(p).
		WithCoherency(controller).
		WithEngine(engine).
		WithOffloadTimeout(o.timeout).
		BuildAll(kinds)

	builder := experiment.MakeBuilder().
		WithAllocator(p).
		WithPrimer(p).
		WithRunner(harness).
		WithStrategies(strategies).
		WithSize(o.size).
		WithAlignment(o.align).
		WithCoherency(!o.noCoherency)
	if o.seed != 0 {
		builder = builder.WithSeed(o.seed)
	}

	log.Printf("memory copy benchmark: %d KiB buffers, alignment %d bytes",
		o.size/mem.KB, o.align)

	cacheStats := &cacheStatsHook{counter: p}
	driver := builder.Build()
	driver.AcceptHook(cacheStats)

	_, err := driver.Run(ctx)

	printSummary(collector.Summary(), cacheStats.total)
	printResourceUsage()

	return err
}

func startMonitor(
	o runOptions,
	runID string,
	collector *report.Collector,
) (*monitoring.Monitor, error) {
	monitor := monitoring.NewMonitor().WithPortNumber(o.monitorPort)
	monitor.RegisterOutcomes(runID, collector)

	url, err := monitor.StartServer()
	if err != nil {
		return nil, err
	}

	if o.open {
		if err := monitoring.OpenInBrowser(url); err != nil {
			log.Printf("open browser: %v", err)
		}
	}

	return monitor, nil
}

func printSummary(s report.Summary, stats cache.Statistics) {
	log.Printf("%d succeeded, %d mismatched, %d failed",
		s.Success, s.Mismatch, s.Failure)
	logCacheStats("data cache", stats)
}

func printResourceUsage() {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Printf("resource usage unavailable: %v", err)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		log.Printf("resource usage unavailable: %v", err)
		return
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		log.Printf("resource usage unavailable: %v", err)
		return
	}

	log.Printf("host process: %.1f%% CPU, %d MiB RSS",
		cpuPercent, memInfo.RSS/mem.MB)
}
