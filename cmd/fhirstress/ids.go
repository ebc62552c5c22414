package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/torosent/fhirstress/internal/config"
	"github.com/torosent/fhirstress/internal/feeder"
	"github.com/torosent/fhirstress/internal/metrics"
	"github.com/torosent/fhirstress/internal/output"
	"github.com/torosent/fhirstress/internal/runner"
)

const progressInterval = time.Second

func newIDsCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ids",
		Short: "Draw beneficiary identifiers concurrently and report the distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewLoader().Load(cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := newLogger(stderr, cfg.LogLevel)
			for _, w := range cfg.Warnings() {
				logger.Warn().Msg(w)
			}
			return runIDs(cmd.Context(), cfg, stdout, stderr, logger)
		},
	}
	config.RegisterIDsFlags(cmd)
	return cmd
}

func openSupply(cfg *config.Config) (*feeder.BeneIDs, error) {
	if cfg.Path != "" {
		return feeder.NewBeneIDsFromPath(cfg.Path)
	}
	return feeder.NewBeneIDs(cfg.Prefix, feeder.WithBaseDir(cfg.BaseDir))
}

func runIDs(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer, logger zerolog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	supply, err := openSupply(cfg)
	if err != nil {
		return err
	}
	defer supply.Close()

	log := logger.With().Str("component", "ids").Logger()
	log.Info().Str("source", supply.Path()).Int("loaded", supply.Len()).Msg("Identifier supply ready")

	total := cfg.Total
	if total == 0 && cfg.Duration == 0 {
		total = supply.Len()
	}

	collector := metrics.NewCollector()
	task := &drawTask{supply: supply, collector: collector, format: cfg.Format}
	if cfg.Print {
		task.out = &lockedWriter{w: stdout}
	}

	r := runner.New(runner.Options{
		Concurrency:   cfg.Concurrency,
		Total:         total,
		Duration:      cfg.Duration,
		RatePerSecond: cfg.Rate,
		Task:          runner.WithLogging(task, failureLogger{logger: log}),
	})

	var progress *output.ProgressReporter
	if cfg.Progress {
		progress = output.NewProgressReporter(collector, progressInterval, stderr)
		progress.Start()
	}

	collector.Start()
	result := r.Run(ctx)
	if progress != nil {
		progress.Stop()
		fmt.Fprintln(stderr)
	}

	report := output.Report{
		RunID:  ulid.Make().String(),
		Source: supply.Path(),
		Loaded: supply.Len(),
		Stats:  collector.Stats(result.Duration),
	}
	log.Debug().Str("run_id", report.RunID).Int64("draws", result.Total).Msg("Draw run finished")

	if cfg.JSONOutput {
		if err := output.PrintJSONReport(stdout, report); err != nil {
			return err
		}
	} else if cfg.Print {
		output.PrintReport(stderr, report)
	} else {
		output.PrintReport(stdout, report)
	}

	if result.Errors > 0 {
		return fmt.Errorf("%d draws failed", result.Errors)
	}
	return nil
}

// drawTask takes one identifier per execution and records it.
type drawTask struct {
	supply    feeder.Feeder
	collector *metrics.Collector
	format    string
	out       *lockedWriter
}

func (d *drawTask) Do(context.Context) error {
	start := time.Now()
	id, err := d.supply.NextID()
	d.collector.RecordDraw(id, time.Since(start), err)
	if err != nil {
		return err
	}
	if d.out != nil {
		d.out.println(feeder.FormatID(d.format, id))
	}
	return nil
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) println(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

type failureLogger struct {
	logger zerolog.Logger
}

func (l failureLogger) LogFailure(err error) {
	if err == nil {
		return
	}
	l.logger.Warn().Err(err).Str("kind", metrics.ErrorLabel(err)).Msg("Draw failed")
}
