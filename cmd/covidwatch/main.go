package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"codeberg.org/mutker/covidwatch/internal/config"
	"codeberg.org/mutker/covidwatch/internal/errors"
	"codeberg.org/mutker/covidwatch/internal/fetcher"
	"codeberg.org/mutker/covidwatch/internal/history"
	"codeberg.org/mutker/covidwatch/internal/logger"
	"codeberg.org/mutker/covidwatch/internal/pid"
	"codeberg.org/mutker/covidwatch/internal/presenter"
	"codeberg.org/mutker/covidwatch/internal/report"
	"codeberg.org/mutker/covidwatch/internal/telemetry"
	"codeberg.org/mutker/covidwatch/internal/tracker"
)

const recordInterval = 60 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	if !cfg.Debug && !cfg.Verbose {
		logger.SetLogLevel(levelFor(config.LogLevel(cfg.LogLevel)))
	}
	logger.Debug().Msg("Config loaded")

	if !cfg.Force {
		if err := pid.Write(); err != nil {
			logger.Error().Err(err).Msg("failed to acquire instance lock")
			os.Exit(1)
		}
	}

	exitCode := 0
	if err := run(cfg); err != nil {
		logger.ErrorWithCode(errors.New().Wrap(errors.ErrMainLoop, err)).Msg("error in main loop")
		exitCode = 1
	}

	if !cfg.Force {
		if err := pid.Remove(); err != nil {
			logger.Warn().Err(err).Msg("failed to remove pid file")
		}
	}

	logger.Info().Msg("Exiting...")
	os.Exit(exitCode)
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	hist := history.New(cfg.HistoryFile)
	term := presenter.NewTerminal(os.Stdout, presenter.Options{
		Split:    cfg.Split,
		TestData: cfg.Test,
		Interval: cfg.Interval,
	})

	if cfg.Verbose {
		term.Banner(fmt.Sprintf("Force = %t, Verbose = %t, Record = %t, Test = %t, Interval = %d",
			cfg.Force, cfg.Verbose, cfg.Record, cfg.Test, cfg.Interval))
	}

	if cfg.Record {
		return recordLoop(ctx, hist, term)
	}

	collector, err := telemetry.NewService(telemetry.Config{
		DBPath:  cfg.TelemetryDB,
		Enabled: cfg.Telemetry,
	})
	if err != nil {
		return errors.New().Wrap(errors.ErrInitApp, err)
	}
	defer func() {
		if err := collector.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close telemetry collector")
		}
	}()

	cycle := report.NewCycle(report.CycleConfig{
		Source:    datasetSource(cfg),
		Tracker:   tracker.New(),
		History:   hist,
		Presenter: term,
		Telemetry: collector,
		URLs:      datasetURLs(cfg),
		TestMode:  cfg.Test,
	})

	return loop(ctx, cycle, cfg)
}

// loop runs the first cycle immediately, then one per interval. Any cycle
// error is fatal; there is no retry.
func loop(ctx context.Context, cycle *report.Cycle, cfg *config.Config) error {
	if _, err := cycle.Run(ctx); err != nil {
		return ignoreCanceled(err)
	}
	if cfg.Once {
		return nil
	}

	ticker := time.NewTicker(time.Duration(cfg.Interval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := cycle.Run(ctx); err != nil {
				return ignoreCanceled(err)
			}
		}
	}
}

// recordLoop replays the history file once a minute.
func recordLoop(ctx context.Context, hist *history.Log, term *presenter.Terminal) error {
	term.Banner("Historical Data, one minute loop:")

	if err := hist.Show(os.Stdout); err != nil {
		return err
	}

	ticker := time.NewTicker(recordInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := hist.Show(os.Stdout); err != nil {
				return err
			}
		}
	}
}

func datasetSource(cfg *config.Config) fetcher.Source {
	if cfg.Test {
		return fetcher.NewFileSource()
	}

	return fetcher.NewHTTPSource()
}

func datasetURLs(cfg *config.Config) map[tracker.Metric]string {
	if cfg.Test {
		return map[tracker.Metric]string{
			tracker.MetricConfirmed: filepath.Join(cfg.TestDataDir, "Confirmed.csv"),
			tracker.MetricRecovered: filepath.Join(cfg.TestDataDir, "Recovered.csv"),
			tracker.MetricDeaths:    filepath.Join(cfg.TestDataDir, "Deaths.csv"),
		}
	}

	return map[tracker.Metric]string{
		tracker.MetricConfirmed: cfg.ConfirmedURL,
		tracker.MetricRecovered: cfg.RecoveredURL,
		tracker.MetricDeaths:    cfg.DeathsURL,
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

// ignoreCanceled maps a cancellation that interrupted a fetch to a clean
// shutdown.
func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func levelFor(l config.LogLevel) logger.LogLevel {
	switch l {
	case config.LogLevelDebug:
		return logger.DebugLevel
	case config.LogLevelWarning:
		return logger.WarnLevel
	case config.LogLevelError:
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}
