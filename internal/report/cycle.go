package report

import (
	"context"
	"time"

	"codeberg.org/mutker/covidwatch/internal/errors"
	"codeberg.org/mutker/covidwatch/internal/fetcher"
	"codeberg.org/mutker/covidwatch/internal/logger"
	"codeberg.org/mutker/covidwatch/internal/series"
	"codeberg.org/mutker/covidwatch/internal/tracker"
)

// Cycle drives one polling iteration: fetch the three datasets, sum their
// most recent column, derive the death-rate percentage, classify all four
// metrics, persist history when anything changed and present the result.
// Any error aborts the cycle; there is no retry and no partial report.
type Cycle struct {
	source    fetcher.Source
	tracker   *tracker.Tracker
	history   Recorder
	presenter Presenter
	telemetry Collector
	urls      map[tracker.Metric]string
	testMode  bool
}

type CycleConfig struct {
	Source    fetcher.Source
	Tracker   *tracker.Tracker
	History   Recorder
	Presenter Presenter
	Telemetry Collector

	// URLs maps the three count metrics to their dataset locations. In
	// test mode these are local file paths.
	URLs map[tracker.Metric]string

	// TestMode suppresses history writes, matching the original tool's
	// behavior with local fixture data.
	TestMode bool
}

func NewCycle(cfg CycleConfig) *Cycle {
	return &Cycle{
		source:    cfg.Source,
		tracker:   cfg.Tracker,
		history:   cfg.History,
		presenter: cfg.Presenter,
		telemetry: cfg.Telemetry,
		urls:      cfg.URLs,
		testMode:  cfg.TestMode,
	}
}

// Run executes one full cycle. The returned snapshot is valid only when
// the error is nil.
func (c *Cycle) Run(ctx context.Context) (Snapshot, error) {
	errFactory := errors.New()

	confirmed, err := c.total(ctx, tracker.MetricConfirmed)
	if err != nil {
		return Snapshot{}, err
	}

	recovered, err := c.total(ctx, tracker.MetricRecovered)
	if err != nil {
		return Snapshot{}, err
	}

	deaths, err := c.total(ctx, tracker.MetricDeaths)
	if err != nil {
		return Snapshot{}, err
	}

	if confirmed == 0 {
		return Snapshot{}, errFactory.New(errors.ErrZeroConfirmed)
	}
	percentDied := deaths / confirmed * 100

	snapshot := Snapshot{Timestamp: time.Now()}
	values := []struct {
		metric tracker.Metric
		value  float64
	}{
		{tracker.MetricConfirmed, confirmed},
		{tracker.MetricRecovered, recovered},
		{tracker.MetricDeaths, deaths},
		{tracker.MetricPercentDied, percentDied},
	}
	for _, v := range values {
		snapshot.Entries = append(snapshot.Entries, Entry{
			Metric: v.metric,
			Value:  v.value,
			Change: c.tracker.Classify(v.metric, v.value),
		})
	}

	if snapshot.Changed() && !c.testMode && c.history != nil {
		if err := c.history.Append(snapshot); err != nil {
			return Snapshot{}, err
		}
	}

	if c.telemetry != nil {
		if err := c.telemetry.Record(ctx, snapshot); err != nil {
			// Telemetry is observability, not the report path.
			logger.Warn().Err(err).Msg("failed to record telemetry snapshot")
		}
	}

	if c.presenter != nil {
		c.presenter.Present(snapshot)
	}

	return snapshot, nil
}

func (c *Cycle) total(ctx context.Context, metric tracker.Metric) (float64, error) {
	url, ok := c.urls[metric]
	if !ok {
		return 0, errors.New().WithData(errors.ErrInvalidArgument, string(metric))
	}

	data, err := c.source.Fetch(ctx, url)
	if err != nil {
		return 0, err
	}

	total, err := series.SumLastColumn(data)
	if err != nil {
		return 0, err
	}

	logger.Debug().
		Str("metric", string(metric)).
		Str("url", url).
		Float64("total", total).
		Msg("dataset summed")

	return total, nil
}
