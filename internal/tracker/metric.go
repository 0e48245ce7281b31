package tracker

import "fmt"

// Metric identifies one of the four tracked quantities.
type Metric string

const (
	MetricConfirmed   Metric = "confirmed"
	MetricRecovered   Metric = "recovered"
	MetricDeaths      Metric = "deaths"
	MetricPercentDied Metric = "percent_died"
)

// All returns the metrics in report order.
func All() []Metric {
	return []Metric{MetricConfirmed, MetricRecovered, MetricDeaths, MetricPercentDied}
}

// Label returns the display name used in reports and the history file.
func (m Metric) Label() string {
	switch m {
	case MetricConfirmed:
		return "Confirmed"
	case MetricRecovered:
		return "Recovered"
	case MetricDeaths:
		return "Deaths"
	case MetricPercentDied:
		return "% Died"
	default:
		return string(m)
	}
}

// IsPercentage reports whether the metric is the derived death-rate
// percentage rather than a raw count.
func (m Metric) IsPercentage() bool {
	return m == MetricPercentDied
}

// FormatValue renders a metric value: counts as integers, the percentage
// with two decimals.
func (m Metric) FormatValue(v float64) string {
	if m.IsPercentage() {
		return fmt.Sprintf("%.2f", m.round(v))
	}

	return fmt.Sprintf("%d", int64(v))
}

// FormatDelta renders a change delta with an explicit sign, or "0" when
// nothing changed.
func (m Metric) FormatDelta(r ChangeRecord) string {
	if !r.Changed {
		return "0"
	}
	if m.IsPercentage() {
		return fmt.Sprintf("%+.2f", r.Delta)
	}

	return fmt.Sprintf("%+d", int64(r.Delta))
}

// Direction classifies how a metric moved since the previous observation.
type Direction int

const (
	Unchanged Direction = iota
	Increased
	Decreased
)

// Symbol returns the compact direction indicator used in reports.
func (d Direction) Symbol() string {
	switch d {
	case Increased:
		return "^"
	case Decreased:
		return "v"
	default:
		return "<->"
	}
}

func (d Direction) String() string {
	switch d {
	case Increased:
		return "increased"
	case Decreased:
		return "decreased"
	default:
		return "unchanged"
	}
}

// ChangeRecord is the outcome of classifying one observation.
type ChangeRecord struct {
	Direction Direction
	Delta     float64
	Changed   bool
}
