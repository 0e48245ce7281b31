package report

import (
	"time"

	"codeberg.org/mutker/covidwatch/internal/tracker"
)

// Entry is one metric's value and classification within a cycle.
type Entry struct {
	Metric tracker.Metric
	Value  float64
	Change tracker.ChangeRecord
}

// Snapshot is the outcome of one complete polling cycle, with entries in
// report order.
type Snapshot struct {
	Timestamp time.Time
	Entries   []Entry
}

// Changed reports whether any metric moved since the previous cycle.
func (s Snapshot) Changed() bool {
	for _, e := range s.Entries {
		if e.Change.Changed {
			return true
		}
	}

	return false
}

// Get returns the entry for a metric. The second return value is false
// when the metric is not part of the snapshot.
func (s Snapshot) Get(metric tracker.Metric) (Entry, bool) {
	for _, e := range s.Entries {
		if e.Metric == metric {
			return e, true
		}
	}

	return Entry{}, false
}
