package tracker

import "math"

// Tracker remembers the last observed value of each metric and classifies
// new observations against it. It is not safe for concurrent use; the
// polling loop is the only caller.
type Tracker struct {
	prev map[Metric]observation
}

// observation is a recorded prior value. The seen flag distinguishes
// "never observed" from a legitimately observed zero.
type observation struct {
	value float64
	seen  bool
}

func New() *Tracker {
	return &Tracker{
		prev: make(map[Metric]observation),
	}
}

// Classify compares value against the metric's previous observation and
// returns the change direction, the signed delta and whether anything
// changed. The first observation of a metric is always Unchanged.
// The new value is stored unconditionally, so the next cycle compares
// against the latest observation.
func (t *Tracker) Classify(metric Metric, value float64) ChangeRecord {
	value = metric.round(value)

	prev := t.prev[metric]
	t.prev[metric] = observation{value: value, seen: true}

	if !prev.seen || prev.value == value {
		return ChangeRecord{Direction: Unchanged}
	}

	record := ChangeRecord{
		Delta:   metric.round(value - prev.value),
		Changed: true,
	}
	if value > prev.value {
		record.Direction = Increased
	} else {
		record.Direction = Decreased
	}

	return record
}

// round truncates percentage values to two decimal places; counts pass
// through untouched.
func (m Metric) round(v float64) float64 {
	if m != MetricPercentDied {
		return v
	}

	return math.Round(v*100) / 100
}
