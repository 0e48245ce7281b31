package tracker_test

import (
	"testing"

	"codeberg.org/mutker/covidwatch/internal/tracker"
	"github.com/stretchr/testify/assert"
)

func TestFirstObservationIsUnchanged(t *testing.T) {
	tr := tracker.New()

	for _, metric := range tracker.All() {
		record := tr.Classify(metric, 12345)
		assert.Equal(t, tracker.Unchanged, record.Direction, "metric %s", metric)
		assert.Zero(t, record.Delta, "metric %s", metric)
		assert.False(t, record.Changed, "metric %s", metric)
	}
}

func TestFirstObservationOfZeroIsUnchanged(t *testing.T) {
	tr := tracker.New()

	record := tr.Classify(tracker.MetricRecovered, 0)
	assert.False(t, record.Changed)
	assert.Equal(t, tracker.Unchanged, record.Direction)
}

func TestEqualValuesAreUnchanged(t *testing.T) {
	tr := tracker.New()

	tr.Classify(tracker.MetricConfirmed, 500)
	record := tr.Classify(tracker.MetricConfirmed, 500)

	assert.Equal(t, tracker.Unchanged, record.Direction)
	assert.Zero(t, record.Delta)
	assert.False(t, record.Changed)
}

func TestIncreasingSequence(t *testing.T) {
	tr := tracker.New()

	values := []float64{10, 25, 100, 101}
	tr.Classify(tracker.MetricDeaths, values[0])

	for i := 1; i < len(values); i++ {
		record := tr.Classify(tracker.MetricDeaths, values[i])
		assert.Equal(t, tracker.Increased, record.Direction)
		assert.Equal(t, values[i]-values[i-1], record.Delta)
		assert.True(t, record.Changed)
	}
}

func TestDecreasingSequence(t *testing.T) {
	tr := tracker.New()

	values := []float64{100, 80, 79, 3}
	tr.Classify(tracker.MetricConfirmed, values[0])

	for i := 1; i < len(values); i++ {
		record := tr.Classify(tracker.MetricConfirmed, values[i])
		assert.Equal(t, tracker.Decreased, record.Direction)
		assert.Equal(t, values[i]-values[i-1], record.Delta)
		assert.True(t, record.Changed)
	}
}

func TestDeathsIncreaseScenario(t *testing.T) {
	tr := tracker.New()

	tr.Classify(tracker.MetricDeaths, 100)
	record := tr.Classify(tracker.MetricDeaths, 120)

	assert.Equal(t, tracker.Increased, record.Direction)
	assert.Equal(t, float64(20), record.Delta)
	assert.True(t, record.Changed)
}

func TestPercentageDeltaRounding(t *testing.T) {
	tr := tracker.New()

	tr.Classify(tracker.MetricPercentDied, 5.004)
	record := tr.Classify(tracker.MetricPercentDied, 5.128)

	assert.True(t, record.Changed)
	assert.Equal(t, tracker.Increased, record.Direction)
	assert.InDelta(t, 0.13, record.Delta, 1e-9)
}

func TestPercentageValueRoundedBeforeComparison(t *testing.T) {
	tr := tracker.New()

	// Both observations round to 5.00, so nothing changed.
	tr.Classify(tracker.MetricPercentDied, 5.001)
	record := tr.Classify(tracker.MetricPercentDied, 5.004)

	assert.False(t, record.Changed)
	assert.Equal(t, tracker.Unchanged, record.Direction)
}

func TestPriorValueStoredEvenWhenUnchanged(t *testing.T) {
	tr := tracker.New()

	tr.Classify(tracker.MetricConfirmed, 500)
	tr.Classify(tracker.MetricConfirmed, 500)
	record := tr.Classify(tracker.MetricConfirmed, 510)

	assert.Equal(t, tracker.Increased, record.Direction)
	assert.Equal(t, float64(10), record.Delta)
}

func TestZeroIsLegitimateAfterFirstObservation(t *testing.T) {
	tr := tracker.New()

	tr.Classify(tracker.MetricRecovered, 0)
	record := tr.Classify(tracker.MetricRecovered, 5)

	assert.Equal(t, tracker.Increased, record.Direction)
	assert.Equal(t, float64(5), record.Delta)
	assert.True(t, record.Changed)
}

func TestMetricsAreTrackedIndependently(t *testing.T) {
	tr := tracker.New()

	tr.Classify(tracker.MetricConfirmed, 100)
	tr.Classify(tracker.MetricDeaths, 10)

	confirmed := tr.Classify(tracker.MetricConfirmed, 150)
	deaths := tr.Classify(tracker.MetricDeaths, 10)

	assert.True(t, confirmed.Changed)
	assert.False(t, deaths.Changed)
}

func TestDecreaseDeltaIsNegative(t *testing.T) {
	tr := tracker.New()

	tr.Classify(tracker.MetricRecovered, 50)
	record := tr.Classify(tracker.MetricRecovered, 30)

	assert.Equal(t, float64(-20), record.Delta)
	assert.Equal(t, "-20", tracker.MetricRecovered.FormatDelta(record))
}

func TestDirectionSymbols(t *testing.T) {
	assert.Equal(t, "^", tracker.Increased.Symbol())
	assert.Equal(t, "v", tracker.Decreased.Symbol())
	assert.Equal(t, "<->", tracker.Unchanged.Symbol())
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1500", tracker.MetricConfirmed.FormatValue(1500))
	assert.Equal(t, "5.00", tracker.MetricPercentDied.FormatValue(5.001))
	assert.Equal(t, "3.41", tracker.MetricPercentDied.FormatValue(3.412))
}

func TestFormatDelta(t *testing.T) {
	unchanged := tracker.ChangeRecord{Direction: tracker.Unchanged}
	assert.Equal(t, "0", tracker.MetricDeaths.FormatDelta(unchanged))

	increased := tracker.ChangeRecord{Direction: tracker.Increased, Delta: 20, Changed: true}
	assert.Equal(t, "+20", tracker.MetricDeaths.FormatDelta(increased))

	percent := tracker.ChangeRecord{Direction: tracker.Increased, Delta: 0.13, Changed: true}
	assert.Equal(t, "+0.13", tracker.MetricPercentDied.FormatDelta(percent))
}
