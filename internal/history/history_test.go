package history_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/mutker/covidwatch/internal/history"
	"codeberg.org/mutker/covidwatch/internal/report"
	"codeberg.org/mutker/covidwatch/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() report.Snapshot {
	return report.Snapshot{
		Timestamp: time.Date(2020, time.March, 14, 15, 9, 26, 0, time.UTC),
		Entries: []report.Entry{
			{
				Metric: tracker.MetricConfirmed,
				Value:  1500,
				Change: tracker.ChangeRecord{Direction: tracker.Increased, Delta: 100, Changed: true},
			},
			{
				Metric: tracker.MetricRecovered,
				Value:  200,
				Change: tracker.ChangeRecord{Direction: tracker.Unchanged},
			},
			{
				Metric: tracker.MetricDeaths,
				Value:  50,
				Change: tracker.ChangeRecord{Direction: tracker.Decreased, Delta: -5, Changed: true},
			},
			{
				Metric: tracker.MetricPercentDied,
				Value:  3.3333,
				Change: tracker.ChangeRecord{Direction: tracker.Increased, Delta: 0.13, Changed: true},
			},
		},
	}
}

func TestLineFormat(t *testing.T) {
	line := history.Line(sampleSnapshot())

	assert.Equal(t,
		"COVID19 Report(14/03/2020 15:09:26):: "+
			"Confirmed(^)(+100): 1500, "+
			"Recovered(<->)(0): 200, "+
			"Deaths(v)(-5): 50, "+
			"% Died(^)(+0.13): 3.33",
		line)
}

func TestAppendCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "covid19_history.dat")
	log := history.New(path)

	require.NoError(t, log.Append(sampleSnapshot()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "COVID19 Report("))
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestAppendIsAppendOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "covid19_history.dat")
	log := history.New(path)

	require.NoError(t, log.Append(sampleSnapshot()))
	require.NoError(t, log.Append(sampleSnapshot()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 2)
}

func TestShowMissingFilePrintsNothing(t *testing.T) {
	log := history.New(filepath.Join(t.TempDir(), "missing.dat"))

	var buf bytes.Buffer
	require.NoError(t, log.Show(&buf))
	assert.Zero(t, buf.Len())
}

func TestShowEmptyFilePrintsNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "covid19_history.dat")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	var buf bytes.Buffer
	require.NoError(t, history.New(path).Show(&buf))
	assert.Zero(t, buf.Len())
}

func TestShowPrintsContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "covid19_history.dat")
	log := history.New(path)
	require.NoError(t, log.Append(sampleSnapshot()))

	var buf bytes.Buffer
	require.NoError(t, log.Show(&buf))
	assert.Contains(t, buf.String(), "Confirmed(^)(+100): 1500")
}
