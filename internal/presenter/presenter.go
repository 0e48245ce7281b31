// Package presenter renders snapshots as colored terminal output, in
// either the one-line layout or the multi-line split layout for small
// terminals.
package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"codeberg.org/mutker/covidwatch/internal/report"
	"codeberg.org/mutker/covidwatch/internal/tracker"
	"github.com/mattn/go-isatty"
)

const (
	timestampLayout = "02/01/2006 15:04:05"
	maxBannerWidth  = 200
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
)

var metricColors = map[tracker.Metric]string{
	tracker.MetricConfirmed:   colorBlue,
	tracker.MetricRecovered:   colorGreen,
	tracker.MetricDeaths:      colorRed,
	tracker.MetricPercentDied: colorMagenta,
}

type Options struct {
	Split    bool
	TestData bool
	Interval int

	// NoColor disables ANSI colors. Detected from the output when the
	// writer is os.Stdout and left false otherwise.
	NoColor bool
}

type Terminal struct {
	w    io.Writer
	opts Options
}

func NewTerminal(w io.Writer, opts Options) *Terminal {
	if f, ok := w.(*os.File); ok && !isatty.IsTerminal(f.Fd()) {
		opts.NoColor = true
	}

	return &Terminal{w: w, opts: opts}
}

// Present writes the snapshot as a report, one segment per metric.
func (t *Terminal) Present(snapshot report.Snapshot) {
	fmt.Fprintln(t.w)
	t.printHeader(snapshot)

	last := len(snapshot.Entries) - 1
	for i, entry := range snapshot.Entries {
		segment := fmt.Sprintf("%s(%s)(%s): %s",
			t.displayLabel(entry.Metric),
			entry.Change.Direction.Symbol(),
			entry.Metric.FormatDelta(entry.Change),
			entry.Metric.FormatValue(entry.Value))
		if i < last {
			segment += ","
		}

		segment = t.colored(metricColors[entry.Metric], segment)
		if t.opts.Split {
			fmt.Fprintln(t.w, segment)
		} else if i < last {
			fmt.Fprint(t.w, segment+" ")
		} else {
			fmt.Fprintln(t.w, segment)
		}
	}

	fmt.Fprintln(t.w)
}

func (t *Terminal) printHeader(snapshot report.Snapshot) {
	testStr := ""
	if t.opts.TestData {
		testStr = " (Test Data)"
	}

	header := fmt.Sprintf("(%s %ds) Covid19!:%s",
		snapshot.Timestamp.Format(timestampLayout), t.opts.Interval, testStr)

	if t.opts.Split {
		fmt.Fprintln(t.w, t.colored(colorCyan, header))
	} else {
		fmt.Fprint(t.w, t.colored(colorCyan, header)+" ")
	}
}

// displayLabel matches the original layouts: the one-line report spells
// the percentage metric out in full.
func (t *Terminal) displayLabel(metric tracker.Metric) string {
	if metric == tracker.MetricPercentDied && !t.opts.Split {
		return "Percentage Died"
	}

	return metric.Label()
}

// Banner prints a description between two lines of asterisks.
func (t *Terminal) Banner(description string) {
	width := len(description)
	if width > maxBannerWidth {
		width = maxBannerWidth
	}

	line := strings.Repeat("*", width)
	fmt.Fprintf(t.w, "\n%s\n%s\n%s\n\n", line, description, line)
}

func (t *Terminal) colored(color, s string) string {
	if t.opts.NoColor || color == "" {
		return s
	}

	return color + s + colorReset
}
