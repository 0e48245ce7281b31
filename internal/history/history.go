// Package history maintains the append-only change log: one line per
// polling cycle in which at least one metric moved. The file is created
// on first write and never truncated or rotated.
package history

import (
	"fmt"
	"io"
	"os"
	"strings"

	"codeberg.org/mutker/covidwatch/internal/errors"
	"codeberg.org/mutker/covidwatch/internal/report"
)

const (
	timestampLayout = "02/01/2006 15:04:05"
	defaultFilePerm = 0o644
)

type Log struct {
	path string
}

func New(path string) *Log {
	return &Log{path: path}
}

// Append writes one history line for the snapshot.
func (l *Log) Append(snapshot report.Snapshot) error {
	errFactory := errors.New()

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, defaultFilePerm)
	if err != nil {
		return errFactory.Wrap(errors.ErrHistoryAccess, err)
	}
	defer file.Close()

	if _, err := file.WriteString(Line(snapshot) + "\n"); err != nil {
		return errFactory.Wrap(errors.ErrHistoryAccess, err)
	}

	return nil
}

// Show copies the history file to w. A missing or empty file prints
// nothing.
func (l *Log) Show(w io.Writer) error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errors.New().Wrap(errors.ErrHistoryAccess, err)
	}

	if len(data) == 0 {
		return nil
	}

	_, err = w.Write(data)
	if err != nil {
		return errors.New().Wrap(errors.ErrHistoryAccess, err)
	}

	return nil
}

// Line renders a snapshot as a single history line:
//
//	COVID19 Report(<DD/MM/YYYY HH:MM:SS>):: Confirmed(<sym>)(<delta>): <value>, ...
func Line(snapshot report.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "COVID19 Report(%s):: ", snapshot.Timestamp.Format(timestampLayout))

	for i, entry := range snapshot.Entries {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s(%s)(%s): %s",
			entry.Metric.Label(),
			entry.Change.Direction.Symbol(),
			entry.Metric.FormatDelta(entry.Change),
			entry.Metric.FormatValue(entry.Value))
	}

	return b.String()
}
