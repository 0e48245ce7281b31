// Package series parses the CSSE time-series CSV layout: a header row of
// dates (after the region and coordinate columns) and one row per region,
// with the most recent day in the last column.
package series

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"codeberg.org/mutker/covidwatch/internal/errors"
)

// SumLastColumn parses CSV data and returns the sum of the last column
// across all data rows. The first row is treated as a header.
func SumLastColumn(data []byte) (float64, error) {
	errFactory := errors.New()

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return 0, errFactory.Wrap(errors.ErrParseFailed, err)
	}

	if len(rows) < 2 {
		return 0, errFactory.New(errors.ErrEmptyDataset)
	}

	var total float64
	for i, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		field := strings.TrimSpace(row[len(row)-1])
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return 0, errFactory.WithData(errors.ErrParseFailed, struct {
				Row   int
				Field string
			}{
				Row:   i + 2,
				Field: field,
			})
		}

		total += value
	}

	return total, nil
}
