package telemetry

import (
	"context"

	"codeberg.org/mutker/covidwatch/internal/report"
)

// Collector defines the core domain interface
type Collector interface {
	Record(ctx context.Context, snapshot report.Snapshot) error
	Close() error
}

// Repository defines the interface for snapshot storage
type Repository interface {
	Store(ctx context.Context, snapshot report.Snapshot) error
	Close() error
}
