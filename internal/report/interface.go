package report

import "context"

// Recorder persists snapshots whose metrics changed.
type Recorder interface {
	Append(snapshot Snapshot) error
}

// Presenter renders a snapshot for the user.
type Presenter interface {
	Present(snapshot Snapshot)
}

// Collector stores per-cycle telemetry.
type Collector interface {
	Record(ctx context.Context, snapshot Snapshot) error
}
