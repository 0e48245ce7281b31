package telemetry

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/mutker/covidwatch/internal/errors"
	"codeberg.org/mutker/covidwatch/internal/logger"
	"codeberg.org/mutker/covidwatch/internal/report"
	"codeberg.org/mutker/covidwatch/internal/tracker"

	_ "github.com/mattn/go-sqlite3"
)

type sqliteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	logger.Debug().Msgf("Initializing telemetry repository at: %s", cfg.DBPath)

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	return &sqliteRepository{
		db: db,
	}, nil
}

func (r *sqliteRepository) Store(ctx context.Context, snapshot report.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	errFactory := errors.New()

	confirmed, _ := snapshot.Get(tracker.MetricConfirmed)
	recovered, _ := snapshot.Get(tracker.MetricRecovered)
	deaths, _ := snapshot.Get(tracker.MetricDeaths)
	percent, _ := snapshot.Get(tracker.MetricPercentDied)

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO cycles (
            timestamp,
            confirmed, recovered, deaths, percent_died,
            confirmed_delta, recovered_delta, deaths_delta, percent_died_delta,
            changed
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(timestamp) DO UPDATE SET
            confirmed = excluded.confirmed,
            recovered = excluded.recovered,
            deaths = excluded.deaths,
            percent_died = excluded.percent_died,
            confirmed_delta = excluded.confirmed_delta,
            recovered_delta = excluded.recovered_delta,
            deaths_delta = excluded.deaths_delta,
            percent_died_delta = excluded.percent_died_delta,
            changed = excluded.changed
    `,
		snapshot.Timestamp.Unix(),
		int64(confirmed.Value),
		int64(recovered.Value),
		int64(deaths.Value),
		percent.Value,
		int64(confirmed.Change.Delta),
		int64(recovered.Change.Delta),
		int64(deaths.Change.Delta),
		percent.Change.Delta,
		boolToInt(snapshot.Changed()),
	)
	if err != nil {
		return errFactory.Wrap(ErrStorageAccess, err)
	}

	return nil
}

func (r *sqliteRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}
	return nil
}
