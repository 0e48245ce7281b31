package telemetry

import (
	"database/sql"

	"codeberg.org/mutker/covidwatch/internal/errors"
)

// initSchema initializes the database schema for cycle snapshots
func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS cycles (
            timestamp INTEGER PRIMARY KEY,
            confirmed INTEGER,
            recovered INTEGER,
            deaths INTEGER,
            percent_died REAL,
            confirmed_delta INTEGER,
            recovered_delta INTEGER,
            deaths_delta INTEGER,
            percent_died_delta REAL,
            changed INTEGER
        )
    `)
	if err != nil {
		return errors.New().Wrap(ErrSchemaInitFailed, err)
	}

	return nil
}
