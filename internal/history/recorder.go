// Package history persists periodic telemetry snapshots to sqlite so
// past thermal behavior can be inspected after the fact.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/errors"
	"github.com/Lostonepelosone-777/PC-Tool-Manager/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

const defaultDirPerm = 0o755

type sqliteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewRecorder opens the snapshot store. With recording disabled it
// returns a no-op recorder, so callers never branch on the setting.
func NewRecorder(cfg Config) (Recorder, error) {
	errFactory := errors.New()

	if !cfg.Enabled {
		return noopRecorder{}, nil
	}
	if cfg.DBPath == "" {
		return nil, errFactory.New(errors.ErrInvalidDBPath)
	}

	logger.Debug().Str("path", cfg.DBPath).Msg("Initializing history recorder")

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(errors.ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", "file:"+cfg.DBPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteRecorder{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS snapshots (
            timestamp INTEGER PRIMARY KEY,
            max_cpu_temp REAL,
            max_gpu_temp REAL,
            mean_temp REAL,
            measured_sensors INTEGER,
            modeled_sensors INTEGER,
            cpu_fan_rpm INTEGER,
            cpu_fan_percent INTEGER
        )
    `)
	if err != nil {
		return errors.New().Wrap(errors.ErrStorageInit, err)
	}

	return nil
}

func (r *sqliteRecorder) Record(ctx context.Context, snapshot *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO snapshots (
            timestamp, max_cpu_temp, max_gpu_temp, mean_temp,
            measured_sensors, modeled_sensors,
            cpu_fan_rpm, cpu_fan_percent
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(timestamp) DO UPDATE SET
            max_cpu_temp = excluded.max_cpu_temp,
            max_gpu_temp = excluded.max_gpu_temp,
            mean_temp = excluded.mean_temp,
            measured_sensors = excluded.measured_sensors,
            modeled_sensors = excluded.modeled_sensors,
            cpu_fan_rpm = excluded.cpu_fan_rpm,
            cpu_fan_percent = excluded.cpu_fan_percent
    `,
		snapshot.Timestamp.Unix(),
		snapshot.MaxCPUTemp,
		snapshot.MaxGPUTemp,
		snapshot.MeanTemp,
		snapshot.MeasuredSensors,
		snapshot.ModeledSensors,
		snapshot.CPUFanRPM,
		snapshot.CPUFanPercent,
	)
	if err != nil {
		return errors.New().Wrap(errors.ErrStorageAccess, err)
	}

	return nil
}

func (r *sqliteRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		logger.Debug().Err(err).Msg("WAL checkpoint on close failed")
	}

	if err := r.db.Close(); err != nil {
		return errors.New().Wrap(errors.ErrStorageClose, err)
	}

	return nil
}

// noopRecorder satisfies Recorder when persistence is disabled.
type noopRecorder struct{}

func (noopRecorder) Record(context.Context, *Snapshot) error { return nil }
func (noopRecorder) Close() error                            { return nil }
