// Package sqlite provides a SQLite-backed pass report store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/biomemod/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/biomemod/internal/storage"
	"github.com/louisbranch/biomemod/internal/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const statusOK = "OK"

// Store persists pass reports in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite pass report store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordPassRun inserts one pass run and its applications atomically.
func (s *Store) RecordPassRun(ctx context.Context, run storage.PassRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	runID := strings.TrimSpace(run.ID)
	if runID == "" {
		return fmt.Errorf("run id is required")
	}
	startedAt := run.StartedAt.UTC()
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}
	status := strings.TrimSpace(run.Status)
	if status == "" {
		status = statusOK
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record pass run: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO pass_runs (
		   run_id,
		   world,
		   started_at,
		   elapsed_micros,
		   biomes_processed,
		   biomes_changed,
		   modifiers_applied,
		   status,
		   error_reason,
		   error_message
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		strings.TrimSpace(run.World),
		toMillis(startedAt),
		run.Elapsed.Microseconds(),
		run.BiomesProcessed,
		run.BiomesChanged,
		run.ModifiersApplied,
		status,
		run.ErrorReason,
		run.ErrorMessage,
	)
	if err != nil {
		if isPassRunUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("record pass run: %w", err)
	}

	for i, application := range run.Applications {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO pass_applications (run_id, position, modifier_id, phase, biome_key)
			 VALUES (?, ?, ?, ?, ?)`,
			runID,
			i,
			application.Modifier,
			application.Phase,
			application.Biome,
		); err != nil {
			return fmt.Errorf("record pass application %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit pass run: %w", err)
	}
	return nil
}

// GetPassRun returns one pass run with its applications.
func (s *Store) GetPassRun(ctx context.Context, id string) (storage.PassRun, error) {
	if err := ctx.Err(); err != nil {
		return storage.PassRun{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.PassRun{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.PassRun{}, fmt.Errorf("run id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT seq, run_id, world, started_at, elapsed_micros,
		        biomes_processed, biomes_changed, modifiers_applied,
		        status, error_reason, error_message
		   FROM pass_runs
		  WHERE run_id = ?`,
		id,
	)
	run, _, err := scanPassRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.PassRun{}, storage.ErrNotFound
		}
		return storage.PassRun{}, fmt.Errorf("get pass run: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT modifier_id, phase, biome_key
		   FROM pass_applications
		  WHERE run_id = ?
		  ORDER BY position ASC`,
		id,
	)
	if err != nil {
		return storage.PassRun{}, fmt.Errorf("get pass applications: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var application storage.Application
		if err := rows.Scan(&application.Modifier, &application.Phase, &application.Biome); err != nil {
			return storage.PassRun{}, fmt.Errorf("get pass applications: %w", err)
		}
		run.Applications = append(run.Applications, application)
	}
	if err := rows.Err(); err != nil {
		return storage.PassRun{}, fmt.Errorf("get pass applications: %w", err)
	}
	return run, nil
}

// ListPassRuns returns one page of pass runs, newest first.
func (s *Store) ListPassRuns(ctx context.Context, pageSize int, pageToken string) (storage.PassRunPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.PassRunPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.PassRunPage{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		return storage.PassRunPage{}, fmt.Errorf("page size must be greater than zero")
	}
	pageToken = strings.TrimSpace(pageToken)

	var (
		rows *sql.Rows
		err  error
	)
	if pageToken == "" {
		rows, err = s.sqlDB.QueryContext(
			ctx,
			`SELECT seq, run_id, world, started_at, elapsed_micros,
			        biomes_processed, biomes_changed, modifiers_applied,
			        status, error_reason, error_message
			   FROM pass_runs
			  ORDER BY seq DESC
			  LIMIT ?`,
			pageSize+1,
		)
	} else {
		before, parseErr := strconv.ParseInt(pageToken, 10, 64)
		if parseErr != nil {
			return storage.PassRunPage{}, fmt.Errorf("invalid page token %q", pageToken)
		}
		rows, err = s.sqlDB.QueryContext(
			ctx,
			`SELECT seq, run_id, world, started_at, elapsed_micros,
			        biomes_processed, biomes_changed, modifiers_applied,
			        status, error_reason, error_message
			   FROM pass_runs
			  WHERE seq < ?
			  ORDER BY seq DESC
			  LIMIT ?`,
			before,
			pageSize+1,
		)
	}
	if err != nil {
		return storage.PassRunPage{}, fmt.Errorf("list pass runs: %w", err)
	}
	defer rows.Close()

	page := storage.PassRunPage{Runs: make([]storage.PassRun, 0, pageSize)}
	var seqs []int64
	for rows.Next() {
		run, seq, err := scanPassRun(rows)
		if err != nil {
			return storage.PassRunPage{}, fmt.Errorf("list pass runs: %w", err)
		}
		page.Runs = append(page.Runs, run)
		seqs = append(seqs, seq)
	}
	if err := rows.Err(); err != nil {
		return storage.PassRunPage{}, fmt.Errorf("list pass runs: %w", err)
	}
	if len(page.Runs) > pageSize {
		page.NextPageToken = strconv.FormatInt(seqs[pageSize-1], 10)
		page.Runs = page.Runs[:pageSize]
	}
	return page, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPassRun(row rowScanner) (storage.PassRun, int64, error) {
	var (
		run           storage.PassRun
		seq           int64
		startedAt     int64
		elapsedMicros int64
	)
	if err := row.Scan(
		&seq,
		&run.ID,
		&run.World,
		&startedAt,
		&elapsedMicros,
		&run.BiomesProcessed,
		&run.BiomesChanged,
		&run.ModifiersApplied,
		&run.Status,
		&run.ErrorReason,
		&run.ErrorMessage,
	); err != nil {
		return storage.PassRun{}, 0, err
	}
	run.StartedAt = fromMillis(startedAt)
	run.Elapsed = time.Duration(elapsedMicros) * time.Microsecond
	return run, seq, nil
}

func isPassRunUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "pass_runs.run_id")
}

var _ storage.PassRunStore = (*Store)(nil)
