package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Executor runs migrations and maintains the schema_migrations table.
type Executor struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewExecutor creates a new SQLite migration executor
func NewExecutor(db *sqlx.DB) *Executor {
	return &Executor{db: db, now: time.Now}
}

// InitializeVersionTable creates the schema_migrations table if it doesn't exist
func (e *Executor) InitializeVersionTable(ctx context.Context) error {
	const createTableSQL = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL,
			checksum TEXT NOT NULL DEFAULT '',
			execution_time_ms INTEGER NOT NULL DEFAULT 0
		)
	`
	if _, err := e.db.ExecContext(ctx, createTableSQL); err != nil {
		return dbError("", "create schema_migrations table", err)
	}
	return nil
}

// Apply executes the migration and records it in one transaction, so a
// failed statement leaves neither schema changes nor a version row behind.
func (e *Executor) Apply(ctx context.Context, migration Migration) (err error) {
	start := e.now()

	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return dbError(migration.Version, "begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i, stmt := range splitStatements(migration.SQL) {
		if _, execErr := tx.ExecContext(ctx, stmt); execErr != nil {
			err = dbError(migration.Version, fmt.Sprintf("execute statement %d", i+1), execErr)
			return err
		}
	}

	const insertSQL = `
		INSERT INTO schema_migrations (version, applied_at, checksum, execution_time_ms)
		VALUES (?, ?, ?, ?)
	`
	elapsed := e.now().Sub(start)
	if _, execErr := tx.ExecContext(ctx, insertSQL, migration.Version, e.now().UTC().Format(time.RFC3339), migration.Checksum, elapsed.Milliseconds()); execErr != nil {
		err = dbError(migration.Version, "record migration", execErr)
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		err = dbError(migration.Version, "commit transaction", commitErr)
		return err
	}
	return nil
}

type appliedRow struct {
	Version         string `db:"version"`
	AppliedAt       string `db:"applied_at"`
	Checksum        string `db:"checksum"`
	ExecutionTimeMS int64  `db:"execution_time_ms"`
}

// Applied returns all applied migration versions with timestamps
func (e *Executor) Applied(ctx context.Context) ([]AppliedMigration, error) {
	var rows []appliedRow
	const querySQL = `
		SELECT version, applied_at, checksum, execution_time_ms
		FROM schema_migrations
		ORDER BY CAST(version AS INTEGER) ASC
	`
	if err := e.db.SelectContext(ctx, &rows, querySQL); err != nil {
		return nil, dbError("", "get applied versions", err)
	}

	applied := make([]AppliedMigration, 0, len(rows))
	for _, row := range rows {
		appliedAt, err := time.Parse(time.RFC3339, row.AppliedAt)
		if err != nil {
			return nil, dbError(row.Version, "parse applied_at", err)
		}
		applied = append(applied, AppliedMigration{
			Version:       row.Version,
			AppliedAt:     appliedAt,
			ExecutionTime: time.Duration(row.ExecutionTimeMS) * time.Millisecond,
			Checksum:      row.Checksum,
		})
	}
	return applied, nil
}
