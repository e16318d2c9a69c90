package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Manager orchestrates scanning, sequence validation and execution.
type Manager struct {
	scanner  *Scanner
	executor *Executor
	logger   *slog.Logger
}

// NewManager wires a scanner and an executor.
func NewManager(scanner *Scanner, executor *Executor, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{scanner: scanner, executor: executor, logger: logger.With("component", "migration")}
}

// Run applies every pending migration in ascending version order.
func (m *Manager) Run(ctx context.Context) error {
	start := time.Now()

	status, err := m.Status(ctx)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to determine migration status", "error", err)
		return err
	}

	if status.PendingCount == 0 {
		m.logger.InfoContext(ctx, "database schema up to date", "current_version", status.CurrentVersion)
		return nil
	}

	for i, migration := range status.PendingMigrations {
		logger := m.logger.With(
			"version", migration.Version,
			"description", migration.Description,
			"position", fmt.Sprintf("%d/%d", i+1, status.PendingCount),
		)
		logger.InfoContext(ctx, "applying migration")

		if err := m.executor.Apply(ctx, migration); err != nil {
			logger.ErrorContext(ctx, "migration failed", "error", err)
			return fileError(migration.Version, migration.FilePath, "execute migration",
				fmt.Errorf("%w: %w", ErrMigrationFailed, err))
		}
	}

	m.logger.InfoContext(ctx, "migrations applied",
		"count", status.PendingCount,
		"duration", time.Since(start),
	)
	return nil
}

// Status reports applied and pending migrations after validating that the
// available files form a gapless sequence covering every applied version.
func (m *Manager) Status(ctx context.Context) (*Status, error) {
	if err := m.executor.InitializeVersionTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize version table: %w", err)
	}

	available, err := m.scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan migrations: %w", err)
	}

	applied, err := m.executor.Applied(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied versions: %w", err)
	}

	if err := validateSequence(available, applied); err != nil {
		return nil, fmt.Errorf("migration sequence validation failed: %w", err)
	}

	appliedSet := make(map[string]struct{}, len(applied))
	status := &Status{AppliedMigrations: applied}
	for _, a := range applied {
		appliedSet[a.Version] = struct{}{}
		if versionNumber(a.Version) > versionNumber(status.CurrentVersion) {
			status.CurrentVersion = a.Version
		}
	}
	for _, migration := range available {
		if _, ok := appliedSet[migration.Version]; !ok {
			status.PendingMigrations = append(status.PendingMigrations, migration)
		}
	}
	status.PendingCount = len(status.PendingMigrations)
	return status, nil
}

// validateSequence ensures there are no gaps in migration version numbers,
// every applied version still has a file, and applied files are unchanged.
func validateSequence(available []Migration, applied []AppliedMigration) error {
	byVersion := make(map[int]Migration, len(available))
	for _, migration := range available {
		byVersion[versionNumber(migration.Version)] = migration
	}

	if len(available) > 0 {
		minVersion := versionNumber(available[0].Version)
		maxVersion := versionNumber(available[len(available)-1].Version)
		for version := minVersion; version <= maxVersion; version++ {
			if _, ok := byVersion[version]; !ok {
				return fmt.Errorf("%w: missing migration version %03d in sequence", ErrVersionConflict, version)
			}
		}
	}

	for _, a := range applied {
		migration, ok := byVersion[versionNumber(a.Version)]
		if !ok {
			return fmt.Errorf("%w: applied migration %s not found in available migrations", ErrVersionConflict, a.Version)
		}
		if a.Checksum != "" && a.Checksum != migration.Checksum {
			return fileError(a.Version, migration.FilePath, "verify checksum", ErrChecksumMismatch)
		}
	}
	return nil
}
