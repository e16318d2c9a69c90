// Package sqlite persists CRM snapshots in a SQLite database through sqlx and
// the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/example/realestate-crm/internal/persistence"
	"github.com/example/realestate-crm/internal/persistence/sqlite/migration"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store reads and replaces a complete snapshot.
type Store struct {
	db     *sqlx.DB
	logger *slog.Logger
	now    func() time.Time
}

var (
	_ persistence.SnapshotSource = (*Store)(nil)
	_ persistence.SnapshotWriter = (*Store)(nil)
)

// Open connects to the database described by cfg. Call Migrate before use.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, logger: logger.With("component", "sqlite"), now: time.Now}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the underlying pool for tests and maintenance commands.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Migrate applies the embedded schema migrations.
func (s *Store) Migrate(ctx context.Context) error {
	manager := migration.NewManager(
		migration.NewScanner(migrationsFS, "migrations"),
		migration.NewExecutor(s.db),
		s.logger,
	)
	return manager.Run(ctx)
}

// ImportedAt reports when the stored snapshot was written.
func (s *Store) ImportedAt(ctx context.Context) (time.Time, error) {
	var raw string
	err := s.db.GetContext(ctx, &raw, `SELECT imported_at FROM snapshot_meta WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, persistence.ErrEmptyStore
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: read snapshot meta: %w", err)
	}
	return parseTime(raw)
}

// ImportSnapshot replaces every stored row with the given snapshot inside a
// single transaction. Collection order is preserved.
func (s *Store) ImportSnapshot(ctx context.Context, snapshot persistence.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	err := withTransaction(ctx, s.db, func(tx *sqlx.Tx) error {
		for _, table := range snapshotTables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		if err := insertRows(ctx, tx, insertUserSQL, snapshot.Users, toUserRow); err != nil {
			return fmt.Errorf("insert users: %w", err)
		}
		if err := insertRows(ctx, tx, insertClientSQL, snapshot.Clients, toClientRow); err != nil {
			return fmt.Errorf("insert clients: %w", err)
		}
		if err := insertRows(ctx, tx, insertPropertySQL, snapshot.Properties, toPropertyRow); err != nil {
			return fmt.Errorf("insert properties: %w", err)
		}
		if err := insertRows(ctx, tx, insertActivitySQL, snapshot.Activities, toActivityRow); err != nil {
			return fmt.Errorf("insert activities: %w", err)
		}
		if err := insertRows(ctx, tx, insertOfferSQL, snapshot.Offers, toOfferRow); err != nil {
			return fmt.Errorf("insert offers: %w", err)
		}
		if err := insertRows(ctx, tx, insertRoomSQL, snapshot.Rooms, toRoomRow); err != nil {
			return fmt.Errorf("insert meeting rooms: %w", err)
		}
		if err := insertRows(ctx, tx, insertBookingSQL, snapshot.Bookings, toBookingRow); err != nil {
			return fmt.Errorf("insert bookings: %w", err)
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_meta (id, imported_at) VALUES (1, ?)
			 ON CONFLICT(id) DO UPDATE SET imported_at = excluded.imported_at`,
			formatTime(s.now()))
		if err != nil {
			return fmt.Errorf("write snapshot meta: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sqlite: import snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "snapshot imported",
		"users", len(snapshot.Users),
		"clients", len(snapshot.Clients),
		"properties", len(snapshot.Properties),
		"activities", len(snapshot.Activities),
		"offers", len(snapshot.Offers),
		"rooms", len(snapshot.Rooms),
		"bookings", len(snapshot.Bookings),
	)
	return nil
}

// LoadSnapshot reads every collection in stored order. It returns
// persistence.ErrEmptyStore when nothing has been imported yet.
func (s *Store) LoadSnapshot(ctx context.Context) (persistence.Snapshot, error) {
	if _, err := s.ImportedAt(ctx); err != nil {
		return persistence.Snapshot{}, err
	}

	var (
		users      []userRow
		clients    []clientRow
		properties []propertyRow
		activities []activityRow
		offers     []offerRow
		rooms      []roomRow
		bookings   []bookingRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.db.SelectContext(gctx, &users, `SELECT * FROM users ORDER BY seq`) })
	g.Go(func() error { return s.db.SelectContext(gctx, &clients, `SELECT * FROM clients ORDER BY seq`) })
	g.Go(func() error { return s.db.SelectContext(gctx, &properties, `SELECT * FROM properties ORDER BY seq`) })
	g.Go(func() error { return s.db.SelectContext(gctx, &activities, `SELECT * FROM activities ORDER BY seq`) })
	g.Go(func() error { return s.db.SelectContext(gctx, &offers, `SELECT * FROM offers ORDER BY seq`) })
	g.Go(func() error { return s.db.SelectContext(gctx, &rooms, `SELECT * FROM meeting_rooms ORDER BY seq`) })
	g.Go(func() error { return s.db.SelectContext(gctx, &bookings, `SELECT * FROM bookings ORDER BY seq`) })
	if err := g.Wait(); err != nil {
		return persistence.Snapshot{}, fmt.Errorf("sqlite: load snapshot: %w", err)
	}

	var snapshot persistence.Snapshot
	var err error
	if snapshot.Users, err = convertRows(users, userRow.model); err != nil {
		return persistence.Snapshot{}, err
	}
	if snapshot.Clients, err = convertRows(clients, clientRow.model); err != nil {
		return persistence.Snapshot{}, err
	}
	if snapshot.Properties, err = convertRows(properties, propertyRow.model); err != nil {
		return persistence.Snapshot{}, err
	}
	if snapshot.Activities, err = convertRows(activities, activityRow.model); err != nil {
		return persistence.Snapshot{}, err
	}
	if snapshot.Offers, err = convertRows(offers, offerRow.model); err != nil {
		return persistence.Snapshot{}, err
	}
	if snapshot.Rooms, err = convertRows(rooms, roomRow.model); err != nil {
		return persistence.Snapshot{}, err
	}
	if snapshot.Bookings, err = convertRows(bookings, bookingRow.model); err != nil {
		return persistence.Snapshot{}, err
	}
	return snapshot, nil
}

var snapshotTables = []string{
	"users", "clients", "properties", "activities", "offers", "meeting_rooms", "bookings",
}

func insertRows[M, R any](ctx context.Context, tx *sqlx.Tx, query string, items []M, toRow func(int, M) (R, error)) error {
	if len(items) == 0 {
		return nil
	}
	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, item := range items {
		row, err := toRow(i, item)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func convertRows[R, M any](rows []R, toModel func(R) (M, error)) ([]M, error) {
	out := make([]M, 0, len(rows))
	for _, row := range rows {
		model, err := toModel(row)
		if err != nil {
			return nil, fmt.Errorf("sqlite: decode row: %w", err)
		}
		out = append(out, model)
	}
	return out, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", raw, err)
	}
	return t, nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
