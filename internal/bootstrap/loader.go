package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/realestate-crm/internal/persistence"
)

// Store is a snapshot store that can be seeded when empty.
type Store interface {
	persistence.SnapshotSource
	persistence.SnapshotWriter
}

// LoadSnapshot returns the snapshot from store. When store is nil the seed
// is used directly; when store is empty the seed is imported into it first.
// Dangling references are logged as warnings and never fail the load.
func LoadSnapshot(ctx context.Context, store Store, seed persistence.SnapshotSource, logger *slog.Logger) (persistence.Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "bootstrap")

	snapshot, origin, err := resolve(ctx, store, seed, logger)
	if err != nil {
		return persistence.Snapshot{}, err
	}

	dangling := ReportDangling(ctx, snapshot, logger)
	logger.InfoContext(ctx, "snapshot loaded",
		"origin", origin,
		"users", len(snapshot.Users),
		"clients", len(snapshot.Clients),
		"properties", len(snapshot.Properties),
		"dangling_references", dangling,
	)
	return snapshot, nil
}

func resolve(ctx context.Context, store Store, seed persistence.SnapshotSource, logger *slog.Logger) (persistence.Snapshot, string, error) {
	if store == nil {
		if seed == nil {
			return persistence.Snapshot{}, "", fmt.Errorf("bootstrap: no snapshot source configured")
		}
		snapshot, err := seed.LoadSnapshot(ctx)
		if err != nil {
			return persistence.Snapshot{}, "", fmt.Errorf("bootstrap: load seed: %w", err)
		}
		return snapshot, "seed", nil
	}

	snapshot, err := store.LoadSnapshot(ctx)
	if err == nil {
		return snapshot, "store", nil
	}
	if !errors.Is(err, persistence.ErrEmptyStore) || seed == nil {
		return persistence.Snapshot{}, "", fmt.Errorf("bootstrap: load store: %w", err)
	}

	logger.InfoContext(ctx, "store is empty, importing seed")
	snapshot, err = seed.LoadSnapshot(ctx)
	if err != nil {
		return persistence.Snapshot{}, "", fmt.Errorf("bootstrap: load seed: %w", err)
	}
	if err := store.ImportSnapshot(ctx, snapshot); err != nil {
		return persistence.Snapshot{}, "", fmt.Errorf("bootstrap: import seed: %w", err)
	}
	return snapshot, "seed_imported", nil
}

// ReportDangling logs one warning per reference whose target is missing and
// returns how many were found.
func ReportDangling(ctx context.Context, snapshot persistence.Snapshot, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}
	refs := snapshot.DanglingReferences()
	for _, ref := range refs {
		logger.WarnContext(ctx, "dangling reference",
			"collection", ref.Collection,
			"id", ref.ID,
			"field", ref.Field,
			"target", ref.Target,
		)
	}
	return len(refs)
}
