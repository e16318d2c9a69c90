package persistence

import "context"

// SnapshotSource loads a complete CRM snapshot.
type SnapshotSource interface {
	LoadSnapshot(ctx context.Context) (Snapshot, error)
}

// SnapshotWriter replaces the stored snapshot.
type SnapshotWriter interface {
	ImportSnapshot(ctx context.Context, snapshot Snapshot) error
}
