package repositories

import (
	"context"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
)

// SnapshotReader defines read operations for monthly asset snapshots
type SnapshotReader interface {
	// FindSnapshotsByUser retrieves a user's snapshots ordered by month then
	// ticker. A zero from bounds nothing; the full history is loaded per view.
	FindSnapshotsByUser(ctx context.Context, userID string, from time.Time) ([]domain.AssetSnapshot, error)
}

// SnapshotWriter defines write operations for monthly asset snapshots
type SnapshotWriter interface {
	// UpsertSnapshots persists a batch of snapshots, overwriting any existing
	// row for the same (asset, month) so re-capturing a month is idempotent.
	UpsertSnapshots(ctx context.Context, snapshots []domain.AssetSnapshot) error
}

// SnapshotRepositoryFacade combines all snapshot-related repository interfaces
// This is a facade for clients that need access to all operations
type SnapshotRepositoryFacade interface {
	SnapshotReader
	SnapshotWriter
}
