// README: Snapshot store contract: conditional writes keyed by driver id.
package metrics

import (
	"context"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

// Store persists per-driver snapshots. Implementations must make UpdateCAS an
// atomic conditional write: the row is replaced only if its stored version
// still equals expectedVersion, otherwise ErrConflict. This is what prevents
// two racing event handlers from silently losing each other's update.
type Store interface {
	// Get returns the driver's snapshot, or ErrNotFound.
	Get(ctx context.Context, driverID types.ID) (Snapshot, error)

	// Insert creates the initial snapshot. ErrConflict if a row already exists.
	Insert(ctx context.Context, snap Snapshot) error

	// UpdateCAS replaces the snapshot iff the stored version equals
	// expectedVersion, bumping the version by one. ErrConflict on mismatch.
	UpdateCAS(ctx context.Context, snap Snapshot, expectedVersion int64) error
}
