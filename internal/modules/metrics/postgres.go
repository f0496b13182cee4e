// README: Snapshot store backed by PostgreSQL with a version-checked conditional UPDATE.
package metrics

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, driverID types.ID) (Snapshot, error) {
	row := s.db.QueryRow(ctx, `
        SELECT driver_id,
               trips_requested, trips_accepted, trips_cancelled, trips_completed,
               w24_start, w24_requested, w24_accepted, w24_rejected, w24_cancelled,
               w7d_start, w7d_requested, w7d_accepted, w7d_rejected, w7d_cancelled,
               w30d_start, w30d_requested, w30d_accepted, w30d_rejected, w30d_cancelled,
               acceptance_rate, cancellation_rate, reliability_score,
               tier, in_grace_period, last_updated, version
        FROM driver_metrics
        WHERE driver_id = $1`, string(driverID),
	)

	var snap Snapshot
	err := row.Scan(
		&snap.DriverID,
		&snap.TripsRequested, &snap.TripsAccepted, &snap.TripsCancelled, &snap.TripsCompleted,
		&snap.Last24h.WindowStart, &snap.Last24h.Requested, &snap.Last24h.Accepted, &snap.Last24h.Rejected, &snap.Last24h.Cancelled,
		&snap.Last7Days.WindowStart, &snap.Last7Days.Requested, &snap.Last7Days.Accepted, &snap.Last7Days.Rejected, &snap.Last7Days.Cancelled,
		&snap.Last30Days.WindowStart, &snap.Last30Days.Requested, &snap.Last30Days.Accepted, &snap.Last30Days.Rejected, &snap.Last30Days.Cancelled,
		&snap.AcceptanceRate, &snap.CancellationRate, &snap.ReliabilityScore,
		&snap.Tier, &snap.InGracePeriod, &snap.LastUpdated, &snap.Version,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *PostgresStore) Insert(ctx context.Context, snap Snapshot) error {
	tag, err := s.db.Exec(ctx, `
        INSERT INTO driver_metrics (
            driver_id,
            trips_requested, trips_accepted, trips_cancelled, trips_completed,
            w24_start, w24_requested, w24_accepted, w24_rejected, w24_cancelled,
            w7d_start, w7d_requested, w7d_accepted, w7d_rejected, w7d_cancelled,
            w30d_start, w30d_requested, w30d_accepted, w30d_rejected, w30d_cancelled,
            acceptance_rate, cancellation_rate, reliability_score,
            tier, in_grace_period, last_updated, version
        ) VALUES (
            $1,
            $2, $3, $4, $5,
            $6, $7, $8, $9, $10,
            $11, $12, $13, $14, $15,
            $16, $17, $18, $19, $20,
            $21, $22, $23,
            $24, $25, $26, 0
        )
        ON CONFLICT (driver_id) DO NOTHING`,
		string(snap.DriverID),
		snap.TripsRequested, snap.TripsAccepted, snap.TripsCancelled, snap.TripsCompleted,
		snap.Last24h.WindowStart, snap.Last24h.Requested, snap.Last24h.Accepted, snap.Last24h.Rejected, snap.Last24h.Cancelled,
		snap.Last7Days.WindowStart, snap.Last7Days.Requested, snap.Last7Days.Accepted, snap.Last7Days.Rejected, snap.Last7Days.Cancelled,
		snap.Last30Days.WindowStart, snap.Last30Days.Requested, snap.Last30Days.Accepted, snap.Last30Days.Rejected, snap.Last30Days.Cancelled,
		snap.AcceptanceRate, snap.CancellationRate, snap.ReliabilityScore,
		string(snap.Tier), snap.InGracePeriod, snap.LastUpdated,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrConflict
	}
	return nil
}

func (s *PostgresStore) UpdateCAS(ctx context.Context, snap Snapshot, expectedVersion int64) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE driver_metrics
        SET trips_requested = $2, trips_accepted = $3, trips_cancelled = $4, trips_completed = $5,
            w24_start = $6, w24_requested = $7, w24_accepted = $8, w24_rejected = $9, w24_cancelled = $10,
            w7d_start = $11, w7d_requested = $12, w7d_accepted = $13, w7d_rejected = $14, w7d_cancelled = $15,
            w30d_start = $16, w30d_requested = $17, w30d_accepted = $18, w30d_rejected = $19, w30d_cancelled = $20,
            acceptance_rate = $21, cancellation_rate = $22, reliability_score = $23,
            tier = $24, in_grace_period = $25, last_updated = $26,
            version = version + 1
        WHERE driver_id = $1 AND version = $27`,
		string(snap.DriverID),
		snap.TripsRequested, snap.TripsAccepted, snap.TripsCancelled, snap.TripsCompleted,
		snap.Last24h.WindowStart, snap.Last24h.Requested, snap.Last24h.Accepted, snap.Last24h.Rejected, snap.Last24h.Cancelled,
		snap.Last7Days.WindowStart, snap.Last7Days.Requested, snap.Last7Days.Accepted, snap.Last7Days.Rejected, snap.Last7Days.Cancelled,
		snap.Last30Days.WindowStart, snap.Last30Days.Requested, snap.Last30Days.Accepted, snap.Last30Days.Rejected, snap.Last30Days.Cancelled,
		snap.AcceptanceRate, snap.CancellationRate, snap.ReliabilityScore,
		string(snap.Tier), snap.InGracePeriod, snap.LastUpdated,
		expectedVersion,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrConflict
	}
	return nil
}
