// README: Trip lifecycle event handlers: load snapshot, apply one delta, recompute, persist.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/clock"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/telemetry"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

var (
	ErrNotFound     = errors.New("driver metrics not found")
	ErrConflict     = errors.New("driver metrics version conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidInput = errors.New("invalid metrics input")
)

// RatingSource supplies the driver's current star rating at recompute time.
type RatingSource interface {
	Rating(ctx context.Context, driverID types.ID) (float64, error)
}

// PriorityCache receives the freshly derived tier and reliability score after
// every successful persist so dispatch can rank without touching Postgres.
// Publication is best-effort; a cache failure never fails the event.
type PriorityCache interface {
	Publish(ctx context.Context, driverID types.ID, tier Tier, reliabilityScore float64) error
}

type Service struct {
	store   Store
	ratings RatingSource
	cache   PriorityCache
	clock   clock.Clock
}

// NewService wires the engine. cache may be nil.
func NewService(store Store, ratings RatingSource, cache PriorityCache, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.Real()
	}
	return &Service{store: store, ratings: ratings, cache: cache, clock: clk}
}

type eventKind string

const (
	eventRequested eventKind = "requested"
	eventAccepted  eventKind = "accepted"
	eventRejected  eventKind = "rejected"
	eventCancelled eventKind = "cancelled"
	eventCompleted eventKind = "completed"
)

// OnTripRequested records a ride request sent to the driver.
func (s *Service) OnTripRequested(ctx context.Context, driverID types.ID) error {
	return s.apply(ctx, driverID, eventRequested, "")
}

// OnTripAccepted records the driver accepting a request.
func (s *Service) OnTripAccepted(ctx context.Context, driverID types.ID) error {
	return s.apply(ctx, driverID, eventAccepted, "")
}

// OnTripRejected records a declined or expired request. Rejections affect
// only the windows; there is no lifetime rejection counter.
func (s *Service) OnTripRejected(ctx context.Context, driverID types.ID) error {
	return s.apply(ctx, driverID, eventRejected, "")
}

// OnTripCancelled records a driver-side cancellation. Exempt reasons
// (emergency, safety concern, no-show, vehicle issue) leave every cancellation
// counter untouched.
func (s *Service) OnTripCancelled(ctx context.Context, driverID types.ID, reason string) error {
	return s.apply(ctx, driverID, eventCancelled, reason)
}

// OnTripCompleted records a finished trip. Completion sits outside the
// accept/reject/cancel window accounting; it only advances the lifetime
// counter and may release the grace period.
func (s *Service) OnTripCompleted(ctx context.Context, driverID types.ID) error {
	return s.apply(ctx, driverID, eventCompleted, "")
}

// GetSnapshot is the read-only accessor for display and ranking. Readers must
// tolerate snapshots that are a few seconds stale.
func (s *Service) GetSnapshot(ctx context.Context, driverID types.ID) (Snapshot, error) {
	if driverID == "" {
		return Snapshot{}, ErrBadRequest
	}
	return s.store.Get(ctx, driverID)
}

// InitializeIfMissing creates the zero-valued snapshot when none exists.
// Idempotent; used for backfill of drivers that predate the engine.
func (s *Service) InitializeIfMissing(ctx context.Context, driverID types.ID) error {
	if driverID == "" {
		return ErrBadRequest
	}
	_, err := s.store.Get(ctx, driverID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	insErr := s.store.Insert(ctx, NewSnapshot(driverID, s.clock.Now()))
	if errors.Is(insErr, ErrConflict) {
		// Another writer created it between the read and the insert.
		return nil
	}
	return insErr
}

// apply runs the full read-recompute-write cycle for one event. On version
// conflict it returns ErrConflict without retrying: retry policy belongs to
// the caller, and the recomputation itself is side-effect-free so replaying
// the whole event is safe.
func (s *Service) apply(ctx context.Context, driverID types.ID, kind eventKind, reason string) error {
	if driverID == "" {
		return ErrBadRequest
	}
	now := s.clock.Now()

	snap, err := s.loadOrCreate(ctx, driverID, now)
	if err != nil {
		return err
	}

	switch kind {
	case eventRequested:
		snap.TripsRequested++
		applyToWindows(&snap, now, Delta{Requested: 1})
	case eventAccepted:
		snap.TripsAccepted++
		applyToWindows(&snap, now, Delta{Accepted: 1})
	case eventRejected:
		applyToWindows(&snap, now, Delta{Rejected: 1})
	case eventCancelled:
		if !IsExemptCancelReason(reason) {
			snap.TripsCancelled++
			applyToWindows(&snap, now, Delta{Cancelled: 1})
		}
	case eventCompleted:
		snap.TripsCompleted++
		if snap.InGracePeriod && snap.TripsCompleted >= graceCompletionThreshold {
			snap.InGracePeriod = false
		}
	default:
		return ErrBadRequest
	}

	rating, err := s.ratings.Rating(ctx, driverID)
	if err != nil {
		return err
	}
	updated, err := Recalculate(snap, rating, now)
	if err != nil {
		return err
	}

	if err := s.store.UpdateCAS(ctx, updated, snap.Version); err != nil {
		if errors.Is(err, ErrConflict) {
			telemetry.SnapshotConflicts.Inc()
		}
		return err
	}
	telemetry.TripEvents.WithLabelValues(string(kind)).Inc()

	if s.cache != nil {
		// Dispatch ranking tolerates staleness; never fail the event on it.
		_ = s.cache.Publish(ctx, driverID, updated.Tier, updated.ReliabilityScore)
	}
	return nil
}

// loadOrCreate returns the current snapshot, synthesizing and persisting the
// initial one for first-seen drivers. A create race falls back to re-reading
// the winner's row.
func (s *Service) loadOrCreate(ctx context.Context, driverID types.ID, now time.Time) (Snapshot, error) {
	snap, err := s.store.Get(ctx, driverID)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Snapshot{}, err
	}
	fresh := NewSnapshot(driverID, now)
	insErr := s.store.Insert(ctx, fresh)
	if insErr == nil {
		return fresh, nil
	}
	if errors.Is(insErr, ErrConflict) {
		return s.store.Get(ctx, driverID)
	}
	return Snapshot{}, insErr
}
