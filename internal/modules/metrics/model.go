// README: Driver performance aggregate: rolling acceptance windows, lifetime counters, tier definitions.
package metrics

import (
	"strings"
	"time"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

// Window horizons. Every event updates all three; each resets on its own cadence.
const (
	Horizon24h    = 24 * time.Hour
	Horizon7Days  = 7 * 24 * time.Hour
	Horizon30Days = 30 * 24 * time.Hour
)

// graceCompletionThreshold is the completed-trip count at which a new driver
// leaves the grace period. The latch is one-way: once cleared it never re-arms.
const graceCompletionThreshold = 20

// AcceptanceWindow is one rolling counter bucket for a fixed horizon.
type AcceptanceWindow struct {
	WindowStart time.Time
	Requested   int64
	Accepted    int64
	Rejected    int64
	Cancelled   int64
}

// Total counts terminal outcomes only; requests still pending are excluded.
func (w AcceptanceWindow) Total() int64 {
	return w.Accepted + w.Rejected + w.Cancelled
}

// Rate is the percentage of outcomes that were acceptances, 0 when empty.
func (w AcceptanceWindow) Rate() float64 {
	total := w.Total()
	if total == 0 {
		return 0
	}
	return float64(w.Accepted) / float64(total) * 100
}

// Snapshot is the durable per-driver metrics aggregate. Derived fields are a
// pure function of the counters plus the external rating at LastUpdated; they
// are only ever replaced wholesale by Recalculate.
type Snapshot struct {
	DriverID types.ID

	TripsRequested int64
	TripsAccepted  int64
	TripsCancelled int64
	TripsCompleted int64

	Last24h    AcceptanceWindow
	Last7Days  AcceptanceWindow
	Last30Days AcceptanceWindow

	AcceptanceRate   float64
	CancellationRate float64
	ReliabilityScore float64
	Tier             Tier
	InGracePeriod    bool

	LastUpdated time.Time

	// Version is the optimistic-concurrency token owned by the store.
	Version int64
}

// NewSnapshot is the lazily-created initial state for a driver with no record.
func NewSnapshot(driverID types.ID, now time.Time) Snapshot {
	return Snapshot{
		DriverID:      driverID,
		Last24h:       AcceptanceWindow{WindowStart: now},
		Last7Days:     AcceptanceWindow{WindowStart: now},
		Last30Days:    AcceptanceWindow{WindowStart: now},
		Tier:          TierSilver,
		InGracePeriod: true,
		LastUpdated:   now,
	}
}

type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// TierThreshold carries the entry requirements and the perks of a tier.
type TierThreshold struct {
	Tier              Tier
	MinAcceptanceRate float64
	MinRating         float64
	DispatchPriority  int
	BonusMultiplier   float64
}

// tierLadder is evaluated top-down; the first tier whose thresholds are met
// wins. Bronze has no effective floor and always matches.
var tierLadder = []TierThreshold{
	{Tier: TierPlatinum, MinAcceptanceRate: 90, MinRating: 4.8, DispatchPriority: 3, BonusMultiplier: 1.20},
	{Tier: TierGold, MinAcceptanceRate: 80, MinRating: 4.5, DispatchPriority: 2, BonusMultiplier: 1.15},
	{Tier: TierSilver, MinAcceptanceRate: 70, MinRating: 4.0, DispatchPriority: 1, BonusMultiplier: 1.05},
	{Tier: TierBronze, MinAcceptanceRate: 0, MinRating: 0, DispatchPriority: 0, BonusMultiplier: 1.00},
}

// Threshold returns the ladder entry for a tier, defaulting to Bronze.
func (t Tier) Threshold() TierThreshold {
	for _, th := range tierLadder {
		if th.Tier == t {
			return th
		}
	}
	return tierLadder[len(tierLadder)-1]
}

// exemptCancelReasons are cancellation causes that never count against the
// driver. Matched after normalization, so "Safety Concern" and
// "safety-concern" both qualify.
var exemptCancelReasons = map[string]struct{}{
	"emergency":         {},
	"safety_concern":    {},
	"passenger_no_show": {},
	"customer_no_show":  {},
	"vehicle_issue":     {},
	"equipment_issue":   {},
}

// IsExemptCancelReason reports whether a cancellation reason is exempt.
// Unknown or absent reasons count against the driver.
func IsExemptCancelReason(reason string) bool {
	norm := strings.ToLower(strings.TrimSpace(reason))
	norm = strings.ReplaceAll(norm, " ", "_")
	norm = strings.ReplaceAll(norm, "-", "_")
	_, ok := exemptCancelReasons[norm]
	return ok
}
