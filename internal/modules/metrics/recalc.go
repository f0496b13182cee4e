// README: Derived-metric recomputation: rates, weighted acceptance, reliability score, tier.
package metrics

import "time"

// Recency weights for the three acceptance windows. The 24h window dominates
// so a single bad day is detected quickly, while a bad month cannot drown out
// recent good behavior.
const (
	weight24h    = 0.5
	weight7Days  = 0.3
	weight30Days = 0.2
)

// Reliability score composition: the star rating is the strongest external
// trust signal, responsiveness is the behavior this engine tracks, and the
// cancellation penalty is capped so it cannot zero out a good score.
const (
	ratingWeight     = 60.0
	acceptanceWeight = 0.35
	cancelPenaltyCap = 5.0
)

// Recalculate derives all computed fields of s from its counters and the
// driver's current star rating. The replacement is wholesale: every derived
// field is overwritten, none survive from the previous pass.
//
// A rating outside [0,5] or a negative counter rejects the whole update
// with ErrInvalidInput.
func Recalculate(s Snapshot, rating float64, now time.Time) (Snapshot, error) {
	if rating < 0 || rating > 5 {
		return s, ErrInvalidInput
	}
	if s.TripsRequested < 0 || s.TripsAccepted < 0 || s.TripsCancelled < 0 || s.TripsCompleted < 0 {
		return s, ErrInvalidInput
	}

	s.AcceptanceRate = 0
	if s.TripsRequested > 0 {
		s.AcceptanceRate = float64(s.TripsAccepted) / float64(s.TripsRequested) * 100
	}
	s.CancellationRate = 0
	if s.TripsAccepted > 0 {
		s.CancellationRate = float64(s.TripsCancelled) / float64(s.TripsAccepted) * 100
	}

	weighted := weight24h*s.Last24h.Rate() +
		weight7Days*s.Last7Days.Rate() +
		weight30Days*s.Last30Days.Rate()

	cancelPenalty := clamp(cancelPenaltyCap-s.CancellationRate/10, 0, cancelPenaltyCap)
	s.ReliabilityScore = clamp(rating/5.0*ratingWeight+weighted*acceptanceWeight+cancelPenalty, 0, 100)

	s.Tier = DetermineTier(s.AcceptanceRate, rating, s.InGracePeriod)
	s.LastUpdated = now
	return s, nil
}

// DetermineTier re-derives the tier from scratch; nothing is edge-triggered.
// Grace-period drivers are pinned to Silver so they are not penalized before
// their sample is statistically meaningful.
func DetermineTier(acceptanceRate, rating float64, inGracePeriod bool) Tier {
	if inGracePeriod {
		return TierSilver
	}
	for _, th := range tierLadder {
		if acceptanceRate >= th.MinAcceptanceRate && rating >= th.MinRating {
			return th.Tier
		}
	}
	return TierBronze
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
