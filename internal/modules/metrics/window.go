// README: Window maintenance: stale-or-increment rule applied per horizon.
package metrics

import "time"

// Delta is one event's contribution to a window's counters.
type Delta struct {
	Requested int64
	Accepted  int64
	Rejected  int64
	Cancelled int64
}

// ApplyDelta returns the window after absorbing d at instant now.
//
// A window older than its horizon is stale: the result is a fresh window
// anchored at now-horizon whose counters are exactly d — the triggering event
// is the fresh window's first observation, nothing carries over. Otherwise
// the counters are incremented in place.
func (w AcceptanceWindow) ApplyDelta(now time.Time, horizon time.Duration, d Delta) AcceptanceWindow {
	if now.Sub(w.WindowStart) > horizon {
		return AcceptanceWindow{
			WindowStart: now.Add(-horizon),
			Requested:   d.Requested,
			Accepted:    d.Accepted,
			Rejected:    d.Rejected,
			Cancelled:   d.Cancelled,
		}
	}
	w.Requested += d.Requested
	w.Accepted += d.Accepted
	w.Rejected += d.Rejected
	w.Cancelled += d.Cancelled
	return w
}

// applyToWindows applies the same delta to all three horizons.
func applyToWindows(s *Snapshot, now time.Time, d Delta) {
	s.Last24h = s.Last24h.ApplyDelta(now, Horizon24h, d)
	s.Last7Days = s.Last7Days.ApplyDelta(now, Horizon7Days, d)
	s.Last30Days = s.Last30Days.ApplyDelta(now, Horizon30Days, d)
}
