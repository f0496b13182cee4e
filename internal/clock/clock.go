// README: Injectable clock so window-reset behavior is testable with fixed timestamps.
package clock

import "time"

// Clock abstracts wall-clock reads for anything that makes time-dependent
// decisions (window staleness, last-updated stamps).
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// Real returns the wall clock.
func Real() Clock { return realClock{} }

// Fixed is a Clock pinned to a settable instant; tests advance it manually.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time { return f.T }

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.T = f.T.Add(d) }
