// README: Concurrent-writer tests: one winner per version, losers replay.
package metrics

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/clock"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

// gateStore delays the first N reads until all N have arrived, guaranteeing
// that N writers observe the same version and race their conditional writes.
type gateStore struct {
	*memStore
	arrivals int64
	gateSize int64
	released chan struct{}
	once     sync.Once
}

func newGateStore(n int) *gateStore {
	return &gateStore{
		memStore: newMemStore(),
		gateSize: int64(n),
		released: make(chan struct{}),
	}
}

func (g *gateStore) Get(ctx context.Context, id types.ID) (Snapshot, error) {
	snap, err := g.memStore.Get(ctx, id)
	if err != nil {
		return snap, err
	}
	if atomic.AddInt64(&g.arrivals, 1) <= g.gateSize {
		if atomic.LoadInt64(&g.arrivals) >= g.gateSize {
			g.once.Do(func() { close(g.released) })
		}
		select {
		case <-g.released:
		case <-time.After(5 * time.Second):
			return Snapshot{}, errors.New("gate never released")
		}
	}
	return snap, nil
}

func TestConcurrentCancellations_ExactlyOneWins(t *testing.T) {
	store := newGateStore(2)
	clk := &clock.Fixed{T: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewService(store, &stubRatings{rating: 4.5}, nil, clk)
	ctx := context.Background()
	id := types.ID("d_race")

	if err := svc.InitializeIfMissing(ctx, id); err != nil {
		t.Fatalf("init: %v", err)
	}

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			errs <- svc.OnTripCancelled(ctx, id, "other")
		}()
	}

	var conflicts, successes int
	for i := 0; i < 2; i++ {
		switch err := <-errs; {
		case err == nil:
			successes++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("successes=%d conflicts=%d, want exactly one of each", successes, conflicts)
	}
	if snap := mustSnapshot(t, svc, id); snap.TripsCancelled != 1 {
		t.Fatalf("cancelled = %d after race, want 1", snap.TripsCancelled)
	}

	// The loser replays the whole event against the fresh version and both
	// cancellations land.
	if err := svc.OnTripCancelled(ctx, id, "other"); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if snap := mustSnapshot(t, svc, id); snap.TripsCancelled != 2 {
		t.Fatalf("cancelled = %d after replay, want 2", snap.TripsCancelled)
	}
}

func TestConcurrentEvents_RetryUntilApplied(t *testing.T) {
	const writers = 8
	store := newMemStore()
	clk := &clock.Fixed{T: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewService(store, &stubRatings{rating: 4.5}, nil, clk)
	ctx := context.Background()
	id := types.ID("d_retry")

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				err := svc.OnTripAccepted(ctx, id)
				if err == nil {
					return
				}
				if !errors.Is(err, ErrConflict) {
					t.Errorf("unexpected error: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	snap := mustSnapshot(t, svc, id)
	if snap.TripsAccepted != writers {
		t.Errorf("accepted = %d, want %d", snap.TripsAccepted, writers)
	}
	if snap.Last24h.Accepted != writers {
		t.Errorf("window accepted = %d, want %d", snap.Last24h.Accepted, writers)
	}
	if snap.Version != int64(writers) {
		t.Errorf("version = %d, want %d", snap.Version, writers)
	}
}
