// README: Priority scoring unit tests plus Redis-backed ranking tests.
package dispatch

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/modules/metrics"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

func TestPriorityScore_TierDominatesReliability(t *testing.T) {
	// A platinum driver with the worst possible reliability still outranks a
	// gold driver with the best possible reliability.
	worstPlatinum := PriorityScore(metrics.TierPlatinum, 0)
	bestGold := PriorityScore(metrics.TierGold, 100)
	if worstPlatinum <= bestGold {
		t.Errorf("platinum(0)=%v must beat gold(100)=%v", worstPlatinum, bestGold)
	}

	bestBronze := PriorityScore(metrics.TierBronze, 100)
	worstSilver := PriorityScore(metrics.TierSilver, 0)
	if worstSilver <= bestBronze {
		t.Errorf("silver(0)=%v must beat bronze(100)=%v", worstSilver, bestBronze)
	}
}

func TestPriorityScore_ReliabilityBreaksTies(t *testing.T) {
	a := PriorityScore(metrics.TierGold, 85)
	b := PriorityScore(metrics.TierGold, 80)
	if a <= b {
		t.Errorf("same tier: higher reliability must score higher (%v vs %v)", a, b)
	}
}

func TestPriorityScore_UnknownTierSortsAsBronze(t *testing.T) {
	if got, want := PriorityScore(metrics.Tier("mystery"), 50), PriorityScore(metrics.TierBronze, 50); got != want {
		t.Errorf("unknown tier score = %v, want bronze score %v", got, want)
	}
}

func TestRank_EmptyCandidates(t *testing.T) {
	svc := NewService(NewStore(nil))
	if _, err := svc.Rank(context.Background(), nil); err != ErrBadRequest {
		t.Errorf("got %v, want ErrBadRequest", err)
	}
}

func TestRankAgainstRedis(t *testing.T) {
	store := setupTestStore(t)
	svc := NewService(store)
	ctx := context.Background()

	publish := []struct {
		id    types.ID
		tier  metrics.Tier
		score float64
	}{
		{"d_bronze", metrics.TierBronze, 95},
		{"d_platinum", metrics.TierPlatinum, 91},
		{"d_gold_hi", metrics.TierGold, 88},
		{"d_gold_lo", metrics.TierGold, 72},
	}
	for _, p := range publish {
		if err := svc.Publish(ctx, p.id, p.tier, p.score); err != nil {
			t.Fatalf("publish %s: %v", p.id, err)
		}
	}

	ranked, err := svc.Rank(ctx, []types.ID{"d_bronze", "d_gold_lo", "d_unknown", "d_platinum", "d_gold_hi"})
	if err != nil {
		t.Fatalf("rank: %v", err)
	}

	wantOrder := []types.ID{"d_platinum", "d_gold_hi", "d_gold_lo", "d_bronze", "d_unknown"}
	if len(ranked) != len(wantOrder) {
		t.Fatalf("ranked %d drivers, want %d", len(ranked), len(wantOrder))
	}
	for i, want := range wantOrder {
		if ranked[i].DriverID != want {
			t.Errorf("position %d: got %s, want %s", i, ranked[i].DriverID, want)
		}
	}
	// Drivers never published sort last with a zero score.
	if ranked[len(ranked)-1].Score != 0 {
		t.Errorf("unknown driver score = %v, want 0", ranked[len(ranked)-1].Score)
	}
}

func TestRemoveDropsDriver(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.SetScore(ctx, "d_gone", 123); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Remove(ctx, "d_gone"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	scores, err := store.Scores(ctx, []types.ID{"d_gone"})
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if len(scores) != 1 || scores[0] != 0 {
		t.Errorf("removed driver still scored: %v", scores)
	}
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	addr := os.Getenv("DT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("DT_TEST_REDIS_ADDR not set; skipping Redis-backed dispatch tests")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	if err := client.Del(context.Background(), priorityKey).Err(); err != nil {
		t.Fatalf("clear priority key: %v", err)
	}
	return NewStore(client)
}
