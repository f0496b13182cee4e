// README: Dispatch service: publishes per-driver priority and ranks candidate sets.
package dispatch

import (
	"context"
	"errors"
	"sort"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/modules/metrics"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

var ErrBadRequest = errors.New("bad request")

// tierBand spaces tiers far enough apart that no reliability score (0-100)
// can cross a tier boundary.
const tierBand = 1000.0

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Publish satisfies metrics.PriorityCache: called after every successful
// snapshot persist with the freshly derived tier and reliability score.
func (s *Service) Publish(ctx context.Context, driverID types.ID, tier metrics.Tier, reliabilityScore float64) error {
	return s.store.SetScore(ctx, driverID, PriorityScore(tier, reliabilityScore))
}

// Rank orders a candidate set for work assignment, highest priority first.
// The candidate set itself (who is nearby, who is online) comes from the
// dispatcher; this engine only orders it.
func (s *Service) Rank(ctx context.Context, candidates []types.ID) ([]RankedDriver, error) {
	if len(candidates) == 0 {
		return nil, ErrBadRequest
	}
	scores, err := s.store.Scores(ctx, candidates)
	if err != nil {
		return nil, err
	}
	ranked := make([]RankedDriver, len(candidates))
	for i, id := range candidates {
		var score float64
		if i < len(scores) {
			score = scores[i]
		}
		ranked[i] = RankedDriver{DriverID: id, Score: score}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

// PriorityScore folds tier and reliability into one sortable score.
func PriorityScore(tier metrics.Tier, reliabilityScore float64) float64 {
	return float64(tier.Threshold().DispatchPriority)*tierBand + reliabilityScore
}
