// README: Dispatch priority store backed by a Redis sorted set.
package dispatch

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

const priorityKey = "dispatch:priority"

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

func (s *Store) SetScore(ctx context.Context, id types.ID, score float64) error {
	return s.redis.ZAdd(ctx, priorityKey, redis.Z{
		Score:  score,
		Member: string(id),
	}).Err()
}

// Scores returns the cached score per id; drivers absent from the cache
// report zero and sort last.
func (s *Store) Scores(ctx context.Context, ids []types.ID) ([]float64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	members := make([]string, len(ids))
	for i, id := range ids {
		members[i] = string(id)
	}
	return s.redis.ZMScore(ctx, priorityKey, members...).Result()
}

func (s *Store) Remove(ctx context.Context, id types.ID) error {
	return s.redis.ZRem(ctx, priorityKey, string(id)).Err()
}
