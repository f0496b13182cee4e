// README: Driver service: profile creation, lookup, and rating updates.
package driver

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

var (
	ErrNotFound   = errors.New("driver not found")
	ErrExists     = errors.New("driver already exists")
	ErrBadRequest = errors.New("bad request")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	Name         string
	Phone        string
	VehiclePlate string
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	if cmd.Name == "" || cmd.Phone == "" {
		return "", ErrBadRequest
	}
	d := &Driver{
		ID:           newID(),
		Name:         cmd.Name,
		Phone:        cmd.Phone,
		VehiclePlate: cmd.VehiclePlate,
		Rating:       5.0, // new drivers start with a clean slate
		RatingCount:  0,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, d); err != nil {
		return "", err
	}
	return d.ID, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Driver, error) {
	if id == "" {
		return nil, ErrBadRequest
	}
	return s.store.Get(ctx, id)
}

// Rate folds one passenger rating into the driver's running average.
func (s *Service) Rate(ctx context.Context, id types.ID, stars float64) error {
	if id == "" || stars < 0 || stars > 5 {
		return ErrBadRequest
	}
	return s.store.AddRating(ctx, id, stars)
}

// Rating satisfies the metrics engine's RatingSource.
func (s *Service) Rating(ctx context.Context, id types.ID) (float64, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return d.Rating, nil
}

func newID() types.ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return types.ID(hex.EncodeToString(b[:]))
}
