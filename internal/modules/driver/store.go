// README: Driver store backed by PostgreSQL.
package driver

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, d *Driver) error {
	tag, err := s.db.Exec(ctx, `
        INSERT INTO drivers (id, name, phone, vehicle_plate, rating, rating_count, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO NOTHING`,
		string(d.ID), d.Name, d.Phone, d.VehiclePlate, d.Rating, d.RatingCount, d.CreatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrExists
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Driver, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, name, phone, vehicle_plate, rating, rating_count, created_at
        FROM drivers
        WHERE id = $1`, string(id),
	)
	var d Driver
	err := row.Scan(&d.ID, &d.Name, &d.Phone, &d.VehiclePlate, &d.Rating, &d.RatingCount, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// AddRating folds one star rating into the running average in a single
// statement, so concurrent ratings cannot lose each other.
func (s *Store) AddRating(ctx context.Context, id types.ID, stars float64) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE drivers
        SET rating = (rating * rating_count + $2) / (rating_count + 1),
            rating_count = rating_count + 1
        WHERE id = $1`,
		string(id), stars,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}
