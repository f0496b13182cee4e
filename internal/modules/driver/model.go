// README: Driver profile aggregate; the star rating feeds metrics recomputation.
package driver

import (
	"time"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

type Driver struct {
	ID           types.ID
	Name         string
	Phone        string
	VehiclePlate string

	// Rating is the running average of passenger stars, 0.0-5.0.
	Rating      float64
	RatingCount int64

	CreatedAt time.Time
}
