// README: Dispatch priority entries derived from tier and reliability.
package dispatch

import "github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"

// RankedDriver is one candidate ordered for work assignment. Score encodes
// tier priority in the thousands so tier always dominates; the reliability
// score breaks ties within a tier.
type RankedDriver struct {
	DriverID types.ID
	Score    float64
}
