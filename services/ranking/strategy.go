package ranking

import (
	"strings"

	"github.com/RobbieBendick/curb-companion-backend/utils"
)

// Strategy names an ordering policy applied after radius filtering.
type Strategy string

const (
	Nearest      Strategy = "nearest"
	Newest       Strategy = "newest"
	MostPopular  Strategy = "mostPopular"
	HighestRated Strategy = "highestRated"
	Favorited    Strategy = "favorited"
)

// Strategies lists every strategy in home-section order.
var Strategies = []Strategy{Favorited, Nearest, Newest, MostPopular, HighestRated}

// ErrUnknownStrategy is returned for strategy names that are not recognised.
var ErrUnknownStrategy = utils.NewAppError(400, "invalidStrategy", "Unknown ranking strategy")

// ParseStrategy accepts strategy names case-insensitively, with or without
// dashes or underscores ("most-popular", "HIGHEST_RATED").
func ParseStrategy(name string) (Strategy, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	for _, s := range Strategies {
		if strings.ToLower(string(s)) == key {
			return s, nil
		}
	}
	return "", ErrUnknownStrategy.WithDetails(name)
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	for _, known := range Strategies {
		if s == known {
			return true
		}
	}
	return false
}
