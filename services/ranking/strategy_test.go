package ranking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	cases := map[string]Strategy{
		"nearest":       Nearest,
		"NEWEST":        Newest,
		"mostPopular":   MostPopular,
		"most-popular":  MostPopular,
		"highest_rated": HighestRated,
		"Favorited":     Favorited,
	}
	for in, want := range cases {
		got, err := ParseStrategy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseStrategyRejectsUnknown(t *testing.T) {
	_, err := ParseStrategy("trending")
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
}
