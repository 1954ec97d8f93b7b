package vendors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddThenRemoveRestoresMean(t *testing.T) {
	added := AddToMean(3.0, 2, 5)
	assert.InDelta(t, 3.667, added, 0.001)
	assert.Equal(t, 3.0, RemoveFromMean(added, 3, 5))
}

func TestMeanMatchesArithmeticMean(t *testing.T) {
	ratings := []float64{4, 1, 5, 3, 2, 5, 5}
	mean, sum := 0.0, 0.0
	for i, r := range ratings {
		mean = AddToMean(mean, i, r)
		sum += r
		assert.InDelta(t, sum/float64(i+1), mean, 1e-9)
	}
	for n := len(ratings); n > 1; n-- {
		r := ratings[n-1]
		mean = RemoveFromMean(mean, n, r)
		sum -= r
		assert.InDelta(t, sum/float64(n-1), mean, 1e-9)
	}
}

func TestMeanEdges(t *testing.T) {
	assert.Equal(t, 4.0, AddToMean(0, 0, 4))
	assert.Equal(t, 0.0, RemoveFromMean(4, 1, 4))
	assert.Equal(t, 0.0, RemoveFromMean(0, 0, 4))
}
