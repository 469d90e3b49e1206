package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	t.Run("distance to self is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, DistanceKm(18.5204, 73.8567, 18.5204, 73.8567))
	})

	t.Run("symmetric", func(t *testing.T) {
		a := DistanceKm(18.5204, 73.8567, 19.0760, 72.8777)
		b := DistanceKm(19.0760, 72.8777, 18.5204, 73.8567)
		assert.Equal(t, a, b)
	})

	t.Run("one degree of longitude at the equator", func(t *testing.T) {
		// 2*pi*6371/360 = 111.19... km, rounded to one decimal.
		assert.InDelta(t, 111.2, DistanceKm(0, 0, 0, 1), 0.051)
	})

	t.Run("rounded to one decimal", func(t *testing.T) {
		d := DistanceKm(18.5204, 73.8567, 19.0760, 72.8777)
		assert.InDelta(t, math.Round(d*10), d*10, 1e-9)
		assert.Greater(t, d, 100.0)
		assert.Less(t, d, 200.0)
	})
}
