package humanoid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
)

func TestSelectTarget_StaysNearCenter(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rect := schemas.Rect{X: 100, Y: 100, Width: 40, Height: 40}

	seenX := map[int64]bool{}
	for i := 0; i < 5000; i++ {
		p := SelectTarget(rng, rect)
		assert.GreaterOrEqual(t, p.X, int64(110))
		assert.LessOrEqual(t, p.X, int64(130))
		assert.GreaterOrEqual(t, p.Y, int64(110))
		assert.LessOrEqual(t, p.Y, int64(130))
		seenX[p.X] = true
	}
	// 21 possible values; 5000 draws should reach both extremes.
	assert.True(t, seenX[110] && seenX[130], "offsets should cover the full quarter range")
}

func TestSelectTarget_TruncatesFractionalGeometry(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// Half-extent 7.75 truncates to 7, quarter 3; origin 10.9 truncates to 10.
	rect := schemas.Rect{X: 10.9, Y: 0, Width: 15.5, Height: 0}
	for i := 0; i < 500; i++ {
		p := SelectTarget(rng, rect)
		assert.GreaterOrEqual(t, p.X, int64(14))
		assert.LessOrEqual(t, p.X, int64(20))
		assert.Equal(t, int64(0), p.Y)
	}
}

func TestSelectTarget_ZeroSizeCollapses(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := SelectTarget(rng, schemas.Rect{X: 42, Y: 17})
	assert.Equal(t, schemas.Point{X: 42, Y: 17}, p)
}

func TestUniformBetween(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	assert.Equal(t, int64(5), uniformBetween(rng, 5, 5))
	assert.Equal(t, int64(5), uniformBetween(rng, 5, 2))
	for i := 0; i < 200; i++ {
		v := uniformBetween(rng, -3, 4)
		assert.GreaterOrEqual(t, v, int64(-3))
		assert.Less(t, v, int64(4))
	}
}
