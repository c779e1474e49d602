package humanoid

import (
	"math/rand"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
)

// SelectTarget picks a destination near the center of rect. Each axis is offset by a
// uniform integer in [-quarter, +quarter], where quarter is half of the truncated
// half-extent. Zero-size rectangles collapse to their origin.
func SelectTarget(rng *rand.Rand, rect schemas.Rect) schemas.Point {
	halfWidth := int64(rect.Width / 2.0)
	halfHeight := int64(rect.Height / 2.0)
	center := schemas.Point{
		X: int64(rect.X) + halfWidth,
		Y: int64(rect.Y) + halfHeight,
	}
	return schemas.Point{
		X: center.X + uniformOffset(rng, halfWidth/2),
		Y: center.Y + uniformOffset(rng, halfHeight/2),
	}
}

// uniformOffset draws an integer uniformly from [-bound, +bound]. A non-positive
// bound yields 0 without consuming randomness.
func uniformOffset(rng *rand.Rand, bound int64) int64 {
	if bound <= 0 {
		return 0
	}
	return rng.Int63n(2*bound+1) - bound
}

// uniformBetween draws an integer from [lo, hi), or returns lo when the range is empty.
func uniformBetween(rng *rand.Rand, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Int63n(hi-lo)
}
