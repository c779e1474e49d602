// internal/browser/humanoid/noise.go
package humanoid

import (
	"math/rand"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
)

// Jitter perturbs roughly one in five points in place by an independent uniform offset
// in [-amount, +amount] on each axis. It does nothing when amount <= 0.
//
// Points are not clamped afterwards, so a jittered path may dip below zero even though
// freshly generated points never do. ClampNonNegative restores the invariant when wanted.
func Jitter(rng *rand.Rand, path []schemas.Point, amount int64) {
	if amount <= 0 {
		return
	}
	for i := range path {
		if rng.Float64() >= jitterProbability {
			continue
		}
		path[i].X += uniformOffset(rng, amount)
		path[i].Y += uniformOffset(rng, amount)
	}
}

// ClampNonNegative raises any negative coordinate in path to 0.
func ClampNonNegative(path []schemas.Point) {
	for i := range path {
		if path[i].X < 0 {
			path[i].X = 0
		}
		if path[i].Y < 0 {
			path[i].Y = 0
		}
	}
}
