package humanoid

import (
	"math/rand"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
)

// GeneratePath dispatches to the strategy selected by interp and returns exactly
// steps points (at least one) from start toward end.
func GeneratePath(rng *rand.Rand, interp Interpolation, start, end schemas.Point, steps int, plateau float64) []schemas.Point {
	if steps < 1 {
		steps = 1
	}
	switch interp {
	case InterpolationSpline:
		return SplineSteps(rng, start, end, steps)
	default:
		return LinearSteps(start, end, steps, plateau)
	}
}

// LinearSteps interpolates each axis independently between start and end, easing the
// motion with a plateau at both ends of the domain.
func LinearSteps(start, end schemas.Point, steps int, plateau float64) []schemas.Point {
	ease := Plateau(plateau)
	xs := Linear{Elements: []float64{float64(start.X), float64(end.X)}, Ease: ease}
	ys := Linear{Elements: []float64{float64(start.Y), float64(end.Y)}, Ease: ease}
	return zipSamples(Sample(xs, steps), Sample(ys, steps))
}

// SplineSteps draws one control value per axis inside the start/end bounds. The x axis
// follows a smoothstepped piecewise-linear curve through (start, control, end); the
// y axis follows the clamped quadratic spline through the same values, which lets it
// bow away from the straight line.
func SplineSteps(rng *rand.Rand, start, end schemas.Point, steps int) []schemas.Point {
	xMin, xMax := minMax(start.X, end.X)
	yMin, yMax := minMax(start.Y, end.Y)
	xControl := uniformBetween(rng, xMin, xMax)
	yControl := uniformBetween(rng, yMin, yMax)

	xs := Linear{
		Elements: []float64{float64(start.X), float64(xControl), float64(end.X)},
		Ease:     Plateau(0),
	}
	ys := NewClampedBSpline(float64(start.Y), float64(yControl), float64(end.Y))
	return zipSamples(Sample(xs, steps), Sample(ys, steps))
}

// zipSamples pairs per-axis samples into points, clamping negatives to 0 and
// truncating toward zero.
func zipSamples(xs, ys []float64) []schemas.Point {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	out := make([]schemas.Point, n)
	for i := 0; i < n; i++ {
		x, y := xs[i], ys[i]
		if x < 0 {
			x = 0
		}
		if y < 0 {
			y = 0
		}
		out[i] = schemas.Point{X: int64(x), Y: int64(y)}
	}
	return out
}

func minMax(a, b int64) (int64, int64) {
	if a < b {
		return a, b
	}
	return b, a
}
