// internal/browser/humanoid/easing.go
package humanoid

import "math"

// Curve is a one dimensional curve normalized over the domain [0, 1].
type Curve interface {
	Eval(t float64) float64
}

// Plateau returns an easing function that holds at 0 for the first `fraction` of the
// domain and at 1 for the last `fraction`, with a smoothstep ramp in between.
// A fraction of 0 is a plain smoothstep; fractions are capped just below 0.5.
func Plateau(fraction float64) func(float64) float64 {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 0.499 {
		fraction = 0.499
	}
	return func(t float64) float64 {
		switch {
		case t <= fraction:
			return 0
		case t >= 1-fraction:
			return 1
		}
		u := (t - fraction) / (1 - 2*fraction)
		return u * u * (3 - 2*u)
	}
}

// Linear is a piecewise-linear curve through equidistant elements. Ease, when set,
// reshapes the interpolation factor inside every segment.
type Linear struct {
	Elements []float64
	Ease     func(float64) float64
}

// Eval samples the curve at t, clamped to [0, 1].
func (l Linear) Eval(t float64) float64 {
	n := len(l.Elements)
	switch n {
	case 0:
		return 0
	case 1:
		return l.Elements[0]
	}
	t = clamp01(t)

	segments := float64(n - 1)
	idx := int(math.Floor(t * segments))
	if idx >= n-1 {
		idx = n - 2
	}
	u := t*segments - float64(idx)
	if l.Ease != nil {
		u = l.Ease(u)
	}
	return lerp(l.Elements[idx], l.Elements[idx+1], u)
}

// Bezier is a Bezier curve of degree len(Elements)-1, evaluated with de Casteljau. The
// path generator does not sample it directly; it is the closed form NewClampedBSpline
// must reproduce.
type Bezier struct {
	Elements []float64
}

// Eval samples the curve at t, clamped to [0, 1].
func (b Bezier) Eval(t float64) float64 {
	if len(b.Elements) == 0 {
		return 0
	}
	t = clamp01(t)
	work := append([]float64(nil), b.Elements...)
	for k := len(work) - 1; k > 0; k-- {
		for i := 0; i < k; i++ {
			work[i] = lerp(work[i], work[i+1], t)
		}
	}
	return work[0]
}

// BSpline is a clamped, uniform B-spline. When Degree is len(Elements)-1 there are no
// interior knots and the spline coincides with the Bezier curve over the same elements.
type BSpline struct {
	Elements []float64
	Degree   int
}

// NewClampedBSpline builds a spline whose degree matches the element count, the spline
// form of a Bezier curve.
func NewClampedBSpline(elements ...float64) BSpline {
	return BSpline{Elements: elements, Degree: len(elements) - 1}
}

// knots builds the clamped knot vector: Degree+1 zeros, uniform interior knots, Degree+1 ones.
func (s BSpline) knots() []float64 {
	n := len(s.Elements)
	p := s.Degree
	m := n + p + 1
	knots := make([]float64, m)
	interior := n - p
	for i := 0; i < m; i++ {
		switch {
		case i <= p:
			knots[i] = 0
		case i >= n:
			knots[i] = 1
		default:
			knots[i] = float64(i-p) / float64(interior)
		}
	}
	return knots
}

// Eval samples the spline at t, clamped to [0, 1], using de Boor's algorithm.
func (s BSpline) Eval(t float64) float64 {
	n := len(s.Elements)
	if n == 0 {
		return 0
	}
	p := s.Degree
	if p < 0 {
		p = 0
	}
	if p > n-1 {
		p = n - 1
	}
	if p == 0 {
		return s.Elements[0]
	}
	s.Degree = p
	t = clamp01(t)
	knots := s.knots()

	// Locate the knot span k with knots[k] <= t < knots[k+1]; t == 1 uses the last span.
	k := p
	for k < n-1 && t >= knots[k+1] {
		k++
	}

	d := make([]float64, p+1)
	for j := 0; j <= p; j++ {
		d[j] = s.Elements[j+k-p]
	}
	for r := 1; r <= p; r++ {
		for j := p; j >= r; j-- {
			lo := knots[j+k-p]
			hi := knots[j+1+k-r]
			alpha := 0.0
			if hi > lo {
				alpha = (t - lo) / (hi - lo)
			}
			d[j] = lerp(d[j-1], d[j], alpha)
		}
	}
	return d[p]
}

// Sample evaluates a curve at n evenly spaced parameters spanning [0, 1]. A single
// sample is taken at the end of the domain.
func Sample(c Curve, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = c.Eval(1)
		return out
	}
	for i := 0; i < n; i++ {
		out[i] = c.Eval(float64(i) / float64(n-1))
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
