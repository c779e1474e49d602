package humanoid

import (
	"math/rand"
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
)

// FuzzGeneratePath checks the generator invariants over arbitrary endpoints and budgets.
func FuzzGeneratePath(f *testing.F) {
	f.Add([]byte{0, 0, 0, 0, 100, 0, 0, 0, 35, 0, 1})
	f.Add([]byte{255, 255, 1, 2, 3, 4, 5, 6, 7, 8, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		c := fuzz.NewConsumer(data)
		sx, err1 := c.GetUint16()
		sy, err2 := c.GetUint16()
		ex, err3 := c.GetUint16()
		ey, err4 := c.GetUint16()
		duration, err5 := c.GetUint16()
		spline, err6 := c.GetBool()
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil || err6 != nil {
			return
		}

		interp := InterpolationLinear
		if spline {
			interp = InterpolationSpline
		}
		start := schemas.Point{X: int64(sx), Y: int64(sy)}
		end := schemas.Point{X: int64(ex), Y: int64(ey)}
		steps := StepCount(int64(duration), DefaultStepCostMs)

		path := GeneratePath(rand.New(rand.NewSource(int64(duration))), interp, start, end, steps, DefaultPlateau)
		if len(path) != steps {
			t.Fatalf("got %d points, want %d", len(path), steps)
		}
		for _, p := range path {
			if p.X < 0 || p.Y < 0 {
				t.Fatalf("negative coordinate %v", p)
			}
		}
		if path[len(path)-1] != end {
			t.Fatalf("path ends at %v, want %v", path[len(path)-1], end)
		}
	})
}
