// internal/browser/humanoid/position.go
package humanoid

import (
	"context"
	"fmt"
	"math"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
)

// untracked is the sentinel stored in the page globals before the first mousemove.
const untracked int64 = -1

// readPositionScript returns [x, y] from the page tracker, or the sentinel per axis.
const readPositionScript = `(() => {
	const x = window.__gesture_mouse_x;
	const y = window.__gesture_mouse_y;
	return [
		typeof x === 'number' ? x : -1,
		typeof y === 'number' ? y : -1
	];
})()`

// installTrackerScript seeds the globals with the sentinel and registers a single
// document-level mousemove listener for the lifetime of the document.
const installTrackerScript = `(() => {
	if (typeof window.__gesture_mouse_x !== 'number') { window.__gesture_mouse_x = -1; }
	if (typeof window.__gesture_mouse_y !== 'number') { window.__gesture_mouse_y = -1; }
	if (!window.__gesture_tracker_installed) {
		window.__gesture_tracker_installed = true;
		document.addEventListener('mousemove', (event) => {
			window.__gesture_mouse_x = event.clientX;
			window.__gesture_mouse_y = event.clientY;
		}, true);
	}
	return true;
})()`

// CurrentPosition resolves the pointer position, installing the page tracker on first use.
func (h *Humanoid) CurrentPosition(ctx context.Context) (schemas.Point, error) {
	pos, tracked, err := h.readTrackedPosition(ctx)
	if err != nil {
		return schemas.Point{}, err
	}
	if tracked {
		return pos, nil
	}

	h.logger.Debug("Pointer tracker absent, installing and forcing a movement.")
	if _, err := h.driver.ExecuteScript(ctx, installTrackerScript); err != nil {
		return schemas.Point{}, err
	}
	if err := h.driver.Perform(ctx, schemas.NewActionSequence(0).MoveByOffset(1, 1)); err != nil {
		return schemas.Point{}, err
	}

	pos, tracked, err = h.readTrackedPosition(ctx)
	if err != nil {
		return schemas.Point{}, err
	}
	if !tracked {
		return schemas.Point{}, ErrPositionUnavailable
	}
	return pos, nil
}

// readTrackedPosition takes a single snapshot of the page tracker.
func (h *Humanoid) readTrackedPosition(ctx context.Context) (schemas.Point, bool, error) {
	raw, err := h.driver.ExecuteScript(ctx, readPositionScript)
	if err != nil {
		return schemas.Point{}, false, err
	}
	pos, err := decodePosition(raw)
	if err != nil {
		return schemas.Point{}, false, err
	}
	tracked := pos.X > untracked && pos.Y > untracked
	return pos, tracked, nil
}

// decodePosition converts the tracker's [x, y] reply into integer coordinates.
// clientX/clientY can be fractional under zoom, so values are truncated.
func decodePosition(raw []byte) (schemas.Point, error) {
	var pair []float64
	if err := json.Unmarshal(raw, &pair); err != nil {
		return schemas.Point{}, fmt.Errorf("humanoid: malformed tracker reply %q: %w", string(raw), err)
	}
	if len(pair) != 2 {
		return schemas.Point{}, fmt.Errorf("humanoid: tracker reply has %d values, want 2", len(pair))
	}
	for _, v := range pair {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return schemas.Point{}, fmt.Errorf("humanoid: tracker reply %q is not numeric", string(raw))
		}
	}
	return schemas.Point{X: int64(pair[0]), Y: int64(pair[1])}, nil
}

// logPosition is a small helper so debug output stays uniform across call sites.
func logPosition(name string, p schemas.Point) zap.Field {
	return zap.String(name, p.String())
}
