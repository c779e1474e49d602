// internal/browser/humanoid/movement.go
package humanoid

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
)

// MouseAction moves the pointer to a randomized point inside the element matched by
// selector, bracketing the path with the configured button actions. The whole gesture
// is submitted to the driver in one call; the elapsed time only approximates the
// requested duration.
func (h *Humanoid) MouseAction(ctx context.Context, cfg GestureConfig, selector string) error {
	start, err := h.CurrentPosition(ctx)
	if err != nil {
		return err
	}

	rect, err := h.driver.GetElementRect(ctx, selector)
	if err != nil {
		return err
	}

	h.mu.Lock()
	target := SelectTarget(h.rng.Target, rect)
	h.mu.Unlock()

	h.logger.Debug("Resolved gesture target.",
		zap.String("selector", selector),
		zap.Float64("rect_x", rect.X), zap.Float64("rect_y", rect.Y),
		zap.Float64("rect_width", rect.Width), zap.Float64("rect_height", rect.Height),
		logPosition("target", target))

	return h.execute(ctx, cfg, start, target)
}

// MouseActionToPoint runs the same pipeline as MouseAction against an explicit
// destination instead of an element.
func (h *Humanoid) MouseActionToPoint(ctx context.Context, cfg GestureConfig, target schemas.Point) error {
	start, err := h.CurrentPosition(ctx)
	if err != nil {
		return err
	}
	return h.execute(ctx, cfg, start, target)
}

// Plan generates the (possibly jittered) path for a gesture without touching a driver.
func (h *Humanoid) Plan(start, end schemas.Point, cfg GestureConfig) []schemas.Point {
	h.mu.Lock()
	defer h.mu.Unlock()

	path := GeneratePath(h.rng.Path, cfg.Interpolation(), start, end, cfg.Steps(), h.plateau)
	Jitter(h.rng.Jitter, path, cfg.JitterAmount())
	if h.clampJitter {
		ClampNonNegative(path)
	}
	return path
}

func (h *Humanoid) execute(ctx context.Context, cfg GestureConfig, start, target schemas.Point) error {
	gestureID := uuid.NewString()
	path := h.Plan(start, target, cfg)
	seq := BuildSequence(cfg, path)

	h.logger.Debug("Submitting gesture.",
		zap.String("gesture_id", gestureID),
		zap.Stringer("interpolation", cfg.Interpolation()),
		zap.Stringer("start_action", cfg.StartAction()),
		zap.Stringer("end_action", cfg.EndAction()),
		zap.Int("steps", len(path)),
		zap.Int64("jitter", cfg.JitterAmount()),
		logPosition("from", start),
		logPosition("to", target))

	if err := h.driver.Perform(ctx, seq); err != nil {
		if ctx.Err() == nil {
			h.logger.Warn("Gesture submission failed.", zap.String("gesture_id", gestureID), zap.Error(err))
		}
		return err
	}
	return nil
}

// BuildSequence composes the start action, one absolute move per path point and the
// end action into a single sequence with no added inter-action delay.
func BuildSequence(cfg GestureConfig, path []schemas.Point) *schemas.ActionSequence {
	seq := schemas.NewActionSequence(0)
	cfg.StartAction().Apply(seq)
	for _, p := range path {
		seq.MoveTo(p.X, p.Y)
	}
	cfg.EndAction().Apply(seq)
	return seq
}
