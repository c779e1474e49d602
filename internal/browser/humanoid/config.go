// internal/browser/humanoid/config.go
package humanoid

import (
	"fmt"
	"strings"
)

const (
	// DefaultDurationMs is the wall-clock budget used when a gesture does not request one.
	DefaultDurationMs int64 = 500
	// DefaultStepCostMs approximates how long the driver takes to execute one queued
	// action (observed between 5 and 9ms). It converts a duration into a step count.
	DefaultStepCostMs int64 = 7
	// DefaultPlateau is the easing plateau fraction used by the linear strategy.
	DefaultPlateau = 0.1
	// jitterProbability is the chance that any single path point is perturbed.
	jitterProbability = 1.0 / 5.0
)

// Interpolation selects the path generation strategy.
type Interpolation int

const (
	InterpolationLinear Interpolation = iota
	InterpolationSpline
)

func (i Interpolation) String() string {
	switch i {
	case InterpolationLinear:
		return "linear"
	case InterpolationSpline:
		return "spline"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// ParseInterpolation maps a configuration string to an Interpolation. Empty means linear.
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return InterpolationLinear, nil
	case "spline":
		return InterpolationSpline, nil
	}
	return InterpolationLinear, fmt.Errorf("humanoid: unknown interpolation %q", s)
}

// GestureConfig is the immutable description of one gesture request.
type GestureConfig struct {
	interpolation Interpolation
	startAction   ButtonAction
	endAction     ButtonAction
	durationMs    int64
	stepCostMs    int64
	jitterAmount  int64
}

// GestureOption customizes a GestureConfig at construction time.
type GestureOption func(*GestureConfig)

// WithDuration sets the requested wall-clock budget in milliseconds.
func WithDuration(ms int64) GestureOption {
	return func(c *GestureConfig) { c.durationMs = ms }
}

// WithJitter sets the per-axis jitter bound in pixels. Zero or less disables jitter.
func WithJitter(amount int64) GestureOption {
	return func(c *GestureConfig) { c.jitterAmount = amount }
}

// WithStepCost overrides the per-action cost used to derive the step count.
// Non-positive values keep the default.
func WithStepCost(ms int64) GestureOption {
	return func(c *GestureConfig) {
		if ms > 0 {
			c.stepCostMs = ms
		}
	}
}

// NewGestureConfig builds a gesture configuration. Duration defaults to 500ms and jitter to 0.
func NewGestureConfig(interp Interpolation, start, end ButtonAction, opts ...GestureOption) GestureConfig {
	c := GestureConfig{
		interpolation: interp,
		startAction:   start,
		endAction:     end,
		durationMs:    DefaultDurationMs,
		stepCostMs:    DefaultStepCostMs,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c GestureConfig) Interpolation() Interpolation { return c.interpolation }
func (c GestureConfig) StartAction() ButtonAction    { return c.startAction }
func (c GestureConfig) EndAction() ButtonAction      { return c.endAction }
func (c GestureConfig) DurationMs() int64            { return c.durationMs }
func (c GestureConfig) JitterAmount() int64          { return c.jitterAmount }

// Steps is the number of discrete move actions that fit in the requested duration.
func (c GestureConfig) Steps() int {
	return StepCount(c.durationMs, c.stepCostMs)
}

// StepCount converts a duration into a step count: duration / cost with integer
// division, and never less than 1.
func StepCount(durationMs, stepCostMs int64) int {
	if stepCostMs <= 0 {
		stepCostMs = DefaultStepCostMs
	}
	if durationMs < stepCostMs {
		return 1
	}
	return int(durationMs / stepCostMs)
}
