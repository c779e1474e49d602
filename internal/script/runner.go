package script

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/gesture-cli/internal/browser/humanoid"
	"github.com/xkilldash9x/gesture-cli/internal/config"
)

// Navigator loads the script's start page.
type Navigator interface {
	Navigate(ctx context.Context, url string) error
}

// StepResult records the outcome of one step.
type StepResult struct {
	Step     string        `json:"step"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// Report summarizes a script run. Steps after the first failure are absent.
type Report struct {
	Script    string       `json:"script"`
	Completed int          `json:"completed"`
	Total     int          `json:"total"`
	Steps     []StepResult `json:"steps"`
}

// Runner performs scripts against one tab, pacing steps with a token bucket.
type Runner struct {
	controller  humanoid.Controller
	navigator   Navigator
	defaults    config.GestureConfig
	limiter     *rate.Limiter
	stepTimeout time.Duration
	logger      *zap.Logger
}

// NewRunner builds a runner. A StepsPerSecond of zero disables pacing.
func NewRunner(ctrl humanoid.Controller, nav Navigator, defaults config.GestureConfig, cfg config.ScriptConfig, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := rate.Limit(cfg.StepsPerSecond)
	if cfg.StepsPerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Runner{
		controller:  ctrl,
		navigator:   nav,
		defaults:    defaults,
		limiter:     rate.NewLimiter(limit, burst),
		stepTimeout: cfg.StepTimeout,
		logger:      logger.Named("script_runner"),
	}
}

// Run navigates to the script URL, if any, then performs each step in order.
// It stops at the first failing step and returns its error along with the partial report.
func (r *Runner) Run(ctx context.Context, s *Script) (*Report, error) {
	report := &Report{Script: s.Name, Total: len(s.Steps)}
	log := r.logger.With(zap.String("script", s.Name))

	if s.URL != "" {
		if r.navigator == nil {
			return report, fmt.Errorf("script %q has a url but the runner cannot navigate", s.Name)
		}
		log.Info("Navigating to script start page.", zap.String("url", s.URL))
		if err := r.navigator.Navigate(ctx, s.URL); err != nil {
			return report, fmt.Errorf("navigating to %s: %w", s.URL, err)
		}
	}

	for i, step := range s.Steps {
		label := step.Label(i)
		if err := r.limiter.Wait(ctx); err != nil {
			return report, fmt.Errorf("step %s: %w", label, err)
		}

		started := time.Now()
		err := r.runStep(ctx, step)
		result := StepResult{Step: label, Duration: time.Since(started)}
		if err != nil {
			result.Error = err.Error()
			report.Steps = append(report.Steps, result)
			log.Warn("Script step failed.", zap.String("step", label), zap.Error(err))
			return report, fmt.Errorf("step %s: %w", label, err)
		}
		report.Steps = append(report.Steps, result)
		report.Completed++
		log.Debug("Script step completed.", zap.String("step", label), zap.Duration("took", result.Duration))

		if step.WaitMs > 0 {
			if err := wait(ctx, time.Duration(step.WaitMs)*time.Millisecond); err != nil {
				return report, fmt.Errorf("step %s: %w", label, err)
			}
		}
	}

	log.Info("Script finished.", zap.Int("steps", report.Completed))
	return report, nil
}

func (r *Runner) runStep(ctx context.Context, step Step) error {
	gesture, err := step.Gesture(r.defaults)
	if err != nil {
		return err
	}
	if r.stepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.stepTimeout)
		defer cancel()
	}
	if step.Point != nil {
		return r.controller.MouseActionToPoint(ctx, gesture, *step.Point)
	}
	return r.controller.MouseAction(ctx, gesture, step.Selector)
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
