package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
	"github.com/xkilldash9x/gesture-cli/internal/browser/humanoid"
)

const shutdownTimeout = 10 * time.Second

// parsePoint reads a point written as "x,y".
func parsePoint(s string) (schemas.Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return schemas.Point{}, fmt.Errorf("invalid point %q: expected x,y", s)
	}
	x, err := strconv.ParseInt(strings.TrimSpace(xs), 10, 64)
	if err != nil {
		return schemas.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseInt(strings.TrimSpace(ys), 10, 64)
	if err != nil {
		return schemas.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return schemas.Point{X: x, Y: y}, nil
}

// newHumanoid builds a gesture engine for one tab. A non-zero seed is offset by index so
// concurrent tabs stay reproducible without replaying identical paths.
func (a *app) newHumanoid(driver humanoid.Driver, logger *zap.Logger, index int) *humanoid.Humanoid {
	g := a.cfg.Gesture()
	opts := g.HumanoidOptions()
	if g.Seed != 0 && index > 0 {
		opts = append(opts, humanoid.WithSeed(g.Seed+int64(index)))
	}
	return humanoid.New(driver, logger, opts...)
}

// shutdown stops the browser even when ctx is already cancelled.
func shutdown(ctx context.Context, p tabProvider, logger *zap.Logger) {
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := p.Shutdown(sctx); err != nil {
		logger.Warn("Browser shutdown did not complete cleanly.", zap.Error(err))
	}
}
