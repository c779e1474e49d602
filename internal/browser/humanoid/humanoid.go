// internal/browser/humanoid/humanoid.go
package humanoid

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Randomness bundles the independent random sources used by one Humanoid. Target
// selection, path shaping and jitter each draw from their own generator so any of
// them can be pinned in tests without disturbing the others.
type Randomness struct {
	Target *rand.Rand
	Path   *rand.Rand
	Jitter *rand.Rand
}

// NewRandomness derives three sources from seed. A zero seed uses the current time.
func NewRandomness(seed int64) Randomness {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return Randomness{
		Target: rand.New(rand.NewSource(seed)),
		Path:   rand.New(rand.NewSource(seed + 1)),
		Jitter: rand.New(rand.NewSource(seed + 2)),
	}
}

// Humanoid synthesizes human-like pointer gestures and executes them through a Driver.
type Humanoid struct {
	// mu guards the random sources; *rand.Rand is not safe for concurrent use.
	mu          sync.Mutex
	driver      Driver
	logger      *zap.Logger
	rng         Randomness
	plateau     float64
	clampJitter bool
}

var _ Controller = (*Humanoid)(nil)

// Option configures a Humanoid.
type Option func(*Humanoid)

// WithRandomness replaces the random sources. Nil members fall back to time-seeded ones.
func WithRandomness(r Randomness) Option {
	return func(h *Humanoid) {
		if r.Target != nil {
			h.rng.Target = r.Target
		}
		if r.Path != nil {
			h.rng.Path = r.Path
		}
		if r.Jitter != nil {
			h.rng.Jitter = r.Jitter
		}
	}
}

// WithSeed seeds all three random sources deterministically.
func WithSeed(seed int64) Option {
	return WithRandomness(NewRandomness(seed))
}

// WithPlateau sets the easing plateau fraction for the linear strategy.
func WithPlateau(fraction float64) Option {
	return func(h *Humanoid) { h.plateau = fraction }
}

// WithClampJitter clamps jittered points back to non-negative coordinates.
func WithClampJitter(enabled bool) Option {
	return func(h *Humanoid) { h.clampJitter = enabled }
}

// New creates a Humanoid bound to driver. A nil logger is replaced by a no-op logger.
func New(driver Driver, logger *zap.Logger, opts ...Option) *Humanoid {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Humanoid{
		driver:  driver,
		logger:  logger.Named("humanoid"),
		rng:     NewRandomness(0),
		plateau: DefaultPlateau,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
