// File: internal/config/gesture_config.go
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/xkilldash9x/gesture-cli/internal/browser/humanoid"
)

// GestureConfig holds the default gesture shape and the knobs of the trajectory generator.
// Per-step values in a script override the defaults here.
type GestureConfig struct {
	Interpolation string  `mapstructure:"interpolation" yaml:"interpolation"`
	StartAction   string  `mapstructure:"start_action" yaml:"start_action"`
	EndAction     string  `mapstructure:"end_action" yaml:"end_action"`
	DurationMs    int64   `mapstructure:"duration_ms" yaml:"duration_ms"`
	StepCostMs    int64   `mapstructure:"step_cost_ms" yaml:"step_cost_ms"`
	Jitter        int64   `mapstructure:"jitter" yaml:"jitter"`
	Plateau       float64 `mapstructure:"plateau" yaml:"plateau"`
	ClampJitter   bool    `mapstructure:"clamp_jitter" yaml:"clamp_jitter"`
	// Seed of 0 means seed from the clock.
	Seed int64 `mapstructure:"seed" yaml:"seed"`
}

func setGestureDefaults(v *viper.Viper) {
	v.SetDefault("gesture.interpolation", humanoid.InterpolationLinear.String())
	v.SetDefault("gesture.start_action", humanoid.ButtonNone.String())
	v.SetDefault("gesture.end_action", humanoid.ButtonNone.String())
	v.SetDefault("gesture.duration_ms", humanoid.DefaultDurationMs)
	v.SetDefault("gesture.step_cost_ms", humanoid.DefaultStepCostMs)
	v.SetDefault("gesture.jitter", 0)
	v.SetDefault("gesture.plateau", humanoid.DefaultPlateau)
	v.SetDefault("gesture.clamp_jitter", false)
	v.SetDefault("gesture.seed", 0)
}

// Validate checks that names resolve and numeric knobs are in range.
func (g GestureConfig) Validate() error {
	if _, err := g.Build(); err != nil {
		return err
	}
	if g.Jitter < 0 {
		return fmt.Errorf("jitter must not be negative")
	}
	if g.Plateau < 0 || g.Plateau >= 0.5 {
		return fmt.Errorf("plateau must be in [0, 0.5), got %v", g.Plateau)
	}
	return nil
}

// Build resolves the configured names into a gesture description.
func (g GestureConfig) Build() (humanoid.GestureConfig, error) {
	interp, err := humanoid.ParseInterpolation(g.Interpolation)
	if err != nil {
		return humanoid.GestureConfig{}, err
	}
	start, err := humanoid.ParseButtonAction(g.StartAction)
	if err != nil {
		return humanoid.GestureConfig{}, err
	}
	end, err := humanoid.ParseButtonAction(g.EndAction)
	if err != nil {
		return humanoid.GestureConfig{}, err
	}
	return humanoid.NewGestureConfig(interp, start, end,
		humanoid.WithDuration(g.DurationMs),
		humanoid.WithStepCost(g.StepCostMs),
		humanoid.WithJitter(g.Jitter),
	), nil
}

// HumanoidOptions maps the generator knobs onto humanoid options.
func (g GestureConfig) HumanoidOptions() []humanoid.Option {
	return []humanoid.Option{
		humanoid.WithSeed(g.Seed),
		humanoid.WithPlateau(g.Plateau),
		humanoid.WithClampJitter(g.ClampJitter),
	}
}
