// Package script loads YAML gesture scripts: a start URL and an ordered list of gestures.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
	"github.com/xkilldash9x/gesture-cli/internal/browser/humanoid"
	"github.com/xkilldash9x/gesture-cli/internal/config"
)

// Script is a named sequence of gestures performed in one tab.
type Script struct {
	Name  string `yaml:"name"`
	URL   string `yaml:"url"`
	Steps []Step `yaml:"steps"`
}

// Step is one gesture. Exactly one of Selector or Point names the target. Fields left
// empty fall back to the gesture defaults from configuration.
type Step struct {
	Name          string         `yaml:"name,omitempty"`
	Selector      string         `yaml:"selector,omitempty"`
	Point         *schemas.Point `yaml:"point,omitempty"`
	Interpolation string         `yaml:"interpolation,omitempty"`
	StartAction   string         `yaml:"start_action,omitempty"`
	EndAction     string         `yaml:"end_action,omitempty"`
	DurationMs    *int64         `yaml:"duration_ms,omitempty"`
	Jitter        *int64         `yaml:"jitter,omitempty"`
	// WaitMs pauses after the gesture completes.
	WaitMs int64 `yaml:"wait_ms,omitempty"`
}

// Label names the step for logs and reports.
func (s Step) Label(index int) string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Selector != "":
		return fmt.Sprintf("#%d %s", index+1, s.Selector)
	case s.Point != nil:
		return fmt.Sprintf("#%d (%s)", index+1, s.Point)
	default:
		return fmt.Sprintf("#%d", index+1)
	}
}

// Gesture merges the step over defaults and resolves it.
func (s Step) Gesture(defaults config.GestureConfig) (humanoid.GestureConfig, error) {
	g := defaults
	if s.Interpolation != "" {
		g.Interpolation = s.Interpolation
	}
	if s.StartAction != "" {
		g.StartAction = s.StartAction
	}
	if s.EndAction != "" {
		g.EndAction = s.EndAction
	}
	if s.DurationMs != nil {
		g.DurationMs = *s.DurationMs
	}
	if s.Jitter != nil {
		g.Jitter = *s.Jitter
	}
	return g.Build()
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script held in memory.
func Parse(data []byte) (*Script, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a single YAML document. Unknown keys are rejected.
func Decode(r io.Reader) (*Script, error) {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)

	var s Script
	if err := d.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("script is empty")
		}
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every step in isolation. Gesture names are checked against the
// zero defaults, which resolve to linear with no button actions.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New("script has no steps")
	}
	for i, st := range s.Steps {
		if (st.Selector == "") == (st.Point == nil) {
			return fmt.Errorf("step %s: exactly one of selector or point is required", st.Label(i))
		}
		if st.WaitMs < 0 {
			return fmt.Errorf("step %s: wait_ms must not be negative", st.Label(i))
		}
		if st.Jitter != nil && *st.Jitter < 0 {
			return fmt.Errorf("step %s: jitter must not be negative", st.Label(i))
		}
		if _, err := st.Gesture(config.GestureConfig{}); err != nil {
			return fmt.Errorf("step %s: %w", st.Label(i), err)
		}
	}
	return nil
}

// Encode writes the script as YAML.
func (s *Script) Encode(w io.Writer) error {
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	if err := e.Encode(s); err != nil {
		return err
	}
	return e.Close()
}
