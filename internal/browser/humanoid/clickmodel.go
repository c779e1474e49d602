// internal/browser/humanoid/clickmodel.go
package humanoid

import (
	"fmt"
	"strings"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
)

// ButtonAction is the button interaction that brackets a gesture's path.
type ButtonAction int

const (
	ButtonNone ButtonAction = iota
	ButtonLeftClick
	ButtonLeftHold
	ButtonLeftRelease
	ButtonRightClick
)

var buttonActionNames = map[ButtonAction]string{
	ButtonNone:        "none",
	ButtonLeftClick:   "left_click",
	ButtonLeftHold:    "left_hold",
	ButtonLeftRelease: "left_release",
	ButtonRightClick:  "right_click",
}

func (b ButtonAction) String() string {
	if name, ok := buttonActionNames[b]; ok {
		return name
	}
	return fmt.Sprintf("ButtonAction(%d)", int(b))
}

// ParseButtonAction accepts the snake_case names used in configuration and scripts.
// Dashes are treated as underscores; empty means none.
func ParseButtonAction(s string) (ButtonAction, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if norm == "" {
		return ButtonNone, nil
	}
	for action, name := range buttonActionNames {
		if name == norm {
			return action, nil
		}
	}
	return ButtonNone, fmt.Errorf("humanoid: unknown button action %q", s)
}

// Apply queues the driver primitive for this action onto seq.
func (b ButtonAction) Apply(seq *schemas.ActionSequence) *schemas.ActionSequence {
	switch b {
	case ButtonLeftClick:
		return seq.Click()
	case ButtonLeftHold:
		return seq.ClickAndHold()
	case ButtonLeftRelease:
		return seq.Release()
	case ButtonRightClick:
		return seq.ContextClick()
	default:
		return seq
	}
}
