// internal/browser/humanoid/interface.go
package humanoid

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
)

// ErrPositionUnavailable is returned when the pointer position is still unknown after
// the tracker was installed and a movement was forced.
var ErrPositionUnavailable = errors.New("humanoid: could not determine pointer position")

// Driver is the browser automation collaborator the humanoid engine runs against.
// Errors returned by a Driver are passed back to callers untouched.
type Driver interface {
	// ExecuteScript evaluates a JavaScript expression in the page and returns its JSON value.
	ExecuteScript(ctx context.Context, script string) (json.RawMessage, error)
	// GetElementRect returns the bounding rectangle of the first element matching selector.
	GetElementRect(ctx context.Context, selector string) (schemas.Rect, error)
	// Perform executes a composed action sequence as a single submission.
	Perform(ctx context.Context, seq *schemas.ActionSequence) error
}

// Controller defines the high-level interface for human-like pointer gestures.
type Controller interface {
	MouseAction(ctx context.Context, cfg GestureConfig, selector string) error
	MouseActionToPoint(ctx context.Context, cfg GestureConfig, target schemas.Point) error
	CurrentPosition(ctx context.Context) (schemas.Point, error)
}
