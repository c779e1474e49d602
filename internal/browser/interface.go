package browser

import (
	"context"

	"github.com/xkilldash9x/gesture-cli/internal/browser/humanoid"
)

// Tab is one browser page that gestures can be performed in.
type Tab interface {
	humanoid.Driver

	// ID identifies the tab in logs.
	ID() string
	// Navigate loads url and waits for the page to finish loading.
	Navigate(ctx context.Context, url string) error
	// Close releases the tab. It is safe to call more than once.
	Close() error
}
