// internal/browser/session/context_utils.go
package session

import (
	"context"
)

// CombineContext returns a context that inherits values from tabCtx (which carries the
// chromedp target) and is canceled as soon as either tabCtx or opCtx is done.
// Callers must invoke the returned CancelFunc.
func CombineContext(tabCtx, opCtx context.Context) (context.Context, context.CancelFunc) {
	combined, cancel := context.WithCancel(tabCtx)
	stop := context.AfterFunc(opCtx, cancel)
	return combined, func() {
		stop()
		cancel()
	}
}
