// Package rodsession drives humanoid gestures through a go-rod page.
package rodsession

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
	"github.com/xkilldash9x/gesture-cli/internal/browser/humanoid"
)

// DefaultOperationTimeout bounds a single driver call when none is configured.
const DefaultOperationTimeout = 10 * time.Second

// mouseDispatcher sends one mouse event to the page. Tests replace it.
type mouseDispatcher func(ctx context.Context, ev *proto.InputDispatchMouseEvent) error

// Driver adapts a *rod.Page to humanoid.Driver.
type Driver struct {
	page     *rod.Page
	logger   *zap.Logger
	timeout  time.Duration
	dispatch mouseDispatcher

	mu      sync.Mutex
	pointer schemas.PointerState
}

var _ humanoid.Driver = (*Driver)(nil)

// New wraps page. The page must outlive the driver.
func New(page *rod.Page, logger *zap.Logger, timeout time.Duration) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultOperationTimeout
	}
	d := &Driver{
		page:    page,
		logger:  logger.Named("rod_driver"),
		timeout: timeout,
	}
	d.dispatch = func(ctx context.Context, ev *proto.InputDispatchMouseEvent) error {
		return ev.Call(d.page.Context(ctx))
	}
	return d
}

// Navigate loads url and waits for the load event.
func (d *Driver) Navigate(ctx context.Context, url string) error {
	opCtx, cancel := context.WithTimeout(ctx, 3*d.timeout)
	defer cancel()

	p := d.page.Context(opCtx)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("rod: navigate to %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("rod: waiting for %s to load: %w", url, err)
	}
	return nil
}

// ExecuteScript evaluates a JavaScript expression and returns its JSON value.
func (d *Driver) ExecuteScript(ctx context.Context, script string) (json.RawMessage, error) {
	opCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	res, err := d.page.Context(opCtx).Eval(asFunction(script))
	if err != nil {
		return nil, fmt.Errorf("rod: script evaluation failed: %w", err)
	}
	return remoteValue(res)
}

// GetElementRect returns the bounding client rect of the first element matching selector.
// It does not wait for the element to appear.
func (d *Driver) GetElementRect(ctx context.Context, selector string) (schemas.Rect, error) {
	opCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	found, el, err := d.page.Context(opCtx).Has(selector)
	if err != nil {
		return schemas.Rect{}, fmt.Errorf("rod: querying '%s': %w", selector, err)
	}
	if !found {
		return schemas.Rect{}, fmt.Errorf("element '%s' not found", selector)
	}

	res, err := el.Eval(`function() {
	const r = this.getBoundingClientRect();
	return {x: r.x, y: r.y, width: r.width, height: r.height};
}`)
	if err != nil {
		return schemas.Rect{}, fmt.Errorf("rod: reading geometry of '%s': %w", selector, err)
	}
	raw, err := remoteValue(res)
	if err != nil {
		return schemas.Rect{}, err
	}
	return decodeRect(selector, raw)
}

// Perform dispatches the sequence's mouse events in order, pausing seq.Delay between them.
// Events already sent stay sent when a later one fails; the tracked pointer state follows
// the last event that was accepted.
func (d *Driver) Perform(ctx context.Context, seq *schemas.ActionSequence) error {
	if seq == nil || seq.Len() == 0 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	events, final := seq.MouseEvents(d.pointer)
	delay := time.Duration(seq.Delay) * time.Millisecond

	budget := d.timeout + time.Duration(len(events))*delay
	opCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	for i, ev := range events {
		if i > 0 && delay > 0 {
			if err := sleep(opCtx, delay); err != nil {
				return fmt.Errorf("rod: gesture interrupted after %d of %d events: %w", i, len(events), err)
			}
		}
		if err := d.dispatch(opCtx, toProto(ev)); err != nil {
			d.logger.Debug("Mouse event rejected.", zap.Int("index", i), zap.String("type", string(ev.Type)), zap.Error(err))
			return fmt.Errorf("rod: dispatching mouse event %d of %d: %w", i+1, len(events), err)
		}
		d.pointer = schemas.PointerState{
			Pos:     schemas.Point{X: int64(ev.X), Y: int64(ev.Y)},
			Buttons: ev.Buttons,
		}
	}
	d.pointer = final
	return nil
}

// Position reports where the driver believes the pointer is.
func (d *Driver) Position() schemas.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pointer.Pos
}

func toProto(ev schemas.MouseEventData) *proto.InputDispatchMouseEvent {
	buttons := int(ev.Buttons)
	return &proto.InputDispatchMouseEvent{
		Type:       proto.InputDispatchMouseEventType(ev.Type),
		X:          ev.X,
		Y:          ev.Y,
		Button:     proto.InputMouseButton(ev.Button),
		Buttons:    &buttons,
		ClickCount: ev.ClickCount,
	}
}

// asFunction wraps an expression so rod evaluates it rather than applying it.
func asFunction(script string) string {
	return "() => (" + script + ")"
}

func remoteValue(res *proto.RuntimeRemoteObject) (json.RawMessage, error) {
	if res == nil || res.Type == proto.RuntimeRemoteObjectTypeUndefined {
		return json.RawMessage("null"), nil
	}
	raw, err := res.Value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("rod: encoding script result: %w", err)
	}
	return raw, nil
}

func decodeRect(selector string, raw json.RawMessage) (schemas.Rect, error) {
	if string(raw) == "null" {
		return schemas.Rect{}, fmt.Errorf("element '%s' not found", selector)
	}
	var rect schemas.Rect
	if err := json.Unmarshal(raw, &rect); err != nil {
		return schemas.Rect{}, fmt.Errorf("failed to decode rect for '%s': %w (payload: %s)", selector, err, raw)
	}
	return rect, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
