// internal/browser/session/cdp_executor.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
	"github.com/xkilldash9x/gesture-cli/internal/browser/humanoid"
)

// DefaultOperationTimeout bounds a single driver call when none is configured.
const DefaultOperationTimeout = 10 * time.Second

// CDPDriver executes humanoid gestures against a chromedp tab using raw Input.dispatchMouseEvent
// calls. CDP has no notion of a persistent pointer, so the driver remembers where its last
// event landed in order to resolve relative moves.
type CDPDriver struct {
	ctx            context.Context // the tab context, carries the chromedp target
	logger         *zap.Logger
	timeout        time.Duration
	runActionsFunc func(ctx context.Context, actions ...chromedp.Action) error

	mu      sync.Mutex
	pointer schemas.PointerState
}

var _ humanoid.Driver = (*CDPDriver)(nil)

// NewCDPDriver binds a driver to an already allocated chromedp tab context.
func NewCDPDriver(tabCtx context.Context, logger *zap.Logger, timeout time.Duration) *CDPDriver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultOperationTimeout
	}
	d := &CDPDriver{
		ctx:     tabCtx,
		logger:  logger.Named("cdp_driver"),
		timeout: timeout,
	}
	d.runActionsFunc = d.runActions
	return d
}

// runActions executes actions on the tab, honoring cancellation of both the tab and ctx.
func (d *CDPDriver) runActions(ctx context.Context, actions ...chromedp.Action) error {
	combined, cancel := CombineContext(d.ctx, ctx)
	defer cancel()
	return chromedp.Run(combined, actions...)
}

// Navigate loads url in the tab and waits for the load event.
func (d *CDPDriver) Navigate(ctx context.Context, url string) error {
	opCtx, cancel := context.WithTimeout(ctx, 3*d.timeout)
	defer cancel()
	if err := d.runActionsFunc(opCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("cdp: navigate to %s: %w", url, d.timeoutCause(opCtx, err))
	}
	return nil
}

// ExecuteScript evaluates a JavaScript expression and returns its JSON value.
func (d *CDPDriver) ExecuteScript(ctx context.Context, script string) (json.RawMessage, error) {
	opCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var res json.RawMessage
	err := d.runActionsFunc(opCtx,
		chromedp.Evaluate(script, &res, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithReturnByValue(true).WithAwaitPromise(true).WithSilent(true)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("cdp: script evaluation failed: %w", d.timeoutCause(opCtx, err))
	}
	if len(res) == 0 {
		res = json.RawMessage("null")
	}
	return res, nil
}

// GetElementRect returns the bounding client rect of the first element matching selector.
func (d *CDPDriver) GetElementRect(ctx context.Context, selector string) (schemas.Rect, error) {
	res, err := d.ExecuteScript(ctx, ElementRectScript(selector))
	if err != nil {
		return schemas.Rect{}, err
	}
	return DecodeElementRect(selector, res)
}

// Perform translates seq into CDP mouse events and submits them in one chromedp.Run.
// The tracked pointer state follows the last event the browser accepted, so a batch that
// fails after a press still reports the button as held on the next gesture.
func (d *CDPDriver) Perform(ctx context.Context, seq *schemas.ActionSequence) error {
	if seq == nil || seq.Len() == 0 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	events, next := seq.MouseEvents(d.pointer)
	accepted := d.pointer
	actions := toChromedpActions(events, time.Duration(seq.Delay)*time.Millisecond, func(st schemas.PointerState) {
		accepted = st
	})

	budget := d.timeout + time.Duration(seq.Delay*int64(len(events)))*time.Millisecond
	opCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	if err := d.runActionsFunc(opCtx, actions...); err != nil {
		d.pointer = accepted
		d.logger.Debug("Mouse event batch failed.",
			zap.Int("events", len(events)),
			zap.String("pointer", accepted.Pos.String()),
			zap.Int64("buttons", accepted.Buttons),
			zap.Error(err))
		return fmt.Errorf("cdp: dispatching %d mouse events: %w", len(events), d.timeoutCause(opCtx, err))
	}
	d.pointer = next
	return nil
}

// Position reports where the driver believes the pointer is.
func (d *CDPDriver) Position() schemas.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pointer.Pos
}

func (d *CDPDriver) timeoutCause(opCtx context.Context, err error) error {
	if errors.Is(opCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("timed out: %w", opCtx.Err())
	}
	return err
}

// mouseDispatch sends one mouse event and reports the pointer state it leaves behind.
type mouseDispatch struct {
	*input.DispatchMouseEventParams
	after  schemas.PointerState
	onSent func(schemas.PointerState)
}

// Do implements chromedp.Action.
func (m *mouseDispatch) Do(ctx context.Context) error {
	if err := m.DispatchMouseEventParams.Do(ctx); err != nil {
		return err
	}
	m.markSent()
	return nil
}

func (m *mouseDispatch) markSent() {
	if m.onSent != nil {
		m.onSent(m.after)
	}
}

func toChromedpActions(events []schemas.MouseEventData, delay time.Duration, onSent func(schemas.PointerState)) []chromedp.Action {
	actions := make([]chromedp.Action, 0, 2*len(events))
	for i, e := range events {
		if i > 0 && delay > 0 {
			actions = append(actions, chromedp.Sleep(delay))
		}
		p := input.DispatchMouseEvent(input.MouseType(e.Type), e.X, e.Y).
			WithButton(input.MouseButton(e.Button)).
			WithButtons(e.Buttons)
		if e.ClickCount > 0 {
			p = p.WithClickCount(int64(e.ClickCount))
		}
		actions = append(actions, &mouseDispatch{
			DispatchMouseEventParams: p,
			after: schemas.PointerState{
				Pos:     schemas.Point{X: int64(e.X), Y: int64(e.Y)},
				Buttons: e.Buttons,
			},
			onSent: onSent,
		})
	}
	return actions
}

// ElementRectScript builds an expression that yields the element's bounding client rect,
// or null when nothing matches selector.
func ElementRectScript(selector string) string {
	return fmt.Sprintf(`(function(sel) {
	const node = document.querySelector(sel);
	if (!node) return null;
	const r = node.getBoundingClientRect();
	return {x: r.x, y: r.y, width: r.width, height: r.height};
})(%s)`, jsString(selector))
}

// DecodeElementRect parses the reply of ElementRectScript.
func DecodeElementRect(selector string, raw []byte) (schemas.Rect, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return schemas.Rect{}, fmt.Errorf("element '%s' not found", selector)
	}
	var rect schemas.Rect
	if err := jsoniter.Unmarshal(raw, &rect); err != nil {
		return schemas.Rect{}, fmt.Errorf("failed to decode rect for '%s': %w (payload: %s)", selector, err, raw)
	}
	return rect, nil
}

// jsString encodes s as a JavaScript string literal.
func jsString(s string) string {
	out, err := jsoniter.MarshalToString(s)
	if err != nil {
		return `""`
	}
	return out
}
