package schemas

import "fmt"

// -- Geometry Schemas --

// Point is a pair of integer screen coordinates in CSS pixels.
type Point struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// String renders the point as "x,y".
func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Rect is an element's bounding geometry as reported by the browser.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// -- Humanoid Low-Level Interaction Schemas --

// MouseEventType defines the type of a mouse event.
type MouseEventType string

const (
	MouseMove    MouseEventType = "mouseMoved"
	MousePress   MouseEventType = "mousePressed"
	MouseRelease MouseEventType = "mouseReleased"
)

// MouseButton defines the mouse button being pressed.
type MouseButton string

const (
	ButtonNone  MouseButton = "none"
	ButtonLeft  MouseButton = "left"
	ButtonRight MouseButton = "right"
)

// MouseEventData encapsulates all data for a single dispatched mouse event.
type MouseEventData struct {
	Type       MouseEventType `json:"type"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Button     MouseButton    `json:"button"`
	Buttons    int64          `json:"buttons"`
	ClickCount int            `json:"clickCount"`
}

// -- Pointer Action Composition --

// PointerActionKind identifies one primitive step of a composed pointer gesture.
type PointerActionKind string

const (
	ActionMoveBy       PointerActionKind = "moveBy"
	ActionMoveTo       PointerActionKind = "moveTo"
	ActionClick        PointerActionKind = "click"
	ActionClickAndHold PointerActionKind = "clickAndHold"
	ActionRelease      PointerActionKind = "release"
	ActionContextClick PointerActionKind = "contextClick"
)

// PointerAction is a single queued step. X and Y are only meaningful for moves;
// for ActionMoveBy they are a relative offset.
type PointerAction struct {
	Kind PointerActionKind `json:"kind"`
	X    int64             `json:"x,omitempty"`
	Y    int64             `json:"y,omitempty"`
}

// ActionSequence is an ordered list of pointer actions submitted to a driver as one unit.
// Delay is the minimum pause the driver inserts between consecutive actions.
type ActionSequence struct {
	Delay   int64           `json:"delayMs"`
	Actions []PointerAction `json:"actions"`
}

// NewActionSequence returns an empty sequence with the given inter-action delay in milliseconds.
func NewActionSequence(delayMs int64) *ActionSequence {
	if delayMs < 0 {
		delayMs = 0
	}
	return &ActionSequence{Delay: delayMs}
}

// MoveByOffset queues a move relative to the pointer's current position.
func (s *ActionSequence) MoveByOffset(dx, dy int64) *ActionSequence {
	s.Actions = append(s.Actions, PointerAction{Kind: ActionMoveBy, X: dx, Y: dy})
	return s
}

// MoveTo queues a move to an absolute viewport coordinate.
func (s *ActionSequence) MoveTo(x, y int64) *ActionSequence {
	s.Actions = append(s.Actions, PointerAction{Kind: ActionMoveTo, X: x, Y: y})
	return s
}

// Click queues a left press and release at the current position.
func (s *ActionSequence) Click() *ActionSequence {
	s.Actions = append(s.Actions, PointerAction{Kind: ActionClick})
	return s
}

// ClickAndHold queues a left press without a release.
func (s *ActionSequence) ClickAndHold() *ActionSequence {
	s.Actions = append(s.Actions, PointerAction{Kind: ActionClickAndHold})
	return s
}

// Release queues a left release.
func (s *ActionSequence) Release() *ActionSequence {
	s.Actions = append(s.Actions, PointerAction{Kind: ActionRelease})
	return s
}

// ContextClick queues a right press and release at the current position.
func (s *ActionSequence) ContextClick() *ActionSequence {
	s.Actions = append(s.Actions, PointerAction{Kind: ActionContextClick})
	return s
}

// Len returns the number of queued actions.
func (s *ActionSequence) Len() int {
	return len(s.Actions)
}

// -- Pointer State Expansion --

// CDP "buttons" bitfield values.
const (
	ButtonsLeft  int64 = 1
	ButtonsRight int64 = 2
)

// PointerState is what a driver remembers about the pointer between submissions.
type PointerState struct {
	Pos     Point `json:"pos"`
	Buttons int64 `json:"buttons"`
}

// HeldButton is the button reported on moves while buttons are down.
func (ps PointerState) HeldButton() MouseButton {
	switch {
	case ps.Buttons&ButtonsLeft != 0:
		return ButtonLeft
	case ps.Buttons&ButtonsRight != 0:
		return ButtonRight
	default:
		return ButtonNone
	}
}

// MouseEvents expands the sequence into individual mouse events starting from the given
// pointer state, and returns the state after the last event. Clicks press and release
// with a click count of one; moves carry whatever buttons are held.
func (s *ActionSequence) MouseEvents(from PointerState) ([]MouseEventData, PointerState) {
	st := from
	events := make([]MouseEventData, 0, s.Len()+2)

	emit := func(typ MouseEventType, button MouseButton, clickCount int) {
		events = append(events, MouseEventData{
			Type:       typ,
			X:          float64(st.Pos.X),
			Y:          float64(st.Pos.Y),
			Button:     button,
			Buttons:    st.Buttons,
			ClickCount: clickCount,
		})
	}
	press := func(button MouseButton, bit int64) {
		st.Buttons |= bit
		emit(MousePress, button, 1)
	}
	release := func(button MouseButton, bit int64) {
		st.Buttons &^= bit
		emit(MouseRelease, button, 1)
	}

	for _, a := range s.Actions {
		switch a.Kind {
		case ActionMoveBy:
			st.Pos = Point{X: st.Pos.X + a.X, Y: st.Pos.Y + a.Y}
			emit(MouseMove, st.HeldButton(), 0)
		case ActionMoveTo:
			st.Pos = Point{X: a.X, Y: a.Y}
			emit(MouseMove, st.HeldButton(), 0)
		case ActionClick:
			press(ButtonLeft, ButtonsLeft)
			release(ButtonLeft, ButtonsLeft)
		case ActionClickAndHold:
			press(ButtonLeft, ButtonsLeft)
		case ActionRelease:
			release(ButtonLeft, ButtonsLeft)
		case ActionContextClick:
			press(ButtonRight, ButtonsRight)
			release(ButtonRight, ButtonsRight)
		}
	}
	return events, st
}
