package rodsession

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ysmood/gson"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
)

type recorder struct {
	events []*proto.InputDispatchMouseEvent
	failAt int // 1-based; 0 never fails
	err    error
}

func (r *recorder) dispatch(_ context.Context, ev *proto.InputDispatchMouseEvent) error {
	r.events = append(r.events, ev)
	if r.failAt == len(r.events) {
		return r.err
	}
	return nil
}

func newRecordingDriver(t *testing.T, rec *recorder) *Driver {
	t.Helper()
	d := New(nil, zaptest.NewLogger(t), time.Second)
	d.dispatch = rec.dispatch
	return d
}

func TestDriver_Perform(t *testing.T) {
	t.Run("TranslatesGesture", func(t *testing.T) {
		rec := &recorder{}
		d := newRecordingDriver(t, rec)
		seq := schemas.NewActionSequence(0).MoveTo(3, 4).ClickAndHold().MoveByOffset(10, 0).Release()

		require.NoError(t, d.Perform(context.Background(), seq))
		require.Len(t, rec.events, 4)

		assert.Equal(t, proto.InputDispatchMouseEventTypeMouseMoved, rec.events[0].Type)
		assert.Equal(t, proto.InputMouseButtonNone, rec.events[0].Button)

		assert.Equal(t, proto.InputDispatchMouseEventTypeMousePressed, rec.events[1].Type)
		assert.Equal(t, proto.InputMouseButtonLeft, rec.events[1].Button)
		assert.Equal(t, 1, rec.events[1].ClickCount)
		require.NotNil(t, rec.events[1].Buttons)
		assert.Equal(t, 1, *rec.events[1].Buttons)

		assert.Equal(t, 13.0, rec.events[2].X)
		assert.Equal(t, 4.0, rec.events[2].Y)
		assert.Equal(t, proto.InputMouseButtonLeft, rec.events[2].Button, "drag keeps the left button")

		assert.Equal(t, proto.InputDispatchMouseEventTypeMouseReleased, rec.events[3].Type)
		assert.Equal(t, 0, *rec.events[3].Buttons)

		assert.Equal(t, schemas.Point{X: 13, Y: 4}, d.Position())
	})

	t.Run("PartialFailureTracksLastAcceptedEvent", func(t *testing.T) {
		boom := errors.New("page crashed")
		rec := &recorder{failAt: 3, err: boom}
		d := newRecordingDriver(t, rec)

		err := d.Perform(context.Background(), schemas.NewActionSequence(0).MoveTo(1, 1).MoveTo(2, 2).MoveTo(3, 3))
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "event 3 of 3")
		assert.Equal(t, schemas.Point{X: 2, Y: 2}, d.Position())
	})

	t.Run("DelayHonoursCancellation", func(t *testing.T) {
		rec := &recorder{}
		d := newRecordingDriver(t, rec)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := d.Perform(ctx, schemas.NewActionSequence(50).MoveTo(1, 1).MoveTo(2, 2))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Len(t, rec.events, 1)
	})

	t.Run("EmptyIsNoop", func(t *testing.T) {
		rec := &recorder{}
		d := newRecordingDriver(t, rec)
		require.NoError(t, d.Perform(context.Background(), schemas.NewActionSequence(0)))
		assert.Empty(t, rec.events)
	})
}

func TestRemoteValue(t *testing.T) {
	raw, err := remoteValue(&proto.RuntimeRemoteObject{
		Type:  proto.RuntimeRemoteObjectTypeObject,
		Value: gson.New([]int{7, 9}),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[7,9]`, string(raw))

	raw, err = remoteValue(&proto.RuntimeRemoteObject{Type: proto.RuntimeRemoteObjectTypeUndefined})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func TestDecodeRect(t *testing.T) {
	rect, err := decodeRect("#a", []byte(`{"x":10,"y":20,"width":5.5,"height":6}`))
	require.NoError(t, err)
	assert.Equal(t, schemas.Rect{X: 10, Y: 20, Width: 5.5, Height: 6}, rect)

	_, err = decodeRect("#a", []byte("null"))
	assert.EqualError(t, err, "element '#a' not found")
}

func TestAsFunction(t *testing.T) {
	assert.Equal(t, "() => ((function(){ return 1; })())", asFunction("(function(){ return 1; })()"))
}
