// FILE: ./internal/browser/humanoid/mocks_test.go
package humanoid

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
)

// mockDriver mocks the Driver interface. Submitted sequences are also recorded so
// tests can inspect them without digging through mock call arguments.
type mockDriver struct {
	mock.Mock
	mu        sync.Mutex
	performed []*schemas.ActionSequence
}

func (m *mockDriver) ExecuteScript(ctx context.Context, script string) (json.RawMessage, error) {
	args := m.Called(ctx, script)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockDriver) GetElementRect(ctx context.Context, selector string) (schemas.Rect, error) {
	args := m.Called(ctx, selector)
	return args.Get(0).(schemas.Rect), args.Error(1)
}

func (m *mockDriver) Perform(ctx context.Context, seq *schemas.ActionSequence) error {
	m.mu.Lock()
	m.performed = append(m.performed, seq)
	m.mu.Unlock()
	args := m.Called(ctx, seq)
	return args.Error(0)
}

// sequences returns a snapshot of every submitted sequence.
func (m *mockDriver) sequences() []*schemas.ActionSequence {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*schemas.ActionSequence, len(m.performed))
	copy(out, m.performed)
	return out
}

// trackerReply renders a tracker read result.
func trackerReply(x, y int64) json.RawMessage {
	b, _ := json.Marshal([]int64{x, y})
	return b
}

// isForcedMove matches the single relative (1,1) nudge used by position discovery.
func isForcedMove(seq *schemas.ActionSequence) bool {
	return seq != nil && len(seq.Actions) == 1 &&
		seq.Actions[0] == schemas.PointerAction{Kind: schemas.ActionMoveBy, X: 1, Y: 1}
}

// isGesture matches anything other than the discovery nudge.
func isGesture(seq *schemas.ActionSequence) bool {
	return !isForcedMove(seq)
}

// fixedSource is a rand.Source that always yields the same value, for pinning
// Float64/Int63n outcomes in edge case tests.
type fixedSource struct {
	value int64
}

func (f *fixedSource) Int63() int64  { return f.value }
func (f *fixedSource) Seed(int64)    {}
