package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/xkilldash9x/gesture-cli/api/schemas"
	"github.com/xkilldash9x/gesture-cli/internal/browser"
	"github.com/xkilldash9x/gesture-cli/internal/config"
)

// fakeTab stands in for a browser page. It mirrors the page pointer tracker: position
// reads return -1 until the first mouse move has been dispatched.
type fakeTab struct {
	id      string
	rects   map[string]schemas.Rect
	mu      sync.Mutex
	pointer schemas.PointerState
	moved   bool
	events  []schemas.MouseEventData
	visited []string
	closed  bool
}

var _ browser.Tab = (*fakeTab)(nil)

func (f *fakeTab) ID() string { return f.id }

func (f *fakeTab) Navigate(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visited = append(f.visited, url)
	return nil
}

func (f *fakeTab) ExecuteScript(ctx context.Context, script string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !strings.Contains(script, "return [") {
		return json.RawMessage("true"), nil
	}
	if !f.moved {
		return json.RawMessage("[-1,-1]"), nil
	}
	return json.RawMessage(fmt.Sprintf("[%d,%d]", f.pointer.Pos.X, f.pointer.Pos.Y)), nil
}

func (f *fakeTab) GetElementRect(ctx context.Context, selector string) (schemas.Rect, error) {
	r, ok := f.rects[selector]
	if !ok {
		return schemas.Rect{}, fmt.Errorf("element '%s' not found", selector)
	}
	return r, nil
}

func (f *fakeTab) Perform(ctx context.Context, seq *schemas.ActionSequence) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	events, next := seq.MouseEvents(f.pointer)
	for _, e := range events {
		if e.Type == schemas.MouseMove {
			f.moved = true
		}
	}
	f.events = append(f.events, events...)
	f.pointer = next
	return nil
}

func (f *fakeTab) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeTab) count(typ schemas.MouseEventType, button schemas.MouseButton) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e.Type == typ && e.Button == button {
			n++
		}
	}
	return n
}

// fakeProvider hands out fakeTabs and tracks how many are open at once.
type fakeProvider struct {
	rects    map[string]schemas.Rect
	cfg      config.BrowserConfig
	mu       sync.Mutex
	tabs     []*fakeTab
	open     atomic.Int32
	peak     atomic.Int32
	shutdown atomic.Bool
}

func (p *fakeProvider) NewTab(ctx context.Context) (browser.Tab, error) {
	p.mu.Lock()
	tab := &fakeTab{id: fmt.Sprintf("tab-%d", len(p.tabs)+1), rects: p.rects}
	p.tabs = append(p.tabs, tab)
	p.mu.Unlock()

	n := p.open.Add(1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	return &countedTab{fakeTab: tab, release: func() { p.open.Add(-1) }}, nil
}

func (p *fakeProvider) Shutdown(ctx context.Context) error {
	p.shutdown.Store(true)
	return nil
}

func (p *fakeProvider) allTabs() []*fakeTab {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*fakeTab(nil), p.tabs...)
}

type countedTab struct {
	*fakeTab
	once    sync.Once
	release func()
}

func (c *countedTab) Close() error {
	c.once.Do(c.release)
	return c.fakeTab.Close()
}

// useFakeProvider routes every command in the test through p.
func useFakeProvider(t *testing.T, p *fakeProvider) {
	t.Helper()
	original := newTabProvider
	newTabProvider = func(cfg config.BrowserConfig, logger *zap.Logger) tabProvider {
		p.cfg = cfg
		return p
	}
	t.Cleanup(func() { newTabProvider = original })
}
