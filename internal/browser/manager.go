// internal/browser/manager.go
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/xkilldash9x/gesture-cli/internal/browser/humanoid"
	"github.com/xkilldash9x/gesture-cli/internal/browser/rodsession"
	"github.com/xkilldash9x/gesture-cli/internal/browser/session"
	"github.com/xkilldash9x/gesture-cli/internal/config"
)

// Manager owns the browser process and hands out tabs. The browser is launched lazily on
// the first NewTab call with whichever engine the configuration names.
type Manager struct {
	logger *zap.Logger
	cfg    config.BrowserConfig

	launchOnce sync.Once
	launchErr  error

	// chromedp engine
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	// rod engine
	launcher *launcher.Launcher
	rod      *rod.Browser

	slots *semaphore.Weighted
	tabs  map[string]*managedTab
	mu    sync.Mutex
	wg    sync.WaitGroup
}

// NewManager creates a manager. Nothing is launched yet.
func NewManager(cfg config.BrowserConfig, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Manager{
		logger: logger.Named("browser_manager"),
		cfg:    cfg,
		slots:  semaphore.NewWeighted(int64(concurrency)),
		tabs:   make(map[string]*managedTab),
	}
}

// Engine reports which automation engine backs the tabs.
func (m *Manager) Engine() string {
	return m.cfg.Engine
}

func (m *Manager) launch(ctx context.Context) error {
	m.launchOnce.Do(func() {
		m.logger.Info("Launching browser.", zap.String("engine", m.cfg.Engine), zap.Bool("headless", m.cfg.Headless))
		switch m.cfg.Engine {
		case config.EngineRod:
			m.launchErr = m.launchRod(ctx)
		case config.EngineChromedp, "":
			m.launchErr = m.launchChromedp(ctx)
		default:
			m.launchErr = fmt.Errorf("unknown browser engine %q", m.cfg.Engine)
		}
		if m.launchErr == nil {
			m.logger.Info("Browser launched successfully and is responsive.")
		}
	})
	return m.launchErr
}

func (m *Manager) launchTimeout() time.Duration {
	if m.cfg.LaunchTimeout > 0 {
		return m.cfg.LaunchTimeout
	}
	return 30 * time.Second
}

func (m *Manager) launchChromedp(ctx context.Context) error {
	// The browser must outlive the launching request, so it hangs off a detached context.
	m.allocCtx, m.allocCancel = chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocatorOptions(m.cfg)...)
	m.browserCtx, m.browserCancel = chromedp.NewContext(m.allocCtx)

	startCtx, cancel := context.WithTimeout(ctx, m.launchTimeout())
	defer cancel()
	startCtx, cancelStart := session.CombineContext(m.browserCtx, startCtx)
	defer cancelStart()

	if err := chromedp.Run(startCtx, chromedp.Navigate("about:blank")); err != nil {
		m.browserCancel()
		m.allocCancel()
		return fmt.Errorf("browser failed to start or respond: %w", err)
	}
	return nil
}

func (m *Manager) launchRod(ctx context.Context) error {
	startCtx, cancel := context.WithTimeout(ctx, m.launchTimeout())
	defer cancel()

	m.launcher = newLauncher(m.cfg)
	u, err := m.launcher.Context(startCtx).Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		m.launcher.Kill()
		return fmt.Errorf("failed to connect to browser at %s: %w", u, err)
	}
	m.rod = b
	return nil
}

// NewTab opens a fresh tab. It blocks while the configured number of tabs is open.
func (m *Manager) NewTab(ctx context.Context) (Tab, error) {
	if err := m.slots.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	if err := m.launch(ctx); err != nil {
		m.slots.Release(1)
		return nil, err
	}

	id := uuid.NewString()
	logger := m.logger.With(zap.String("tab_id", id))

	var (
		tab *managedTab
		err error
	)
	switch m.cfg.Engine {
	case config.EngineRod:
		tab, err = m.newRodTab(ctx, id, logger)
	default:
		tab, err = m.newChromedpTab(ctx, id, logger)
	}
	if err != nil {
		m.slots.Release(1)
		return nil, err
	}

	m.wg.Add(1)
	tab.onClose = func() {
		m.mu.Lock()
		delete(m.tabs, id)
		m.mu.Unlock()
		m.slots.Release(1)
		m.wg.Done()
		logger.Debug("Tab removed from manager.")
	}
	m.mu.Lock()
	m.tabs[id] = tab
	m.mu.Unlock()

	logger.Info("New tab created.")
	return tab, nil
}

var _ Tab = (*managedTab)(nil)

func (m *Manager) newChromedpTab(ctx context.Context, id string, logger *zap.Logger) (*managedTab, error) {
	tabCtx, cancel := chromedp.NewContext(m.browserCtx)

	initCtx, cancelInit := context.WithTimeout(ctx, m.launchTimeout())
	defer cancelInit()
	runCtx, cancelRun := session.CombineContext(tabCtx, initCtx)
	defer cancelRun()

	if err := chromedp.Run(runCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open tab: %w", err)
	}

	release := func() error {
		cancel()
		return nil
	}
	return &managedTab{
		engineDriver: session.NewCDPDriver(tabCtx, logger, m.cfg.OperationTimeout),
		id:           id,
		release:      release,
	}, nil
}

func (m *Manager) newRodTab(ctx context.Context, id string, logger *zap.Logger) (*managedTab, error) {
	page, err := m.rod.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to open tab: %w", err)
	}
	// Detach the page from the request context that created it.
	page = page.Context(context.Background())

	return &managedTab{
		engineDriver: rodsession.New(page, logger, m.cfg.OperationTimeout),
		id:           id,
		release:      page.Close,
	}, nil
}

// Shutdown closes every open tab, waits for them to drain, then stops the browser.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	open := make([]*managedTab, 0, len(m.tabs))
	for _, t := range m.tabs {
		open = append(open, t)
	}
	m.mu.Unlock()

	for _, t := range open {
		if err := t.Close(); err != nil {
			m.logger.Warn("Error closing tab during shutdown.", zap.String("tab_id", t.ID()), zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		m.logger.Warn("Shutdown deadline exceeded. Forcing browser termination.", zap.Error(ctx.Err()))
	}

	var err error
	if m.browserCancel != nil {
		m.browserCancel()
		m.allocCancel()
		<-m.allocCtx.Done()
	}
	if m.rod != nil {
		if cerr := m.rod.Close(); cerr != nil {
			err = fmt.Errorf("failed to close browser: %w", cerr)
		}
		m.launcher.Cleanup()
	}
	m.logger.Info("Browser manager shutdown complete.")
	return err
}

// engineDriver is what each engine's driver implements on its own.
type engineDriver interface {
	humanoid.Driver
	Navigate(ctx context.Context, url string) error
}

type managedTab struct {
	engineDriver
	id      string
	release func() error
	onClose func()

	closeOnce sync.Once
	closeErr  error
}

func (t *managedTab) ID() string { return t.id }

func (t *managedTab) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.release()
		if t.onClose != nil {
			t.onClose()
		}
	})
	return t.closeErr
}
