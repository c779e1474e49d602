// internal/browser/launch_flags.go
package browser

import (
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/chromedp/chromedp"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"

	"github.com/xkilldash9x/gesture-cli/internal/config"
)

// launchFlags maps a Chrome command line switch to its value. A string value is passed
// as --name=value; true passes --name; false removes the switch.
type launchFlags map[string]interface{}

// launchFlagsFor derives the browser switches shared by both engines.
func launchFlagsFor(cfg config.BrowserConfig) launchFlags {
	f := launchFlags{
		"headless":                  cfg.Headless,
		"disable-gpu":               cfg.Headless,
		"enable-automation":         false,
		"disable-blink-features":    "AutomationControlled",
		"disable-extensions":        true,
		"ignore-certificate-errors": cfg.IgnoreTLSErrors,
	}
	if cfg.WindowWidth > 0 && cfg.WindowHeight > 0 {
		f["window-size"] = fmt.Sprintf("%d,%d", cfg.WindowWidth, cfg.WindowHeight)
	}
	if cfg.UserAgent != "" {
		f["user-agent"] = cfg.UserAgent
	}
	if runtime.GOOS == "linux" {
		f["no-sandbox"] = true
		f["disable-dev-shm-usage"] = true
	}

	// Custom arguments win over the defaults above.
	for _, arg := range cfg.Args {
		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if name == "" {
			continue
		}
		if hasValue {
			f[name] = value
		} else {
			f[name] = true
		}
	}
	return f
}

// names returns the switch names in a stable order.
func (f launchFlags) names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// allocatorOptions renders the flags as chromedp exec allocator options.
func allocatorOptions(cfg config.BrowserConfig) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	f := launchFlagsFor(cfg)
	for _, name := range f.names() {
		opts = append(opts, chromedp.Flag(name, f[name]))
	}
	return opts
}

// newLauncher renders the flags onto a go-rod launcher. Nothing is started.
func newLauncher(cfg config.BrowserConfig) *launcher.Launcher {
	l := launcher.New()
	if cfg.ExecPath != "" {
		l = l.Bin(cfg.ExecPath)
	} else if path, found := launcher.LookPath(); found {
		l = l.Bin(path)
	}

	f := launchFlagsFor(cfg)
	for _, name := range f.names() {
		switch v := f[name].(type) {
		case bool:
			if v {
				l = l.Set(flags.Flag(name))
			} else {
				l = l.Delete(flags.Flag(name))
			}
		case string:
			l = l.Set(flags.Flag(name), v)
		}
	}
	return l
}
