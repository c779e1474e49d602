// -- cmd/root.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/gesture-cli/internal/browser"
	"github.com/xkilldash9x/gesture-cli/internal/config"
	"github.com/xkilldash9x/gesture-cli/internal/observability"
)

// tabProvider opens browser tabs. *browser.Manager is the production implementation.
type tabProvider interface {
	NewTab(ctx context.Context) (browser.Tab, error)
	Shutdown(ctx context.Context) error
}

// newTabProvider is swapped out in tests so commands run without a browser.
var newTabProvider = func(cfg config.BrowserConfig, logger *zap.Logger) tabProvider {
	return browser.NewManager(cfg, logger)
}

// app carries state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRootCommand builds a fresh command tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "gesture-cli",
		Short:         "Drive a browser pointer along human-like trajectories.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}
	rootCmd.SetVersionTemplate(`{{printf "%s version %s\n" .Name .Version}}`)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./gesture.yaml or ~/.gesture/gesture.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.String("engine", config.EngineChromedp, "browser engine: chromedp or rod")
	pf.Bool("headless", true, "run the browser without a window")
	pf.Int64("seed", 0, "seed for all random sources (0 seeds from the clock)")

	rootCmd.AddCommand(
		newMoveCmd(a),
		newRunCmd(a),
		newPlanCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI with the given context and logs a failure before returning it.
func Execute(ctx context.Context) error {
	defer observability.Sync()

	err := NewRootCommand().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		observability.GetLogger().Error("Command execution failed.", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// initialize loads configuration with precedence flags > env > file > defaults, then
// sets up logging.
func (a *app) initialize(cmd *cobra.Command) error {
	config.SetDefaults(a.v)

	bindings := map[string]string{
		"browser.engine":   "engine",
		"browser.headless": "headless",
		"gesture.seed":     "seed",
	}
	for key, flag := range bindings {
		if err := a.v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	if err := a.bindGestureFlags(cmd); err != nil {
		return err
	}

	if err := a.readConfigFile(); err != nil {
		return err
	}

	cfg, err := config.NewConfigFromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = observability.InitializeLogger(cfg.Logger())
	if a.verbose {
		observability.SetLevel(zapcore.DebugLevel)
	}
	a.logger.Debug("Configuration loaded.",
		zap.String("config_file", a.v.ConfigFileUsed()),
		zap.String("engine", cfg.Browser().Engine),
		zap.String("version", Version),
	)
	return nil
}

func (a *app) readConfigFile() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName("gesture")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".gesture"))
		}
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// bindGestureFlags lets gesture flags on a subcommand override gesture.* config keys.
func (a *app) bindGestureFlags(cmd *cobra.Command) error {
	for key, flag := range map[string]string{
		"gesture.interpolation": "interpolation",
		"gesture.start_action":  "start",
		"gesture.end_action":    "end",
		"gesture.duration_ms":   "duration",
		"gesture.jitter":        "jitter",
		"gesture.clamp_jitter":  "clamp-jitter",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// addGestureFlags declares the flags that bindGestureFlags binds.
func addGestureFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("interpolation", "linear", "path strategy: linear or spline")
	f.String("start", "none", "button action before moving: none, left_click, left_hold, left_release, right_click")
	f.String("end", "none", "button action after moving")
	f.Int64("duration", 500, "gesture duration in milliseconds")
	f.Int64("jitter", 0, "per-axis jitter bound in pixels")
	f.Bool("clamp-jitter", false, "keep jittered points on screen")
}
