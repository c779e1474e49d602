// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. GESTURE_BROWSER_ENGINE.
const EnvPrefix = "GESTURE"

// Browser engines understood by the browser manager.
const (
	EngineChromedp = "chromedp"
	EngineRod      = "rod"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Browser() BrowserConfig
	Gesture() GestureConfig
	Script() ScriptConfig

	// Browser Setters
	SetBrowserEngine(string)
	SetBrowserHeadless(bool)

	// Gesture Setters
	SetGestureSeed(int64)
}

// Config holds the entire application configuration. Sections are exported so viper can
// decode into them, but callers go through the getters.
type Config struct {
	LoggerCfg  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	BrowserCfg BrowserConfig `mapstructure:"browser" yaml:"browser"`
	GestureCfg GestureConfig `mapstructure:"gesture" yaml:"gesture"`
	ScriptCfg  ScriptConfig  `mapstructure:"script" yaml:"script"`
}

var _ Interface = (*Config)(nil)

func (c *Config) Logger() LoggerConfig   { return c.LoggerCfg }
func (c *Config) Browser() BrowserConfig { return c.BrowserCfg }
func (c *Config) Gesture() GestureConfig { return c.GestureCfg }
func (c *Config) Script() ScriptConfig   { return c.ScriptCfg }

func (c *Config) SetBrowserEngine(e string) { c.BrowserCfg.Engine = e }
func (c *Config) SetBrowserHeadless(b bool) { c.BrowserCfg.Headless = b }
func (c *Config) SetGestureSeed(s int64)    { c.GestureCfg.Seed = s }

// LoggerConfig configures the zap logger and its rotating file sink.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig holds ANSI color names for each console log level.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// BrowserConfig controls how the browser is launched and how long driver calls may take.
type BrowserConfig struct {
	Engine           string        `mapstructure:"engine" yaml:"engine"`
	Headless         bool          `mapstructure:"headless" yaml:"headless"`
	IgnoreTLSErrors  bool          `mapstructure:"ignore_tls_errors" yaml:"ignore_tls_errors"`
	ExecPath         string        `mapstructure:"exec_path" yaml:"exec_path"`
	UserAgent        string        `mapstructure:"user_agent" yaml:"user_agent"`
	Args             []string      `mapstructure:"args" yaml:"args"`
	WindowWidth      int           `mapstructure:"window_width" yaml:"window_width"`
	WindowHeight     int           `mapstructure:"window_height" yaml:"window_height"`
	Concurrency      int           `mapstructure:"concurrency" yaml:"concurrency"`
	LaunchTimeout    time.Duration `mapstructure:"launch_timeout" yaml:"launch_timeout"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout" yaml:"operation_timeout"`
}

// ScriptConfig paces gesture scripts.
type ScriptConfig struct {
	StepsPerSecond float64       `mapstructure:"steps_per_second" yaml:"steps_per_second"`
	Burst          int           `mapstructure:"burst" yaml:"burst"`
	StepTimeout    time.Duration `mapstructure:"step_timeout" yaml:"step_timeout"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "gesture-cli")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Browser --
	v.SetDefault("browser.engine", EngineChromedp)
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.ignore_tls_errors", false)
	v.SetDefault("browser.exec_path", "")
	v.SetDefault("browser.user_agent", "")
	v.SetDefault("browser.args", []string{})
	v.SetDefault("browser.window_width", 1280)
	v.SetDefault("browser.window_height", 800)
	v.SetDefault("browser.concurrency", 4)
	v.SetDefault("browser.launch_timeout", "30s")
	v.SetDefault("browser.operation_timeout", "10s")

	// -- Gesture --
	setGestureDefaults(v)

	// -- Script --
	v.SetDefault("script.steps_per_second", 2.0)
	v.SetDefault("script.burst", 1)
	v.SetDefault("script.step_timeout", "30s")
}

// NewConfigFromViper creates a new configuration instance from a viper object.
// Environment variables prefixed with GESTURE_ override file values.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	switch c.BrowserCfg.Engine {
	case EngineChromedp, EngineRod:
	default:
		return fmt.Errorf("browser.engine must be %q or %q, got %q", EngineChromedp, EngineRod, c.BrowserCfg.Engine)
	}
	if c.BrowserCfg.Concurrency <= 0 {
		return fmt.Errorf("browser.concurrency must be a positive integer")
	}
	if c.BrowserCfg.OperationTimeout <= 0 {
		return fmt.Errorf("browser.operation_timeout must be a positive duration")
	}
	if err := c.GestureCfg.Validate(); err != nil {
		return fmt.Errorf("gesture configuration invalid: %w", err)
	}
	if c.ScriptCfg.StepsPerSecond < 0 {
		return fmt.Errorf("script.steps_per_second must not be negative")
	}
	if c.ScriptCfg.Burst <= 0 {
		return fmt.Errorf("script.burst must be a positive integer")
	}
	return nil
}
