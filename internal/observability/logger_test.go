// internal/observability/logger_test.go
package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/gesture-cli/internal/config"
)

func initToBuffer(t *testing.T, cfg config.LoggerConfig) (*zap.Logger, *bytes.Buffer) {
	t.Helper()
	ResetForTest()
	t.Cleanup(ResetForTest)
	var buf bytes.Buffer
	return Initialize(cfg, zapcore.AddSync(&buf)), &buf
}

func TestInitialize(t *testing.T) {
	t.Run("ConsoleWithColors", func(t *testing.T) {
		logger, buf := initToBuffer(t, config.LoggerConfig{
			Level:       "debug",
			Format:      "console",
			ServiceName: "gesture",
			Colors:      config.ColorConfig{Info: "green"},
		})
		logger.Info("Gesture submitted.")

		out := buf.String()
		assert.Contains(t, out, ansiColors["green"]+"INFO"+colorReset)
		assert.Contains(t, out, "gesture.")
		assert.Contains(t, out, "Gesture submitted.")
	})

	t.Run("PlainConsoleHasNoEscapes", func(t *testing.T) {
		logger, buf := initToBuffer(t, config.LoggerConfig{
			Level:  "info",
			Format: "plain",
			Colors: config.ColorConfig{Info: "green"},
		})
		logger.Info("hello")
		assert.NotContains(t, buf.String(), "\x1b[")
		assert.Contains(t, buf.String(), "INFO")
	})

	t.Run("JSON", func(t *testing.T) {
		logger, buf := initToBuffer(t, config.LoggerConfig{
			Level:       "info",
			Format:      "json",
			ServiceName: "JSONTest",
		})
		logger.Warn("Pointer position unknown.", zap.String("selector", "#go"))

		var entry map[string]interface{}
		require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "JSONTest", entry["logger"])
		assert.Equal(t, "Pointer position unknown.", entry["msg"])
		assert.Equal(t, "#go", entry["selector"])
	})

	t.Run("LevelFiltering", func(t *testing.T) {
		logger, buf := initToBuffer(t, config.LoggerConfig{Level: "warn", Format: "json"})
		logger.Info("dropped")
		assert.Empty(t, buf.String())

		SetLevel(zapcore.DebugLevel)
		logger.Debug("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("InvalidLevelFallsBackToInfo", func(t *testing.T) {
		logger, buf := initToBuffer(t, config.LoggerConfig{Level: "chatty", Format: "json"})
		logger.Debug("dropped")
		logger.Info("kept")
		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("RotatingFileSink", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gesture.log")
		logger, _ := initToBuffer(t, config.LoggerConfig{
			Level:   "debug",
			Format:  "console",
			LogFile: path,
			MaxSize: 1,
		})
		logger.Error("This should go to the file.")
		Sync()

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"msg":"This should go to the file."`, "file sink is always JSON")
	})

	t.Run("OnlyOnce", func(t *testing.T) {
		first, buf := initToBuffer(t, config.LoggerConfig{Level: "info", Format: "json", ServiceName: "First"})
		second := Initialize(config.LoggerConfig{Level: "debug", ServiceName: "Second"}, zapcore.AddSync(&bytes.Buffer{}))

		assert.Same(t, first, second)
		second.Info("test")
		assert.Contains(t, buf.String(), "First")
		assert.NotContains(t, buf.String(), "Second")
	})
}

func TestGetLogger(t *testing.T) {
	t.Run("FallbackBeforeInitialization", func(t *testing.T) {
		ResetForTest()
		assert.NotNil(t, GetLogger())
	})

	t.Run("GlobalAfterInitialization", func(t *testing.T) {
		logger, _ := initToBuffer(t, config.LoggerConfig{Level: "info"})
		assert.Same(t, logger, GetLogger())
		assert.Same(t, logger, globalLogger.Load())
	})
}
