package logger_test

import (
	"bytes"
	"errors"
	"log"
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/enumerate/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`logger/logger_test\.go:\d+`)
)

func newTestLogger(b *bytes.Buffer, level logger.LogLevel) *logger.ColorLogger {
	color.NoColor = true
	return logger.New(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(level))
}

func TestNewLogLevel(t *testing.T) {
	for _, tc := range []struct {
		val      string
		expected logger.LogLevel
	}{
		{"DEBUG", logger.LogLevelDebug},
		{"info", logger.LogLevelInfo},
		{"Warn", logger.LogLevelWarn},
		{"ERROR", logger.LogLevelError},
		{"off", logger.LogLevelOff},
		{"", logger.LogLevelUnk},
		{"verbose", logger.LogLevelUnk},
	} {
		t.Run(tc.val, func(t *testing.T) {
			require.Equal(t, tc.expected, logger.NewLogLevel(tc.val))
		})
	}
}

func TestColorLoggerLevels(t *testing.T) {
	for _, tc := range []struct {
		name     string
		level    logger.LogLevel
		log      func(l logger.Logger)
		expected string
	}{
		{"debug-at-debug", logger.LogLevelDebug, func(l logger.Logger) { l.Debug("msg", nil) }, "[DEBUG]"},
		{"debug-at-info", logger.LogLevelInfo, func(l logger.Logger) { l.Debug("msg", nil) }, ""},
		{"info-at-info", logger.LogLevelInfo, func(l logger.Logger) { l.Info("msg", nil) }, "[INFO]"},
		{"warn-at-error", logger.LogLevelError, func(l logger.Logger) { l.Warn("msg", nil) }, ""},
		{"error-at-warn", logger.LogLevelWarn, func(l logger.Logger) { l.Error("msg", nil) }, "[ERROR]"},
		{"error-at-off", logger.LogLevelOff, func(l logger.Logger) { l.Error("msg", nil) }, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			l := newTestLogger(b, tc.level)

			// Act
			tc.log(l)

			// Assert
			if tc.expected == "" {
				require.Zero(t, b.Len())
				return
			}

			require.Equal(t, tc.expected, logLevelRegexp.FindString(b.String()))
			require.Regexp(t, fpRegexp, b.String())
			require.Contains(t, b.String(), "'msg'")
		})
	}
}

func TestColorLoggerContext(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := newTestLogger(b, logger.LogLevelDebug)

	// Act
	l.Info("registered", &logger.LogContext{Data: map[string]any{"name": "status"}})

	// Assert
	require.Contains(t, b.String(), `log_context: {"data":{"name":"status"}}`)

	// Arrange
	b.Reset()

	// Act
	l.Warn("overridden", &logger.LogContext{Caller: "somewhere/else.go:1"})

	// Assert
	require.Contains(t, b.String(), "[WARN] somewhere/else.go:1 'overridden'")
}

func helper(l logger.SkipLogger) { l.Info("from helper", nil) }

func TestColorLoggerAddSkip(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := newTestLogger(b, logger.LogLevelDebug)

	// Act
	helper(l.AddSkip(1))

	// Assert
	require.Equal(t, 0, l.Skip())
	require.Regexp(t, fpRegexp, b.String())
}

func TestDiscard(t *testing.T) {
	l := logger.Discard()
	require.Equal(t, logger.LogLevelOff, l.LogLevel())
	require.NotPanics(t, func() { l.Error("nothing", &logger.LogContext{Error: errors.New("oops")}) })
}

func TestLogContextMarshalText(t *testing.T) {
	// Arrange
	lc := logger.LogContext{}

	// Act
	b, err := lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, []byte("{}"), b)

	// Arrange
	lc = logger.LogContext{Data: map[string]any{"test": "data"}, Error: errors.New("test")}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"data":{"test":"data"},"error":"test"}`, string(b))

	// Arrange
	lc = logger.LogContext{Data: map[string]any{"bad": func() {}}}

	// Act
	s := lc.String()

	// Assert
	require.Contains(t, s, `"error"`)
}

func TestCurrentCaller(t *testing.T) {
	var caller string
	func() { caller = logger.CurrentCaller() }()
	require.Regexp(t, fpRegexp, caller)
}
