package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{name: "debug level", level: "debug"},
		{name: "info level", level: "info"},
		{name: "warn level", level: "warn"},
		{name: "error level", level: "error"},
		{name: "invalid level defaults to info", level: "invalid"},
		{name: "empty level defaults to info", level: ""},
		{name: "uppercase level", level: "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level, &bytes.Buffer{})
			if logger == nil {
				t.Fatal("Expected logger to be non-nil")
				return
			}
			if logger.log == nil {
				t.Fatal("Expected internal log to be non-nil")
				return
			}
		})
	}
}

func TestNew_NilOutput(t *testing.T) {
	logger := New("info", nil)
	if logger == nil {
		t.Fatal("Expected logger to be non-nil")
		return
	}
	if logger.log == nil {
		t.Fatal("Expected internal log to be non-nil")
		return
	}
}

func TestLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("debug", buf)

	logger.Debug().Msg("debug message")
	logger.Info().Msg("info message")
	logger.Warn().Msg("warn message")
	logger.Error().Msg("error message")

	output := buf.String()
	for _, msg := range []string{"debug message", "info message", "warn message", "error message"} {
		if !strings.Contains(output, msg) {
			t.Errorf("Expected output to contain '%s', got: %s", msg, output)
		}
	}
}

func TestEntry_Str(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("info", buf)

	logger.Info().Str("command", "greet").Msg("message")

	output := buf.String()
	if !strings.Contains(output, "command") || !strings.Contains(output, "greet") {
		t.Errorf("Expected output to contain command=greet, got: %s", output)
	}
}

func TestEntry_Strs(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("info", buf)

	logger.Info().Strs("args", []string{"-i", "foo"}).Msg("message")

	output := buf.String()
	if !strings.Contains(output, "args") || !strings.Contains(output, "-i foo") {
		t.Errorf("Expected output to contain joined args, got: %s", output)
	}
}

func TestEntry_Int(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("info", buf)

	logger.Info().Int("stages", 3).Msg("message")

	output := buf.String()
	if !strings.Contains(output, "stages") || !strings.Contains(output, "3") {
		t.Errorf("Expected output to contain stages=3, got: %s", output)
	}
}

func TestEntry_Bool(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("info", buf)

	logger.Info().Bool("external", true).Msg("message")

	output := buf.String()
	if !strings.Contains(output, "external") || !strings.Contains(output, "true") {
		t.Errorf("Expected output to contain external=true, got: %s", output)
	}
}

func TestEntry_Err(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("error", buf)

	testErr := errors.New("test error")
	logger.Error().Err(testErr).Msg("error occurred")

	output := buf.String()
	if !strings.Contains(output, "test error") {
		t.Errorf("Expected output to contain 'test error', got: %s", output)
	}
}

func TestEntry_Err_Nil(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("error", buf)

	logger.Error().Err(nil).Msg("no error")

	output := buf.String()
	if !strings.Contains(output, "no error") {
		t.Errorf("Expected output to contain 'no error', got: %s", output)
	}
}

func TestEntry_Dur(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("info", buf)

	duration := 1500 * time.Microsecond
	logger.Info().Dur("duration", duration).Msg("test duration")

	output := buf.String()
	if !strings.Contains(output, "duration") {
		t.Errorf("Expected output to contain 'duration' field")
	}
	if !strings.Contains(output, "1.5") {
		t.Errorf("Expected output to contain '1.5' milliseconds")
	}
}

func TestEntry_ChainedFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("info", buf)

	testErr := errors.New("chain error")
	logger.Info().
		Str("string", "value").
		Int("number", 123).
		Bool("flag", false).
		Err(testErr).
		Msg("chained message")

	output := buf.String()
	for _, field := range []string{"chained message", "string", "number", "flag"} {
		if !strings.Contains(output, field) {
			t.Errorf("Expected output to contain '%s', got: %s", field, output)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name        string
		logLevel    string
		messageFunc func(*Logger)
		shouldLog   bool
	}{
		{
			name:     "debug message with debug level",
			logLevel: "debug",
			messageFunc: func(l *Logger) {
				l.Debug().Msg("debug")
			},
			shouldLog: true,
		},
		{
			name:     "debug message with info level",
			logLevel: "info",
			messageFunc: func(l *Logger) {
				l.Debug().Msg("debug")
			},
			shouldLog: false,
		},
		{
			name:     "info message with warn level",
			logLevel: "warn",
			messageFunc: func(l *Logger) {
				l.Info().Msg("info")
			},
			shouldLog: false,
		},
		{
			name:     "warn message with warn level",
			logLevel: "warn",
			messageFunc: func(l *Logger) {
				l.Warn().Msg("warn")
			},
			shouldLog: true,
		},
		{
			name:     "error message with error level",
			logLevel: "error",
			messageFunc: func(l *Logger) {
				l.Error().Msg("error")
			},
			shouldLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(tt.logLevel, buf)

			tt.messageFunc(logger)

			output := buf.String()
			hasOutput := len(output) > 0

			if tt.shouldLog && !hasOutput {
				t.Errorf("Expected log output but got none")
			}
			if !tt.shouldLog && hasOutput {
				t.Errorf("Expected no log output but got: %s", output)
			}
		})
	}
}

func TestEntry_Msg_DefaultLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New("info", buf)

	// drop the level marker to exercise the default branch
	entry := logger.Info()
	delete(entry.entry.Data, "level")
	entry.Msg("default level message")

	output := buf.String()
	if !strings.Contains(output, "default level message") {
		t.Errorf("Expected output to contain 'default level message', got: %s", output)
	}
}
