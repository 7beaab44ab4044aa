package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", LevelDebug},
		{"Info", LevelInfo},
		{"WARN", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDefaultLoggerWritesToFile(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	l, err := NewDefaultLogger(&Config{
		LogFilePath: logPath,
		MaxFileSize: 1024 * 1024,
		MaxBackups:  2,
		Level:       LevelDebug,
	})
	if err != nil {
		t.Fatalf("NewDefaultLogger() error = %v", err)
	}

	l.Debug("debug message", String("key", "value"))
	l.Info("info message", Int("count", 3))
	l.Error("error message", errors.New("boom"))
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"[DEBUG] debug message key=value",
		"[INFO] info message count=3",
		`[ERROR] error message error="boom"`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("log file missing %q, got:\n%s", want, content)
		}
	}
}

func TestDefaultLoggerLevelFiltering(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	l, err := NewDefaultLogger(&Config{
		LogFilePath: logPath,
		MaxFileSize: 1024 * 1024,
		Level:       LevelWarn,
	})
	if err != nil {
		t.Fatalf("NewDefaultLogger() error = %v", err)
	}

	l.Debug("should be filtered")
	l.Info("should also be filtered")
	l.Warn("should appear")
	l.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)

	if strings.Contains(content, "filtered") {
		t.Errorf("filtered messages appeared in log: %s", content)
	}
	if !strings.Contains(content, "should appear") {
		t.Errorf("warn message missing from log: %s", content)
	}
}

func TestGlobalLoggerNoopBeforeInit(t *testing.T) {
	// Must not panic when the global logger is unset.
	SetGlobalForTest(nil)
	Debug("no-op")
	Info("no-op")
	Warn("no-op")
	Error("no-op", errors.New("ignored"))
}

// SetGlobalForTest resets the global logger. Test helper only.
func SetGlobalForTest(l Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}
