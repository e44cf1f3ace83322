package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWeekKey(t *testing.T) {
	key := weekKey(time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC))
	if key != "2026-W02" {
		t.Errorf("Expected 2026-W02, got %s", key)
	}
}

func TestRotatingLogger_WritesWeeklyFile(t *testing.T) {
	dir := t.TempDir()
	rl := NewRotatingLogger(dir, 4)
	defer func() {
		if rl.currentFile != nil {
			rl.currentFile.Close()
		}
	}()

	if _, err := rl.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := filepath.Join(dir, fmt.Sprintf("%s%s.log", logFilePrefix, weekKey(time.Now())))
	content, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("Expected weekly log file to exist: %v", err)
	}
	if !strings.Contains(string(content), "hello") {
		t.Errorf("Unexpected file content %q", content)
	}
}

func TestRotatingLogger_SizeLimitStartsNumberedFile(t *testing.T) {
	dir := t.TempDir()
	rl := NewRotatingLoggerWithSizeLimit(dir, 4, 10)
	defer func() {
		if rl.currentFile != nil {
			rl.currentFile.Close()
		}
	}()

	if _, err := rl.Write([]byte("0123456789")); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if _, err := rl.Write([]byte("overflow")); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	numbered := filepath.Join(dir, fmt.Sprintf("%s%s_01.log", logFilePrefix, weekKey(time.Now())))
	if _, err := os.Stat(numbered); err != nil {
		t.Errorf("Expected numbered continuation file, got: %v", err)
	}
}

func TestSetupLogger_ConsoleOnlyWithoutDir(t *testing.T) {
	logger := SetupLogger("")
	if logger == nil {
		t.Fatal("Expected a console logger")
	}
	logger.Info("console only message")
}

func TestSetupLogger_CreatesLogDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger := SetupLogger(dir)
	logger.Info("test message", "key", "value")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Expected log directory to be created: %v", err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), logFilePrefix) {
		t.Errorf("Expected one prefixed log file, got %v", entries)
	}
}

func TestInitLogger_SetsGlobalService(t *testing.T) {
	InitLogger("")

	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		t.Fatal("Expected the global logging service to be initialized")
	}

	// Package helpers must not panic regardless of initialization state.
	Info("info message", "key", "value")
	Warn("warn message")
	Error("error message")
	Debug("debug message")
}

func TestPackageHelpers_BeforeInit(t *testing.T) {
	saved := DefaultLoggingService
	DefaultLoggingService = nil
	defer func() { DefaultLoggingService = saved }()

	// Falls back to stderr without panicking.
	Info("fallback message")
}
