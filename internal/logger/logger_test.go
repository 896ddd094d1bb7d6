package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveLogFilePathDefaultDir(t *testing.T) {
	tempDir := t.TempDir()
	originalWorkDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("get workdir failed: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	defer func() {
		_ = os.Chdir(originalWorkDir)
	}()

	logFilePath, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve log file path failed: %v", err)
	}

	if filepath.Base(logFilePath) != defaultLogFilename {
		t.Fatalf("unexpected log filename: %s", logFilePath)
	}
	if filepath.Base(filepath.Dir(logFilePath)) != defaultLogDirName {
		t.Fatalf("unexpected log dir: %s", logFilePath)
	}
	if _, err := os.Stat(filepath.Dir(logFilePath)); err != nil {
		t.Fatalf("log dir should exist: %v", err)
	}
}

func TestNewReleaseWritesToConfiguredFile(t *testing.T) {
	tempDir := t.TempDir()

	instance := New("release", Options{
		Dir:      tempDir,
		Filename: "service.log",
	})
	if instance == nil {
		t.Fatal("expected logger instance")
	}

	instance.Info("release log entry")
	_ = instance.Sync()

	content, err := os.ReadFile(filepath.Join(tempDir, "service.log"))
	if err != nil {
		t.Fatalf("read log file failed: %v", err)
	}
	if len(content) == 0 {
		t.Fatal("expected log content written to file")
	}
}

func TestNormalizePositiveInt(t *testing.T) {
	if got := normalizePositiveInt(0, 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
	if got := normalizePositiveInt(-1, 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
	if got := normalizePositiveInt(3, 7); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}
