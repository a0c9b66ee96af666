package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug suppressed, got %q", buf.String())
	}

	New(&buf, true).Debug("shown", "frames", 3)
	out := buf.String()
	if !strings.Contains(out, "shown") || !strings.Contains(out, "frames=3") {
		t.Errorf("expected debug line, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no colour codes outside stderr, got %q", out)
	}
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	logger, closer, err := Setup(Options{File: path})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	logger.Info("mounted", "theme", "cipher")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "theme=cipher") {
		t.Errorf("expected log line in file, got %q", data)
	}
}

func TestSetupBadPath(t *testing.T) {
	if _, _, err := Setup(Options{File: filepath.Join(t.TempDir(), "missing", "run.log")}); err == nil {
		t.Error("expected error for unwritable path")
	}
}
