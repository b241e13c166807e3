package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitSplitsByLevel(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "logs", "test.log")
	var console bytes.Buffer
	cleanup, err := Init(Options{File: path, Console: &console})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	slog.Debug("zoom", "level", 3)
	slog.Warn("damaged", "path", "a.json")
	cleanup()

	if strings.Contains(console.String(), "zoom") {
		t.Error("debug record should not reach the console")
	}
	if !strings.Contains(console.String(), "damaged") {
		t.Error("warning should reach the console")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 file records, got %d: %s", len(lines), data)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("file record is not JSON: %v", err)
	}
	if rec["msg"] != "zoom" || rec["level"] != "DEBUG" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestInitWithoutFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var console bytes.Buffer
	cleanup, err := Init(Options{File: "-", Console: &console, Verbose: true})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer cleanup()
	slog.With("doc", "sky.png").Info("opened")
	if !strings.Contains(console.String(), "doc=sky.png") {
		t.Errorf("expected attrs on console, got %q", console.String())
	}
}
