package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNopBeforeInit(t *testing.T) {
	// the package default must not panic or write anywhere
	Info("ignored", zap.Int("n", 1))
	Named("scene").Debug("ignored")
	Sync()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"loud", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithOptions(Options{Level: "warn", Extra: &buf}); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() { Log = zap.NewNop(); Sugar = Log.Sugar() }()

	Info("hidden")
	Warn("shown", zap.String("component", "grass"))
	Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line passed a warn filter: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "grass") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestNamed(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithOptions(Options{Level: "debug", Extra: &buf}); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() { Log = zap.NewNop(); Sugar = Log.Sugar() }()

	Named("plane").Debug("regenerated")
	Sync()

	if out := buf.String(); !strings.Contains(out, "plane") || !strings.Contains(out, "regenerated") {
		t.Errorf("named output: %q", out)
	}
}

func TestFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "meadow.log")

	cfg := DefaultFileConfig(logFile)
	cfg.Compress = false
	if err := InitWithOptions(Options{Level: "debug", File: cfg}); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() { Log = zap.NewNop(); Sugar = Log.Sugar() }()

	Debug("blades scattered", zap.Int("count", 10000))
	Sugar.Infof("plane %dx%d", 20, 20)
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines: got %d, want 2\n%s", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("file output is not JSON: %v", err)
	}
	if entry["msg"] != "blades scattered" {
		t.Errorf("msg: got %v", entry["msg"])
	}
	if entry["count"] != float64(10000) {
		t.Errorf("count: got %v", entry["count"])
	}
	if entry["level"] != "debug" {
		t.Errorf("level: got %v", entry["level"])
	}
}
