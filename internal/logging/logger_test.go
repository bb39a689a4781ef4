package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Fatalf("expected debug/info to be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "[WARN] warn message") {
		t.Fatalf("expected warn message: %q", out)
	}
	if !strings.Contains(out, "[ERROR] error message") {
		t.Fatalf("expected error message: %q", out)
	}
}

func TestDebugLevelPassesEverything(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("debug", &buf)

	logger.Debug("d")
	logger.Info("i")

	out := buf.String()
	if !strings.Contains(out, "[DEBUG] d") || !strings.Contains(out, "[INFO] i") {
		t.Fatalf("expected both messages at debug level: %q", out)
	}
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("chatty", &buf)

	logger.Debug("d")
	logger.Info("i")

	out := buf.String()
	if strings.Contains(out, "[DEBUG]") {
		t.Fatalf("expected debug filtered at default level: %q", out)
	}
	if !strings.Contains(out, "[INFO] i") {
		t.Fatalf("expected info message: %q", out)
	}
}

func TestFormatting(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info("run %s: %d rows", "abc", 42)
	if !strings.Contains(buf.String(), "run abc: 42 rows") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
