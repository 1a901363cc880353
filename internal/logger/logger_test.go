package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestInitWithConfigJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithConfig(LogConfig{Level: "INFO", Format: "json", Output: &buf}); err != nil {
		t.Fatalf("init: %v", err)
	}

	Info(context.Background(), "hello", "ticker", "TCS.NS")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "hello" {
		t.Errorf("expected msg hello, got %v", rec["msg"])
	}
	if rec["ticker"] != "TCS.NS" {
		t.Errorf("expected ticker field, got %v", rec["ticker"])
	}
}

func TestDebugSuppressedWithoutDetailedLogging(t *testing.T) {
	var buf bytes.Buffer
	_ = InitWithConfig(LogConfig{Level: "DEBUG", Format: "text", Output: &buf})

	Debug(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no debug output, got %q", buf.String())
	}
}

func TestDetailedLoggingAddsSource(t *testing.T) {
	var buf bytes.Buffer
	_ = InitWithConfig(LogConfig{Level: "INFO", Format: "json", DetailedLogging: true, Output: &buf})
	defer InitWithConfig(LogConfig{Level: "INFO", Format: "json", Output: &bytes.Buffer{}})

	Debug(context.Background(), "visible")
	out := buf.String()
	if !strings.Contains(out, "visible") {
		t.Fatalf("expected debug line, got %q", out)
	}
	if !strings.Contains(out, "logger_test.go") {
		t.Errorf("expected caller file in source, got %q", out)
	}
}

func TestZapBackend(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithConfig(LogConfig{Level: "WARN", Format: "json", Backend: "zap", Output: &buf}); err != nil {
		t.Fatalf("init: %v", err)
	}

	Info(context.Background(), "below level")
	ErrorWithErr(context.Background(), "fetch failed", errors.New("boom"), "ticker", "INFY.NS")
	_ = Sync()

	out := buf.String()
	if strings.Contains(out, "below level") {
		t.Errorf("info should be filtered at WARN, got %q", out)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &rec); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", out, err)
	}
	if rec["msg"] != "fetch failed" {
		t.Errorf("expected message, got %v", rec["msg"])
	}
	if rec["error"] != "boom" {
		t.Errorf("expected error field, got %v", rec["error"])
	}
	if rec["ticker"] != "INFY.NS" {
		t.Errorf("expected ticker field, got %v", rec["ticker"])
	}
}

func TestSpikeLogsWarnType(t *testing.T) {
	var buf bytes.Buffer
	_ = InitWithConfig(LogConfig{Level: "INFO", Format: "json", Output: &buf})

	Spike(context.Background(), "SBIN.NS", 6.5, 5)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["type"] != "SPIKE" || rec["level"] != "WARN" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]string{"debug": "DEBUG", "WARN": "WARN", "bogus": "INFO", "ERROR": "ERROR"}
	for in, want := range cases {
		if got := parseLogLevel(in).String(); got != want {
			t.Errorf("parseLogLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
