package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRealMainReturnsExitCodeOnBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("movers: [not, a, map]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("ANALYZER_LOG_DIR", dir)
	t.Setenv("LOG_TRACING_ENABLED", "false")
	t.Setenv("LOG_BACKEND", "zap")

	if code := realMain(); code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
}
