package application

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLog(t *testing.T, logger *Logger, path string) string {
	t.Helper()
	logger.Sync()
	buf, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(buf)
}

func TestLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imprint.log")
	logger, err := NewLogger(&LoggerConfig{Environment: "development", Path: path})
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("debug message", "asset", "a1")
	logger.Info("info message")

	out := readLog(t, logger, path)
	if !strings.Contains(out, "debug message") || !strings.Contains(out, "a1") {
		t.Fatalf("Unexpected log output %q", out)
	}
}

func TestLoggerProductionLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imprint.log")
	logger, err := NewLogger(&LoggerConfig{Environment: "production", Path: path})
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hidden")
	logger.Warn("shown")

	out := readLog(t, logger, path)
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("Unexpected log output %q", out)
	}
}

func TestLoggerJSONWith(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imprint.log")
	logger, err := NewLogger(&LoggerConfig{
		Environment: "production",
		Encoding:    "json",
		Path:        path,
	})
	if err != nil {
		t.Fatal(err)
	}
	logger.With("asset", "a1").Info("certified", "values", 3)

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logger, path))), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["msg"] != "certified" || entry["asset"] != "a1" || entry["values"] != 3.0 {
		t.Fatal("Unexpected log entry", entry)
	}
}

func TestLoggerBadConfig(t *testing.T) {
	for _, conf := range []*LoggerConfig{
		{Environment: "staging"},
		{Environment: "production", Encoding: "xml"},
	} {
		if _, err := NewLogger(conf); err == nil {
			t.Errorf("Expect an error for %+v", conf)
		}
	}
}
