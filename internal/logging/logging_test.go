package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewJSONLoggerRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	lg, _ := New(Config{Level: "info", Output: buf})

	lg.Debug("hidden")
	lg.Info("visible", zap.String("path", "/api/users"))
	_ = lg.Sync()

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked at info level: %s", out)
	}
	var line map[string]any
	if err := json.Unmarshal([]byte(out), &line); err != nil {
		t.Fatalf("expected one json line, got %q: %v", out, err)
	}
	if line["msg"] != "visible" || line["path"] != "/api/users" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestDefaultLevelIsWarn(t *testing.T) {
	buf := &bytes.Buffer{}
	lg, _ := New(Config{Output: buf})
	lg.Info("quiet")
	lg.Warn("loud")
	_ = lg.Sync()

	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Fatalf("unexpected output for default level: %s", buf.String())
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatalf("expected non-nil logger")
	}
	lg := zap.NewExample()
	if OrNop(lg) != lg {
		t.Fatalf("expected logger passed through")
	}
}

func TestCloseWithoutFileIsNoop(t *testing.T) {
	_, closeFn := New(Config{Output: &bytes.Buffer{}})
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestCloseReleasesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitcoach.log")
	lg, closeFn := New(Config{Level: "info", Output: &bytes.Buffer{}, File: path})
	lg.Info("before close")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// A second logger on the same path reopens the segment and appends.
	lg2, closeFn2 := New(Config{Level: "info", Output: &bytes.Buffer{}, File: path})
	lg2.Info("after reopen")
	if err := closeFn2(); err != nil {
		t.Fatalf("close second logger: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), "before close") || !strings.Contains(string(b), "after reopen") {
		t.Fatalf("expected both lines in file, got %q", b)
	}
}

func TestFileSinkWritesThroughLink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitcoach.log")
	buf := &bytes.Buffer{}
	lg, closeFn := New(Config{Level: "info", Output: buf, File: path})
	lg.Info("to both", zap.Int("status", 503))
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), "to both") || !strings.Contains(buf.String(), "to both") {
		t.Fatalf("expected line in file and output, file=%q out=%q", b, buf.String())
	}
}
