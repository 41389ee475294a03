package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		if l := New(level); l == nil || l.Logger == nil {
			t.Fatalf("New(%q) returned nil logger", level)
		}
	}
}

func TestNewWithWriterEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("info", &buf)
	l.Info("utterance processed", "session_id", "abc", "items", 2)

	line := strings.TrimSpace(buf.String())
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", line, err)
	}
	if record["msg"] != "utterance processed" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
	if record["session_id"] != "abc" {
		t.Fatalf("unexpected session_id: %v", record["session_id"])
	}
}

func TestWithAttachesAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("info", &buf).With("component", "pipeline")
	l.Info("hello")
	if !strings.Contains(buf.String(), `"component":"pipeline"`) {
		t.Fatalf("expected component attr in output: %s", buf.String())
	}
}

func TestWithNilReceiver(t *testing.T) {
	var l *Logger
	if got := l.With("k", "v"); got == nil {
		t.Fatal("expected non-nil logger from nil receiver")
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("info", &buf)
	l.Debug("invisible")
	if buf.Len() != 0 {
		t.Fatalf("expected no output for debug at info level, got %s", buf.String())
	}
}
