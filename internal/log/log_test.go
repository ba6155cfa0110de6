package log

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelWarn)
	t.Cleanup(func() {
		SetLevel(LevelInfo)
		SetOutput(os.Stderr)
	})

	Debug("debug line")
	Info("info line")
	Warn("warn line", "catalog", "a.yaml")
	Error("error line", errors.New("boom"), "id", "t1", "dangling")

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Fatalf("lines below WARN should be dropped:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] warn line catalog=a.yaml") {
		t.Fatalf("missing warn line:\n%s", out)
	}
	if !strings.Contains(out, "[ERROR] error line err=boom id=t1\n") {
		t.Fatalf("missing error line or dangling key not dropped:\n%s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
