package observability

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestFields(t *testing.T) {
	if f := String("stage", "ingest"); f.Key() != "stage" || f.Value() != "ingest" {
		t.Fatalf("string field: %v=%v", f.Key(), f.Value())
	}
	if f := Int("pages", 3); f.Key() != "pages" || f.Value() != 3 {
		t.Fatalf("int field: %v=%v", f.Key(), f.Value())
	}
	err := errors.New("boom")
	if f := Error("error", err); f.Key() != "error" || f.Value() != err {
		t.Fatalf("error field: %v=%v", f.Key(), f.Value())
	}
}

func TestNopLoggerIsSafe(t *testing.T) {
	var l Logger = NopLogger{}
	l.With(String("k", "v")).Info("ignored")
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	l.With(String("stage", "sort")).Info("sorted", Int("entries", 4))
	out := buf.String()
	if !strings.Contains(out, "msg=sorted") || !strings.Contains(out, "stage=sort") || !strings.Contains(out, "entries=4") {
		t.Fatalf("unexpected log line: %s", out)
	}
}
