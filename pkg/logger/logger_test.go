package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, "repo", zerolog.InfoLevel)

	lg.WithField("user_id", "u1").WithError(errors.New("boom")).Info("user registered")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log entry not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "repo" || entry["user_id"] != "u1" {
		t.Fatalf("fields missing: %v", entry)
	}
	if entry["error"] != "boom" || entry["message"] != "user registered" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, "repo", zerolog.WarnLevel)

	lg.Debug("dropped")
	lg.Info("dropped too")
	if buf.Len() != 0 {
		t.Fatalf("sub-level entries written: %q", buf.String())
	}

	lg.Warn("kept")
	if buf.Len() == 0 {
		t.Fatal("warn entry dropped")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"info":    zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
