package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestJSONFormatInProduction(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer:      &buf,
		Environment: "production",
		Level:       slog.LevelInfo,
	})

	log.Info("server started", "port", "8080")

	out := buf.String()
	if !strings.Contains(out, `"msg":"server started"`) {
		t.Errorf("expected JSON output, got: %s", out)
	}
	if !strings.Contains(out, `"port":"8080"`) {
		t.Errorf("expected port attribute, got: %s", out)
	}
}

func TestPrettyFormatInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer:      &buf,
		Environment: "development",
		Level:       slog.LevelInfo,
	})

	log.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "key=value") {
		t.Errorf("unexpected pretty output: %s", out)
	}
	if strings.Contains(out, `"msg"`) {
		t.Errorf("development output should not be JSON: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Writer: &buf,
		Format: "json",
		Level:  slog.LevelWarn,
	})

	log.Info("dropped")
	log.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info record should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestPrettyGroupsQualifyKeys(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "pretty", Level: slog.LevelInfo})

	log.WithGroup("db").Info("query done", "rows", 3)

	if !strings.Contains(buf.String(), "db.rows=3") {
		t.Errorf("expected group-qualified key: %s", buf.String())
	}
}

func TestPrettyQuotesAmbiguousValues(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "pretty", Level: slog.LevelInfo})

	log.Info("request", "agent", "Mozilla/5.0 (X11)", "path", "/api/anime")

	out := buf.String()
	if !strings.Contains(out, `agent="Mozilla/5.0 (X11)"`) {
		t.Errorf("value with spaces should be quoted: %s", out)
	}
	if !strings.Contains(out, "path=/api/anime") {
		t.Errorf("plain value should stay unquoted: %s", out)
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "json", Level: slog.LevelInfo})

	log.WithError(errTest{}).Error("operation failed")

	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("expected error attribute: %s", buf.String())
	}
}

type errTest struct{}

func (errTest) Error() string { return "boom" }
