package config

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	valid := &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/tmp/animex"},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 60,
			Burst:             10,
		},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config failed validation: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty environment", func(c *Config) { c.App.Environment = "" }},
		{"unknown environment", func(c *Config) { c.App.Environment = "prod" }},
		{"bad log level", func(c *Config) { c.Logger.Level = "verbose" }},
		{"empty data path", func(c *Config) { c.Data.BasePath = "" }},
		{"zero rate limit", func(c *Config) { c.RateLimit.RequestsPerMinute = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetConfigValuePrecedence(t *testing.T) {
	t.Setenv("ANIMEX_TEST_KEY", "from-env")

	if got := getConfigValue("from-flag", "ANIMEX_TEST_KEY", "default"); got != "from-flag" {
		t.Errorf("flag should win: got %q", got)
	}
	if got := getConfigValue("", "ANIMEX_TEST_KEY", "default"); got != "from-env" {
		t.Errorf("env should win over default: got %q", got)
	}
	if got := getConfigValue("", "ANIMEX_TEST_MISSING", "default"); got != "default" {
		t.Errorf("default should apply: got %q", got)
	}
}

func TestGetBoolConfigValue(t *testing.T) {
	t.Setenv("ANIMEX_TEST_BOOL", "yes")
	if !getBoolConfigValue("", "ANIMEX_TEST_BOOL", false) {
		t.Error("yes should parse as true")
	}
	if getBoolConfigValue("false", "ANIMEX_TEST_BOOL", true) {
		t.Error("flag false should override env")
	}
	if !getBoolConfigValue("", "ANIMEX_TEST_BOOL_MISSING", true) {
		t.Error("missing value should use default")
	}
}

func TestSplitOrigins(t *testing.T) {
	origins := splitOrigins("https://animex.lk, https://www.animex.lk ,")
	if len(origins) != 2 {
		t.Fatalf("got %d origins, want 2", len(origins))
	}
	if origins[0] != "https://animex.lk" || origins[1] != "https://www.animex.lk" {
		t.Errorf("unexpected origins: %v", origins)
	}
}

func TestExpandDataPathDerivesDatabase(t *testing.T) {
	cfg := &Config{Data: DataConfig{BasePath: "/tmp/animex-data"}}
	if err := cfg.expandDataPath(); err != nil {
		t.Fatalf("expandDataPath: %v", err)
	}
	if cfg.Data.DatabasePath != "/tmp/animex-data/animex.db" {
		t.Errorf("DatabasePath: got %q", cfg.Data.DatabasePath)
	}
}

func TestDurationDefaults(t *testing.T) {
	// Sanity-check the documented defaults parse.
	for _, d := range []string{"15m", "720h", "15s", "60s"} {
		if _, err := time.ParseDuration(d); err != nil {
			t.Errorf("default duration %q does not parse: %v", d, err)
		}
	}
}
