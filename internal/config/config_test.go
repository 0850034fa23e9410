package config

import (
	"os"
	"strings"
	"testing"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "BASC_FORMAT")
	unsetEnv(t, "BASC_ARCHIVE")
	unsetEnv(t, "BASC_VERBOSE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Format != "text" {
		t.Fatalf("expected default format text, got %q", cfg.Format)
	}
	if cfg.Archive != "" || cfg.Verbose {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BASC_FORMAT", "json")
	t.Setenv("BASC_ARCHIVE", "/tmp/basc.db")
	t.Setenv("BASC_VERBOSE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{Format: "json", Archive: "/tmp/basc.db", Verbose: true}
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	t.Setenv("BASC_FORMAT", "xml")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "BASC_FORMAT") {
		t.Fatalf("expected BASC_FORMAT error, got %v", err)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("BASC_VERBOSE", "not-a-bool")

	var cfg Config
	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
