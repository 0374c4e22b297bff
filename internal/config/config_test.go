package config

import (
	"flag"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := Parse(fs, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := Default()
	if cfg.Addr != want.Addr || cfg.DefaultGridSize != want.DefaultGridSize ||
		cfg.MaxGridSize != want.MaxGridSize || cfg.ShutdownTimeout != want.ShutdownTimeout {
		t.Fatalf("cfg = %+v, want %+v", cfg, want)
	}
	if cfg.LogDev {
		t.Fatal("expected production logging by default")
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("ISOCITY_ADDR", "127.0.0.1:9000")
	t.Setenv("ISOCITY_MAX_GRID_SIZE", "128")
	t.Setenv("ISOCITY_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("ISOCITY_SHUTDOWN_TIMEOUT", "2s")

	cfg, err := Parse(flag.NewFlagSet("server", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.MaxGridSize != 128 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Fatalf("shutdown timeout = %v", cfg.ShutdownTimeout)
	}
}

func TestParseFlagsOverrideEnv(t *testing.T) {
	t.Setenv("ISOCITY_ADDR", ":7000")
	cfg, err := Parse(flag.NewFlagSet("server", flag.ContinueOnError), []string{"-addr", ":7100", "-grid", "64", "-dev"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Addr != ":7100" || cfg.DefaultGridSize != 64 || !cfg.LogDev {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	t.Setenv("ISOCITY_MIN_GRID_SIZE", "100")
	t.Setenv("ISOCITY_MAX_GRID_SIZE", "10")
	if _, err := Parse(flag.NewFlagSet("server", flag.ContinueOnError), nil); err == nil {
		t.Fatal("expected error for min > max")
	}
}

func TestParseRejectsBadEnv(t *testing.T) {
	t.Setenv("ISOCITY_MESSAGE_BURST", "lots")
	if _, err := Parse(flag.NewFlagSet("server", flag.ContinueOnError), nil); err == nil {
		t.Fatal("expected error for non-numeric burst")
	}
}

func TestValidate(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.Addr = "" },
		func(c *Config) { c.MinGridSize = 0 },
		func(c *Config) { c.DefaultGridSize = 1000 },
		func(c *Config) { c.MessageRate = 0 },
	}
	for i, mutate := range cases {
		c := Default()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestOriginAllowed(t *testing.T) {
	c := Default()
	if !c.OriginAllowed("http://anything") {
		t.Fatal("empty allow-list should accept any origin")
	}
	c.AllowedOrigins = []string{"http://game.test"}
	if !c.OriginAllowed("http://game.test") || c.OriginAllowed("http://evil.test") {
		t.Fatal("allow-list not enforced")
	}
}
