package app

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{"-scale", "20", "-interval", "250ms", "-set", "size=10", "-set", "table=wall=1"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Scale != 20 || cfg.Interval != 250*time.Millisecond {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Sim != "dynamic" {
		t.Fatalf("default sim = %q", cfg.Sim)
	}
	got, err := cfg.Set.Map()
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if got["size"] != "10" || got["table"] != "wall=1" {
		t.Fatalf("unexpected overrides: %v", got)
	}
}

func TestKVListRejectsMalformed(t *testing.T) {
	var l KVList
	if err := l.Set("size"); err == nil {
		t.Fatalf("expected error for missing '='")
	}
	l = KVList{"=3"}
	if _, err := l.Map(); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	data := "DYNGRID_SIZE=10\nDYNGRID_SEED=5\nOTHER=1\n"
	if err := os.WriteFile(file, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("DYNGRID_SEED", "9")

	got, err := LoadEnvOverrides(EnvPrefix, file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got["size"] != "10" {
		t.Fatalf("size = %q, want 10", got["size"])
	}
	if got["seed"] != "9" {
		t.Fatalf("process environment should win, seed = %q", got["seed"])
	}
	if _, ok := got["other"]; ok {
		t.Fatalf("unprefixed variables must be ignored: %v", got)
	}

	if _, err := LoadEnvOverrides(EnvPrefix, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored, got %v", err)
	}
}

func TestSimConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	if err := os.WriteFile(file, []byte("DYNGRID_SIZE=10\nDYNGRID_VIEW=5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := NewConfig()
	cfg.EnvFile = file
	cfg.Seed = 77
	cfg.Set = KVList{"size=12"}

	got, err := cfg.SimConfig()
	if err != nil {
		t.Fatalf("sim config: %v", err)
	}
	if got["size"] != "12" || got["view"] != "5" || got["seed"] != "77" {
		t.Fatalf("unexpected merge: %v", got)
	}
}
