package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/voxelsplace/sierpinski/sierpinski"
)

type envTestConfig struct {
	Port int `env:"SIERPINSKI_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("SIERPINSKI_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Level != sierpinski.DefaultLevel || cfg.MaxLevel != 5 || cfg.Compression != "zstd" || cfg.Workers != 0 || cfg.Weld {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SIERPINSKI_LEVEL", "4")
	t.Setenv("SIERPINSKI_COMPRESSION", "zlib")
	t.Setenv("SIERPINSKI_WORKERS", "8")
	t.Setenv("SIERPINSKI_WELD", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Level != 4 || cfg.Compression != "zlib" || cfg.Workers != 8 || !cfg.Weld {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SIERPINSKI_COMPRESSION", "brotli")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown compression")
	}
}

func TestValidateMaxLevel(t *testing.T) {
	cfg := Config{MaxLevel: sierpinski.MaxLevel + 1, Compression: "none"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for max level above the generator limit")
	}
}

func TestCheckLevel(t *testing.T) {
	cfg := Config{MaxLevel: 5}
	for _, level := range []int{0, 5} {
		if err := cfg.CheckLevel(level); err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
	}
	for _, level := range []int{-1, 6} {
		if err := cfg.CheckLevel(level); !errors.Is(err, sierpinski.ErrInvalidArgument) {
			t.Fatalf("level %d: expected ErrInvalidArgument, got %v", level, err)
		}
	}
}
