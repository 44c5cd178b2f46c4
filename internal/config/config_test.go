package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aryavsaigal/rbcb/internal/model"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "rbcb.yaml")
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return name
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.EngineColor() != model.Black || cfg.PromotionChoice() != 'q' {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	name := writeFile(t, `
server:
  addr: ":8080"
engine:
  depth: 2
  seed: 7
  pruning: false
game:
  engine_color: white
  promotion: n
`)
	cfg, err := Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.AllowOrigins != "http://localhost:5173" {
		t.Fatalf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Engine.Depth != 2 || cfg.Seed() != 7 || cfg.Engine.Pruning {
		t.Fatalf("unexpected engine config %+v", cfg.Engine)
	}
	if cfg.EngineColor() != model.White || cfg.PromotionChoice() != 'n' {
		t.Fatalf("unexpected game config %+v", cfg.Game)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RBCB_ADDR", ":9999")
	t.Setenv("RBCB_DEPTH", "4")
	t.Setenv("RBCB_SEED", "12")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9999" || cfg.Engine.Depth != 4 || cfg.Engine.Seed != 12 {
		t.Fatalf("env not applied: %+v", cfg)
	}

	t.Setenv("RBCB_DEPTH", "deep")
	if _, err := Load(""); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"ZeroDepth", func(c *Config) { c.Engine.Depth = 0 }},
		{"BadColor", func(c *Config) { c.Game.EngineColor = "green" }},
		{"BadPromotion", func(c *Config) { c.Game.Promotion = "k" }},
		{"EmptyPromotion", func(c *Config) { c.Game.Promotion = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadBadYAML(t *testing.T) {
	if _, err := Load(writeFile(t, "engine: [")); err == nil {
		t.Fatalf("expected a parse error")
	}
}
