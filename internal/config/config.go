// Package config loads server and engine settings from YAML, with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aryavsaigal/rbcb/internal/engine"
	"github.com/aryavsaigal/rbcb/internal/model"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Server Server `yaml:"server"`
	Engine Engine `yaml:"engine"`
	Game   Game   `yaml:"game"`
}

type Server struct {
	Addr         string `yaml:"addr"`
	AllowOrigins string `yaml:"allow_origins"`
}

type Engine struct {
	Depth   int    `yaml:"depth"`
	Seed    uint64 `yaml:"seed"`
	Pruning bool   `yaml:"pruning"`
}

type Game struct {
	EngineColor string `yaml:"engine_color"`
	Promotion   string `yaml:"promotion"`
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:         ":3000",
			AllowOrigins: "http://localhost:5173",
		},
		Engine: Engine{
			Depth:   engine.DefaultDepth,
			Pruning: true,
		},
		Game: Game{
			EngineColor: "black",
			Promotion:   "q",
		},
	}
}

// Load reads filename over the defaults, then applies RBCB_* environment
// overrides. A missing file is not an error.
func Load(filename string) (Config, error) {
	cfg := Default()
	if filename != "" {
		b, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("'%s': %v", filename, err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("'%s': %w", filename, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("RBCB_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("RBCB_DEPTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: RBCB_DEPTH=%q", ErrInvalid, v)
		}
		c.Engine.Depth = n
	}
	if v := os.Getenv("RBCB_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: RBCB_SEED=%q", ErrInvalid, v)
		}
		c.Engine.Seed = n
	}
	return nil
}

func (c Config) Validate() error {
	if c.Engine.Depth < 1 {
		return fmt.Errorf("%w: engine depth must be at least 1, got %d", ErrInvalid, c.Engine.Depth)
	}
	if _, err := model.ParseColor(c.Game.EngineColor); err != nil {
		return fmt.Errorf("%w: engine_color: %v", ErrInvalid, err)
	}
	if len(c.Game.Promotion) != 1 || !model.ValidPromotion(c.Game.Promotion[0]) {
		return fmt.Errorf("%w: promotion must be one of q, r, b, n, got %q", ErrInvalid, c.Game.Promotion)
	}
	return nil
}

// EngineColor is the parsed game.engine_color.
func (c Config) EngineColor() model.Color {
	color, _ := model.ParseColor(c.Game.EngineColor)
	return color
}

// PromotionChoice is the default promotion character for new games.
func (c Config) PromotionChoice() byte {
	return c.Game.Promotion[0]
}

// Seed returns the configured search seed, or one taken from the clock
// when unset.
func (c Config) Seed() uint64 {
	if c.Engine.Seed != 0 {
		return c.Engine.Seed
	}
	return uint64(time.Now().UnixNano())
}
