package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR"`

	// Store selection: "sqlite" for single-node durable storage,
	// "mongo" for multi-node deployments.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"sqlite"`
	DBPath      string `env:"DB_PATH" envDefault:"data/hunt.db"`
	MongoURI    string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB     string `env:"MONGO_DB" envDefault:"bingohunt"`

	// Optional leaderboard cache. Empty disables caching.
	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"LEADERBOARD_CACHE_TTL" envDefault:"3s"`

	AdminPassword string        `env:"ADMIN_PASSWORD" envDefault:"hunt-admin"`
	GameDuration  time.Duration `env:"GAME_DURATION" envDefault:"12m"`

	// "per-team" starts each team's timer independently; "global" gates all
	// teams behind one admin-triggered start.
	StartPolicy string `env:"START_POLICY" envDefault:"per-team"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.StoreDriver != "sqlite" && cfg.StoreDriver != "mongo" {
		return nil, fmt.Errorf("STORE_DRIVER must be sqlite or mongo, got %q", cfg.StoreDriver)
	}
	if cfg.StartPolicy != "per-team" && cfg.StartPolicy != "global" {
		return nil, fmt.Errorf("START_POLICY must be per-team or global, got %q", cfg.StartPolicy)
	}
	return &cfg, nil
}
