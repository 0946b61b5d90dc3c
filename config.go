package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/milk9111/ybot/assets"
)

// Config holds startup settings. Environment variables provide defaults and
// command-line flags override them.
type Config struct {
	AssetDir      string `env:"YBOT_ASSET_DIR"`
	Skeleton      string `env:"YBOT_SKELETON"`
	Watch         bool   `env:"YBOT_WATCH"`
	Debug         bool   `env:"YBOT_DEBUG"`
	BaseMonitor   bool   `env:"YBOT_BASE_MONITOR"`
	LoaderWorkers int    `env:"YBOT_LOADER_WORKERS" envDefault:"1"`
}

var errWatchNeedsDir = errors.New("config: -watch needs an asset directory")

func LoadConfig(args []string) (Config, error) {
	cfg := Config{Skeleton: assets.DefaultSkeleton}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if cfg.Skeleton == "" {
		cfg.Skeleton = assets.DefaultSkeleton
	}

	fs := flag.NewFlagSet("ybot", flag.ContinueOnError)
	fs.StringVar(&cfg.AssetDir, "assets", cfg.AssetDir, "directory whose asset files override the embedded ones")
	fs.StringVar(&cfg.Skeleton, "skeleton", cfg.Skeleton, "skeleton asset to load")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload the skeleton when it changes on disk")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug mode")
	fs.BoolVar(&cfg.BaseMonitor, "m", cfg.BaseMonitor, "use base monitor instead of primary (for multi-monitor setups)")
	fs.IntVar(&cfg.LoaderWorkers, "workers", cfg.LoaderWorkers, "asset loader workers")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: parse flags: %w", err)
	}

	if cfg.Watch && cfg.AssetDir == "" {
		return Config{}, errWatchNeedsDir
	}
	if cfg.LoaderWorkers <= 0 {
		cfg.LoaderWorkers = 1
	}
	return cfg, nil
}
