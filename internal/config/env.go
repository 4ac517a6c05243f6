package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// CLI holds the command line defaults that may come from the environment.
type CLI struct {
	ConfigPath  string `env:"DOFCAPTURE_CONFIG"       envDefault:"dofcapture.yaml"`
	LogLevel    string `env:"DOFCAPTURE_LOG_LEVEL"    envDefault:"info"`
	FPS         int    `env:"DOFCAPTURE_FPS"          envDefault:"0"`
	PreviewSize int    `env:"DOFCAPTURE_PREVIEW_SIZE" envDefault:"256"`
	PlanDir     string `env:"DOFCAPTURE_PLAN_DIR"     envDefault:"plans"`
}

// LoadCLIFromEnv parses CLI defaults from environment variables.
func LoadCLIFromEnv() (CLI, error) {
	var cfg CLI
	if err := env.Parse(&cfg); err != nil {
		return CLI{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
