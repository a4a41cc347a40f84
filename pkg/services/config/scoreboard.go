package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ScoreboardConfig is read from the environment (and an optional .env file)
type ScoreboardConfig struct {
	Host       string `env:"SCOREBOARD_HOST" envDefault:"0.0.0.0"`
	Port       string `env:"SCOREBOARD_PORT" envDefault:"8000"`
	DBPath     string `env:"SCOREBOARD_DB" envDefault:"scoreboard.db"`
	Blob       string `env:"SCOREBOARD_BLOB" envDefault:"conf.z"`
	KeysFile   string `env:"SCOREBOARD_KEYS_FILE" envDefault:"keys.ini"`
	KeyProfile string `env:"SCOREBOARD_KEY_PROFILE" envDefault:"default"`
	AWSProfile string `env:"SCOREBOARD_AWS_PROFILE"`
}

func ParseScoreboardEnv() (*ScoreboardConfig, error) {
	var cfg ScoreboardConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
