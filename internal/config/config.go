// Package config loads bot configuration from the environment, with an
// optional .env file for local runs.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds everything the bot needs to start.
type Config struct {
	DiscordToken  string   `env:"DISCORD_TOKEN,required"`
	CommandPrefix string   `env:"COMMAND_PREFIX" envDefault:"!"`
	OwnerIDs      []string `env:"OWNER_IDS" envSeparator:","`
	StoragePath   string   `env:"STORAGE_PATH" envDefault:"partykit.json"`
}

// New loads .env if present, then parses the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using system environment")
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
