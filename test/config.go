package test

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	MaxMessages   int `envconfig:"PLAYER_E2E_MAX_MESSAGES" default:"10"`
	QueueCapacity int `envconfig:"PLAYER_E2E_QUEUE_CAPACITY" default:"10"`
	// PLAYER_E2E_COLOURS enables colorized step headers
	Colours bool `envconfig:"PLAYER_E2E_COLOURS" default:"true"`
	// PLAYER_E2E_MULTIPROCESS_BIN points to a built multiprocess binary;
	// the launcher scenario is skipped without it
	MultiprocessBin string `envconfig:"PLAYER_E2E_MULTIPROCESS_BIN"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
