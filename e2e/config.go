package e2e

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
	// E2E_SYNC_TIMEOUT bounds how long a tab may take to converge
	SyncTimeout time.Duration `envconfig:"E2E_SYNC_TIMEOUT" default:"5s"`
	// E2E_POLL_INTERVAL is the convergence polling step
	PollInterval time.Duration `envconfig:"E2E_POLL_INTERVAL" default:"10ms"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
