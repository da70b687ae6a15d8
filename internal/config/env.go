package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ApplyEnv overlays FRAMEGRAB_* environment variables onto cfg. Variables
// that are unset leave the field untouched.
func ApplyEnv(cfg *Config) error {
	return applyEnv(cfg, env.Options{})
}

func applyEnv(cfg *Config, opts env.Options) error {
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}
