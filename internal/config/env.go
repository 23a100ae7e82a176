package config

import (
	envparse "github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first; it never overrides
// variables the environment already sets, and its absence is not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if err := envparse.Parse(cfg); err != nil {
		panic(err)
	}
}
