// Package config assembles runtime settings for the LocalSpot client from
// defaults, environment, an optional JSON file, and command-line flags.
// Later sources override earlier ones.
package config

import "time"

// Config holds runtime settings for the LocalSpot CLI.
type Config struct {
	// APIBaseURL is the base path of the remote REST API, fixed for the
	// lifetime of the process.
	APIBaseURL string `env:"LOCALSPOT_API_URL"`

	// RequestTimeout bounds every API request; there are no retries.
	RequestTimeout time.Duration `env:"LOCALSPOT_REQUEST_TIMEOUT"`

	// DatabasePath is the local SQLite file holding persisted session state.
	DatabasePath string `env:"LOCALSPOT_DB_PATH"`

	// LogLevel is the minimum level emitted: debug, info, warn, error.
	LogLevel string `env:"LOCALSPOT_LOG_LEVEL"`

	// OnlineCheckInterval is how often the client probes API reachability.
	OnlineCheckInterval time.Duration `env:"LOCALSPOT_ONLINE_CHECK_INTERVAL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://localspot.hafidzirham.com/api"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "localspot.db"
	c.LogLevel = "info"
	c.OnlineCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config: defaults, then environment (including a
// .env file when present), then JSON (if a config file was given), then
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
