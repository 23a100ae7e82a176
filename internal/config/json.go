package config

import (
	"encoding/json"
	"os"

	"github.com/hafidzirham/localspot-cli/internal/flagx"
	"github.com/hafidzirham/localspot-cli/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so files can write intervals as "15s" or as integer
// nanoseconds; parsed values are copied into the runtime Config.
type jsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	DatabasePath        string         `json:"database_path"`
	LogLevel            string         `json:"log_level"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJSON overlays Config with values from the JSON file named by the
// -c/-config flags. No flag means no JSON is loaded. Only fields actually
// present keep their file value; absent fields keep the earlier source.
// Read or unmarshal errors panic — a requested config file that cannot be
// used is a startup defect.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	jc := jsonConfig{
		APIBaseURL:          cfg.APIBaseURL,
		RequestTimeout:      timex.Duration{Duration: cfg.RequestTimeout},
		DatabasePath:        cfg.DatabasePath,
		LogLevel:            cfg.LogLevel,
		OnlineCheckInterval: timex.Duration{Duration: cfg.OnlineCheckInterval},
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.APIBaseURL = jc.APIBaseURL
	cfg.RequestTimeout = jc.RequestTimeout.Duration
	cfg.DatabasePath = jc.DatabasePath
	cfg.LogLevel = jc.LogLevel
	cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
}
