package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fieldkeeper/internal/flagx"
	"github.com/dmitrijs2005/fieldkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations
// accept "3s" or integer nanoseconds. Absent keys leave the current value
// alone.
type JsonConfig struct {
	Addr            string         `json:"addr"`
	DatabaseDSN     string         `json:"database_dsn"`
	TTSEndpoint     string         `json:"tts_endpoint"`
	TTSAPIKey       string         `json:"tts_api_key"`
	TTSSpeaker      string         `json:"tts_speaker"`
	TTSModel        string         `json:"tts_model"`
	TTSRateLimit    float64        `json:"tts_rate_limit"`
	TTSBurst        int            `json:"tts_burst"`
	TTSTimeout      timex.Duration `json:"tts_timeout"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
	LogLevel        string         `json:"log_level"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setString(&cfg.Addr, jc.Addr)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.TTSEndpoint, jc.TTSEndpoint)
	setString(&cfg.TTSAPIKey, jc.TTSAPIKey)
	setString(&cfg.TTSSpeaker, jc.TTSSpeaker)
	setString(&cfg.TTSModel, jc.TTSModel)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.TTSRateLimit != 0 {
		cfg.TTSRateLimit = jc.TTSRateLimit
	}
	if jc.TTSBurst != 0 {
		cfg.TTSBurst = jc.TTSBurst
	}
	if jc.TTSTimeout.Duration != 0 {
		cfg.TTSTimeout = jc.TTSTimeout.Duration
	}
	if jc.ShutdownTimeout.Duration != 0 {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
