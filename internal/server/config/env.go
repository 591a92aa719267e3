package config

import (
	"strings"

	"github.com/dmitrijs2005/fieldkeeper/internal/envx"
)

const (
	EnvPort        = "PORT"
	EnvDatabaseURL = "DATABASE_URL"
	EnvTTSAPIKey   = "SARVAM_API_KEY"
	EnvLogLevel    = "FIELDKEEPER_LOG_LEVEL"
)

func parseEnv(cfg *Config, lookup envx.LookupFunc) {
	if v, ok := lookup(EnvPort); ok && v != "" {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		cfg.Addr = v
	}
	if v, ok := lookup(EnvDatabaseURL); ok && v != "" {
		cfg.DatabaseDSN = v
	}
	if v, ok := lookup(EnvTTSAPIKey); ok && v != "" {
		cfg.TTSAPIKey = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
}
