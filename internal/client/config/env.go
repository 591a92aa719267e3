package config

import "github.com/dmitrijs2005/fieldkeeper/internal/envx"

const (
	EnvServerURL = "FIELDKEEPER_SERVER_URL"
	EnvDatabase  = "FIELDKEEPER_DB"
	EnvLogLevel  = "FIELDKEEPER_LOG_LEVEL"
)

func parseEnv(cfg *Config, lookup envx.LookupFunc) {
	if v, ok := lookup(EnvServerURL); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := lookup(EnvDatabase); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
}
