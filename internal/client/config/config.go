package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/fieldkeeper/internal/envx"
)

// Config holds runtime settings for the FieldKeeper client.
type Config struct {
	ServerURL      string
	DatabasePath   string
	SyncInterval   time.Duration
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.DatabasePath = "fieldkeeper.db"
	c.SyncInterval = 30 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig reads the process arguments and ./.env.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], ".env")
}

// Load applies defaults, then the JSON file named by -c/-config, then the
// environment (with dotenvPath as fallback), then flags. Later sources win.
func Load(args []string, dotenvPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	lookup, err := envx.Lookup(dotenvPath)
	if err != nil {
		return nil, fmt.Errorf("dotenv: %w", err)
	}
	parseEnv(cfg, lookup)

	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.ParseRequestURI(c.ServerURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid server url %q", c.ServerURL)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is empty")
	}
	if c.SyncInterval <= 0 {
		return fmt.Errorf("sync interval must be positive, got %s", c.SyncInterval)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
