// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/fieldkeeper/internal/envx"
)

// Config holds runtime settings for the FieldKeeper server.
//
// Fields:
//   - Addr: HTTP listen address.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps records in memory.
//   - TTSEndpoint / TTSAPIKey: text-to-speech vendor endpoint and key.
//   - TTSSpeaker / TTSModel: voice and model sent with every request.
//   - TTSRateLimit / TTSBurst: outbound vendor requests per second.
//   - TTSTimeout: upper bound for one vendor request.
//   - ShutdownTimeout: grace period for in-flight requests on exit.
type Config struct {
	Addr            string
	DatabaseDSN     string
	TTSEndpoint     string
	TTSAPIKey       string
	TTSSpeaker      string
	TTSModel        string
	TTSRateLimit    float64
	TTSBurst        int
	TTSTimeout      time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":5000"
	c.DatabaseDSN = ""
	c.TTSEndpoint = "https://api.sarvam.ai/text-to-speech/stream"
	c.TTSAPIKey = ""
	c.TTSSpeaker = "tanya"
	c.TTSModel = "bulbul:v3"
	c.TTSRateLimit = 5
	c.TTSBurst = 10
	c.TTSTimeout = 30 * time.Second
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig reads the process arguments and ./.env.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], ".env")
}

// Load applies defaults, then the JSON file named by -c/-config, then the
// environment (with dotenvPath as fallback), then flags.
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
	if c.Addr == "" {
		return fmt.Errorf("listen address is empty")
	}
	u, err := url.ParseRequestURI(c.TTSEndpoint)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid tts endpoint %q", c.TTSEndpoint)
	}
	if c.TTSRateLimit <= 0 || c.TTSBurst <= 0 {
		return fmt.Errorf("tts rate limit must be positive, got %v/s burst %d", c.TTSRateLimit, c.TTSBurst)
	}
	if c.TTSTimeout <= 0 {
		return fmt.Errorf("tts timeout must be positive, got %s", c.TTSTimeout)
	}
	return nil
}
