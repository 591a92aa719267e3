package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/fieldkeeper/internal/flagx"
)

// parseFlags overlays cfg with the server flags:
//
//	-a string   HTTP listen address (e.g., ":5000")
//	-d string   PostgreSQL DSN
//	-e string   TTS vendor endpoint
//	-k string   TTS vendor API key
//	-r float    TTS requests per second
//	-l string   log level
//
// Only these flags are picked out of args, so flags meant for other
// components do not collide.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-e", "-k", "-r", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.TTSEndpoint, "e", cfg.TTSEndpoint, "text-to-speech endpoint")
	fs.StringVar(&cfg.TTSAPIKey, "k", cfg.TTSAPIKey, "text-to-speech API key")
	fs.Float64Var(&cfg.TTSRateLimit, "r", cfg.TTSRateLimit, "text-to-speech requests per second")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	return fs.Parse(args)
}
