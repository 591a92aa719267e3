// Package config loads runtime configuration for the FieldKeeper client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables, falling back to a .env file.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   server base URL
//	-d string   local SQLite database path
//	-i int      background sync interval (seconds)
//	-t int      HTTP request timeout (seconds)
//	-l string   log level
//
// Environment
//
//	FIELDKEEPER_SERVER_URL, FIELDKEEPER_DB, FIELDKEEPER_LOG_LEVEL
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "database_path": "fieldkeeper.db",
//	  "sync_interval": "30s",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
package config
