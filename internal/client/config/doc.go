// Package config loads runtime configuration for the swish CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with --config / -c.
//  3. A .env file in the working directory, if present.
//  4. SWISH_* environment variables.
//  5. Command-line flags registered by BindFlags, when set explicitly.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "5s"
// or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://www.swisstransfer.com/api",
//	  "chunk_size": 52428800,
//	  "chunk_workers": 4,
//	  "scan_poll_interval": "5s",
//	  "scan_timeout": "10m",
//	  "log_level": "info"
//	}
//
// Primary API
//
//   - type Config: runtime settings
//   - func LoadConfig(*pflag.FlagSet) (*Config, error)
//   - func BindFlags(*pflag.FlagSet): registers the config flags
//   - func (*Config) Validate() error
package config
