package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// DotEnvFile is read from the working directory when present. Variables
// already set in the environment win over the file.
var DotEnvFile = ".env"

const envMaxRetries = "SWISH_MAX_RETRIES"

// EnvConfig is a DTO for SWISH_* environment variables. Unset or zero values
// leave the corresponding Config field untouched, except SWISH_MAX_RETRIES
// where an explicit 0 disables retries.
type EnvConfig struct {
	APIBaseURL            string        `env:"SWISH_API_BASE_URL"`
	ServiceDomain         string        `env:"SWISH_SERVICE_DOMAIN"`
	Language              string        `env:"SWISH_LANGUAGE"`
	ChunkSize             int64         `env:"SWISH_CHUNK_SIZE"`
	ChunkWorkers          int           `env:"SWISH_WORKERS"`
	ConnectTimeout        time.Duration `env:"SWISH_CONNECT_TIMEOUT"`
	ResponseHeaderTimeout time.Duration `env:"SWISH_RESPONSE_HEADER_TIMEOUT"`
	MaxRetries            int           `env:"SWISH_MAX_RETRIES"`
	RetryBaseDelay        time.Duration `env:"SWISH_RETRY_BASE_DELAY"`
	RetryMaxDelay         time.Duration `env:"SWISH_RETRY_MAX_DELAY"`
	ScanPollInterval      time.Duration `env:"SWISH_SCAN_POLL_INTERVAL"`
	ScanTimeout           time.Duration `env:"SWISH_SCAN_TIMEOUT"`
	HistoryPath           string        `env:"SWISH_HISTORY_PATH"`
	LogLevel              string        `env:"SWISH_LOG_LEVEL"`
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays cfg with SWISH_* variables from the process environment.
func parseEnv(cfg *Config) error {
	var ec EnvConfig
	es, err := env.UnmarshalFromEnviron(&ec)
	if err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	setNonZero(&cfg.APIBaseURL, ec.APIBaseURL)
	setNonZero(&cfg.ServiceDomain, ec.ServiceDomain)
	setNonZero(&cfg.Language, ec.Language)
	setNonZero(&cfg.ChunkSize, ec.ChunkSize)
	setNonZero(&cfg.ChunkWorkers, ec.ChunkWorkers)
	setNonZero(&cfg.ConnectTimeout, ec.ConnectTimeout)
	setNonZero(&cfg.ResponseHeaderTimeout, ec.ResponseHeaderTimeout)
	setNonZero(&cfg.RetryBaseDelay, ec.RetryBaseDelay)
	setNonZero(&cfg.RetryMaxDelay, ec.RetryMaxDelay)
	setNonZero(&cfg.ScanPollInterval, ec.ScanPollInterval)
	setNonZero(&cfg.ScanTimeout, ec.ScanTimeout)
	setNonZero(&cfg.HistoryPath, ec.HistoryPath)
	setNonZero(&cfg.LogLevel, ec.LogLevel)
	if _, ok := es[envMaxRetries]; ok {
		if ec.MaxRetries < 0 {
			return fmt.Errorf("parse environment: %s must not be negative", envMaxRetries)
		}
		cfg.MaxRetries = uint64(ec.MaxRetries)
	}

	return nil
}

func setNonZero[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}
