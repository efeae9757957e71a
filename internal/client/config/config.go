package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/swish/internal/chunks"
	"github.com/dmitrijs2005/swish/internal/common"
	"github.com/dmitrijs2005/swish/internal/logging"
	"github.com/spf13/pflag"
)

// Config holds runtime settings for the swish CLI.
//
// Units: ChunkSize is in bytes; all intervals are time.Duration.
type Config struct {
	APIBaseURL    string
	ServiceDomain string
	Language      string

	ChunkSize    int64
	ChunkWorkers int

	ConnectTimeout        time.Duration
	ResponseHeaderTimeout time.Duration
	MaxRetries            uint64
	RetryBaseDelay        time.Duration
	RetryMaxDelay         time.Duration

	ScanPollInterval time.Duration
	ScanTimeout      time.Duration

	HistoryPath string
	LogLevel    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = common.DefaultAPIBaseURL
	c.ServiceDomain = common.DefaultServiceDomain
	c.Language = common.DefaultLanguage
	c.ChunkSize = chunks.DefaultLength
	c.ChunkWorkers = 1
	c.ConnectTimeout = 30 * time.Second
	c.ResponseHeaderTimeout = 2 * time.Minute
	c.MaxRetries = 3
	c.RetryBaseDelay = 500 * time.Millisecond
	c.RetryMaxDelay = 10 * time.Second
	c.ScanPollInterval = 5 * time.Second
	c.ScanTimeout = 10 * time.Minute
	c.HistoryPath = defaultHistoryPath()
	c.LogLevel = "warn"
}

func defaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".swish", "history.db")
	}
	return filepath.Join(dir, "swish", "history.db")
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkWorkers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.ChunkWorkers)
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return fmt.Errorf("invalid api url %q", c.APIBaseURL)
	}
	if c.ServiceDomain == "" {
		return fmt.Errorf("service domain must not be empty")
	}
	if c.ScanPollInterval <= 0 || c.ScanTimeout <= 0 {
		return fmt.Errorf("scan poll interval and timeout must be positive")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays the JSON
// file named by --config, a .env file, SWISH_* environment variables and
// finally the flags set on fs. Later sources take precedence over earlier
// ones. fs may be nil.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if fs != nil {
		path, _ := fs.GetString(FlagConfig)
		if err := parseJson(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if fs != nil {
		if err := applyFlags(cfg, fs); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
