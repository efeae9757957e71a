package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/swish/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so they can be strings like "5s" or integer nanoseconds.
// Absent keys leave the corresponding Config field untouched.
type JsonConfig struct {
	APIBaseURL            *string         `json:"api_base_url"`
	ServiceDomain         *string         `json:"service_domain"`
	Language              *string         `json:"language"`
	ChunkSize             *int64          `json:"chunk_size"`
	ChunkWorkers          *int            `json:"chunk_workers"`
	ConnectTimeout        *timex.Duration `json:"connect_timeout"`
	ResponseHeaderTimeout *timex.Duration `json:"response_header_timeout"`
	MaxRetries            *uint64         `json:"max_retries"`
	RetryBaseDelay        *timex.Duration `json:"retry_base_delay"`
	RetryMaxDelay         *timex.Duration `json:"retry_max_delay"`
	ScanPollInterval      *timex.Duration `json:"scan_poll_interval"`
	ScanTimeout           *timex.Duration `json:"scan_timeout"`
	HistoryPath           *string         `json:"history_path"`
	LogLevel              *string         `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file at path. An empty
// path loads nothing.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&cfg.APIBaseURL, jc.APIBaseURL)
	setIf(&cfg.ServiceDomain, jc.ServiceDomain)
	setIf(&cfg.Language, jc.Language)
	setIf(&cfg.ChunkSize, jc.ChunkSize)
	setIf(&cfg.ChunkWorkers, jc.ChunkWorkers)
	setIf(&cfg.MaxRetries, jc.MaxRetries)
	setIf(&cfg.HistoryPath, jc.HistoryPath)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setDurationIf(&cfg.ConnectTimeout, jc.ConnectTimeout)
	setDurationIf(&cfg.ResponseHeaderTimeout, jc.ResponseHeaderTimeout)
	setDurationIf(&cfg.RetryBaseDelay, jc.RetryBaseDelay)
	setDurationIf(&cfg.RetryMaxDelay, jc.RetryMaxDelay)
	setDurationIf(&cfg.ScanPollInterval, jc.ScanPollInterval)
	setDurationIf(&cfg.ScanTimeout, jc.ScanTimeout)

	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setDurationIf(dst *time.Duration, src *timex.Duration) {
	if src != nil {
		*dst = src.Duration
	}
}
