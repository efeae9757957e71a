package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared with the CLI.
const (
	FlagConfig      = "config"
	FlagAPIURL      = "api-url"
	FlagLogLevel    = "log-level"
	FlagWorkers     = "workers"
	FlagChunkSize   = "chunk-size"
	FlagScanTimeout = "scan-timeout"
	FlagHistoryPath = "history-path"
)

// BindFlags registers the configuration flags on fs. Defaults shown in help
// are the built-in ones; a flag only overrides other sources when it is set
// explicitly.
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON config file")
	fs.String(FlagAPIURL, d.APIBaseURL, "base URL of the transfer API")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn or error")
	fs.Int(FlagWorkers, d.ChunkWorkers, "concurrent chunk uploads per file")
	fs.Int64(FlagChunkSize, d.ChunkSize, "upload chunk size in bytes")
	fs.Duration(FlagScanTimeout, d.ScanTimeout, "how long to wait for a pending virus scan")
	fs.String(FlagHistoryPath, d.HistoryPath, "path of the upload history database")
}

// applyFlags copies explicitly set flags into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	if fs.Changed(FlagAPIURL) {
		if cfg.APIBaseURL, err = fs.GetString(FlagAPIURL); err != nil {
			return err
		}
	}
	if fs.Changed(FlagLogLevel) {
		if cfg.LogLevel, err = fs.GetString(FlagLogLevel); err != nil {
			return err
		}
	}
	if fs.Changed(FlagWorkers) {
		if cfg.ChunkWorkers, err = fs.GetInt(FlagWorkers); err != nil {
			return err
		}
	}
	if fs.Changed(FlagChunkSize) {
		if cfg.ChunkSize, err = fs.GetInt64(FlagChunkSize); err != nil {
			return err
		}
	}
	if fs.Changed(FlagScanTimeout) {
		if cfg.ScanTimeout, err = fs.GetDuration(FlagScanTimeout); err != nil {
			return err
		}
	}
	if fs.Changed(FlagHistoryPath) {
		if cfg.HistoryPath, err = fs.GetString(FlagHistoryPath); err != nil {
			return err
		}
	}
	return nil
}
