package cli

import (
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/swish/internal/client/client"
	"github.com/dmitrijs2005/swish/internal/client/config"
	"github.com/dmitrijs2005/swish/internal/client/repositories/history"
	"github.com/dmitrijs2005/swish/internal/client/services"
	"github.com/dmitrijs2005/swish/internal/logging"
	"github.com/dmitrijs2005/swish/internal/netx"
)

type App struct {
	config          *config.Config
	log             logging.Logger
	uploadService   services.UploadService
	downloadService services.DownloadService
	history         history.Repository
	out             io.Writer
	errOut          io.Writer
	// prompt asks for a password; nil disables prompting.
	prompt func() (string, error)
}

// AppFactory builds the App for one invocation. withHistory is false when
// --no-history was given.
type AppFactory func(cfg *config.Config, withHistory bool, out, errOut io.Writer) (*App, error)

// NewApp wires the production stack: HTTP transport, SwissTransfer client,
// transfer services and, unless disabled, the bolt history.
func NewApp(cfg *config.Config, withHistory bool, out, errOut io.Writer) (*App, error) {
	log, err := logging.New(cfg.LogLevel, errOut)
	if err != nil {
		return nil, err
	}

	httpClient := netx.NewHTTPClient(cfg.ConnectTimeout, cfg.ResponseHeaderTimeout)
	transport := netx.New(httpClient, netx.Options{
		MaxRetries:     cfg.MaxRetries,
		RetryBaseDelay: cfg.RetryBaseDelay,
		RetryMaxDelay:  cfg.RetryMaxDelay,
	}, log.With("component", "transport"))
	apiClient := client.NewSwissTransferClient(transport, client.Options{
		APIBaseURL:    cfg.APIBaseURL,
		ServiceDomain: cfg.ServiceDomain,
	}, log.With("component", "client"))

	var hist history.Repository
	if withHistory {
		repo, err := history.OpenBoltRepository(cfg.HistoryPath)
		if err != nil {
			log.Warn(context.Background(), "upload history unavailable", "path", cfg.HistoryPath, "error", err)
		} else {
			hist = repo
		}
	}

	us := services.NewUploadService(apiClient, hist, services.UploadOptions{
		ChunkSize: cfg.ChunkSize,
		Workers:   cfg.ChunkWorkers,
	}, log.With("component", "upload"))
	ds := services.NewDownloadService(apiClient, services.DownloadOptions{
		ScanPollInterval:    cfg.ScanPollInterval,
		ScanPollMaxInterval: services.DefaultDownloadOptions().ScanPollMaxInterval,
		ScanTimeout:         cfg.ScanTimeout,
	}, log.With("component", "download"))

	return &App{
		config:          cfg,
		log:             log,
		uploadService:   us,
		downloadService: ds,
		history:         hist,
		out:             out,
		errOut:          errOut,
		prompt:          terminalPrompt(os.Stdin, errOut),
	}, nil
}

func (a *App) Close() error {
	if a.history != nil {
		return a.history.Close()
	}
	return nil
}
