package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/swish/internal/client/client"
	"github.com/dmitrijs2005/swish/internal/client/models"
	"github.com/dmitrijs2005/swish/internal/common"
	"github.com/dmitrijs2005/swish/internal/filex"
	"github.com/dmitrijs2005/swish/internal/logging"
	"github.com/dmitrijs2005/swish/internal/progress"
	"github.com/sethvargo/go-retry"
)

// DownloadService resolves share links and writes their files locally.
type DownloadService interface {
	// Resolve returns the manifest of link, waiting for a pending virus
	// scan to finish.
	Resolve(ctx context.Context, link, password string) (*models.RemoteManifest, error)
	// DownloadFile writes one file of manifest into dir and returns its path.
	DownloadFile(ctx context.Context, manifest *models.RemoteManifest, file models.RemoteFile, password, dir string, tracker *progress.Tracker) (string, error)
	// DownloadAll resolves link once and downloads every file in order.
	// Files whose names collide get a numbered suffix.
	DownloadAll(ctx context.Context, link, password, dir string, onFile FileProgress) ([]string, error)
}

// FileProgress is called by DownloadAll before each file. The returned
// tracker counts that file's bytes and done receives the written path or
// the error. Either result may be nil.
type FileProgress func(file models.RemoteFile) (tracker *progress.Tracker, done func(path string, err error))

type DownloadOptions struct {
	// ScanPollInterval is the first wait while a virus scan is pending.
	ScanPollInterval time.Duration
	// ScanPollMaxInterval caps a single wait.
	ScanPollMaxInterval time.Duration
	// ScanTimeout bounds the whole wait; exceeding it yields ErrScanTimeout.
	ScanTimeout time.Duration
}

func DefaultDownloadOptions() DownloadOptions {
	return DownloadOptions{
		ScanPollInterval:    5 * time.Second,
		ScanPollMaxInterval: 30 * time.Second,
		ScanTimeout:         10 * time.Minute,
	}
}

type downloadService struct {
	client client.Client
	opts   DownloadOptions
	log    logging.Logger
}

func NewDownloadService(c client.Client, opts DownloadOptions, log logging.Logger) DownloadService {
	def := DefaultDownloadOptions()
	if opts.ScanPollInterval <= 0 {
		opts.ScanPollInterval = def.ScanPollInterval
	}
	if opts.ScanPollMaxInterval < opts.ScanPollInterval {
		opts.ScanPollMaxInterval = opts.ScanPollInterval
	}
	if opts.ScanTimeout <= 0 {
		opts.ScanTimeout = def.ScanTimeout
	}
	if log == nil {
		log = logging.Nop()
	}
	return &downloadService{client: c, opts: opts, log: log}
}

func (s *downloadService) scanBackoff() retry.Backoff {
	b := retry.NewExponential(s.opts.ScanPollInterval)
	b = retry.WithCappedDuration(s.opts.ScanPollMaxInterval, b)
	return retry.WithMaxDuration(s.opts.ScanTimeout, b)
}

func (s *downloadService) Resolve(ctx context.Context, link, password string) (*models.RemoteManifest, error) {
	linkID := client.LinkID(link)

	var manifest *models.RemoteManifest
	err := retry.Do(ctx, s.scanBackoff(), func(ctx context.Context) error {
		m, err := s.client.GetLink(ctx, linkID, password)
		if errors.Is(err, common.ErrScanPending) {
			s.log.Info(ctx, "virus scan in progress, waiting", "link", linkID)
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		manifest = m
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, common.ErrScanPending):
		return nil, fmt.Errorf("%w (waited %s)", common.ErrScanTimeout, s.opts.ScanTimeout)
	default:
		return nil, err
	}

	if manifest.NeedsPassword && password == "" {
		return nil, common.ErrPasswordRequired
	}

	s.log.Info(ctx, "link resolved", "link", linkID, "files", len(manifest.Files), "protected", manifest.NeedsPassword)
	return manifest, nil
}

func (s *downloadService) token(ctx context.Context, manifest *models.RemoteManifest, file models.RemoteFile, password string) (string, error) {
	if !manifest.NeedsPassword {
		return "", nil
	}
	if password == "" {
		return "", common.ErrPasswordRequired
	}
	token, err := s.client.GenerateDownloadToken(ctx, password, manifest.ContainerUUID, file.UUID)
	if err != nil {
		return "", fmt.Errorf("error generating download token for %s: %w", file.Name, err)
	}
	return token, nil
}

func (s *downloadService) DownloadFile(ctx context.Context, manifest *models.RemoteManifest, file models.RemoteFile, password, dir string, tracker *progress.Tracker) (string, error) {
	return s.downloadTo(ctx, manifest, file, password, dir, file.SafeName(), tracker)
}

func (s *downloadService) downloadTo(ctx context.Context, manifest *models.RemoteManifest, file models.RemoteFile, password, dir, name string, tracker *progress.Tracker) (string, error) {
	token, err := s.token(ctx, manifest, file, password)
	if err != nil {
		return "", err
	}

	dir, err = filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}

	body, err := s.client.OpenDownload(ctx, manifest, file, token)
	if err != nil {
		return "", fmt.Errorf("error downloading %s: %w", file.Name, err)
	}
	defer body.Close()

	dest := filepath.Join(dir, name)
	written, err := writeFile(dest, tracker.Reader(body))
	if err != nil {
		return "", err
	}

	if written != file.SizeBytes {
		s.log.Warn(ctx, "downloaded size differs from manifest", "file", file.Name, "expected", file.SizeBytes, "written", written)
	}
	s.log.Info(ctx, "file downloaded", "file", dest, "size", written)
	return dest, nil
}

// writeFile copies r into a new file at dest. On any failure the partial
// file is removed.
func writeFile(dest string, r io.Reader) (n int64, err error) {
	out, err := os.Create(dest)
	if err != nil {
		return 0, &common.FileError{Op: "create", Path: dest, Err: err}
	}
	defer func() {
		if err != nil {
			_ = os.Remove(dest)
		}
	}()

	n, err = io.Copy(out, r)
	if err != nil {
		_ = out.Close()
		return n, &common.FileError{Op: "write", Path: dest, Err: err}
	}
	if err = out.Close(); err != nil {
		return n, &common.FileError{Op: "close", Path: dest, Err: err}
	}
	return n, nil
}

func (s *downloadService) DownloadAll(ctx context.Context, link, password, dir string, onFile FileProgress) ([]string, error) {
	manifest, err := s.Resolve(ctx, link, password)
	if err != nil {
		return nil, err
	}

	used := make(map[string]bool, len(manifest.Files))
	paths := make([]string, 0, len(manifest.Files))
	for _, f := range manifest.Files {
		name := uniqueName(used, f.SafeName())
		if name != f.SafeName() {
			s.log.Warn(ctx, "duplicate file name in transfer, renaming", "file", f.Name, "as", name)
		}

		var (
			tracker *progress.Tracker
			done    func(string, error)
		)
		if onFile != nil {
			tracker, done = onFile(f)
		}

		p, err := s.downloadTo(ctx, manifest, f, password, dir, name, tracker)
		if done != nil {
			done(p, err)
		}
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// uniqueName returns name, or "base (n).ext" for the first n not yet in used,
// and marks the result as used.
func uniqueName(used map[string]bool, name string) string {
	candidate := name
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; used[candidate]; i++ {
		candidate = fmt.Sprintf("%s (%d)%s", base, i, ext)
	}
	used[candidate] = true
	return candidate
}
