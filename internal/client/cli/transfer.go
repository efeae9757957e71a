package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/swish/internal/client/client"
	"github.com/dmitrijs2005/swish/internal/client/models"
	"github.com/dmitrijs2005/swish/internal/common"
	"github.com/dmitrijs2005/swish/internal/filex"
	"github.com/dmitrijs2005/swish/internal/progress"
	"github.com/gookit/color"
	"github.com/samber/lo"
)

const progressInterval = 500 * time.Millisecond

// UploadFlags are the user-facing transfer parameters.
type UploadFlags struct {
	Password   string
	Message    string
	Downloads  int
	Duration   int
	Email      string
	Recipients []string
}

func (f UploadFlags) params(lang string) models.TransferParameters {
	p := models.DefaultTransferParameters()
	p.Language = lang
	p.Password = f.Password
	p.Message = f.Message
	p.AuthorEmail = f.Email
	p.RecipientEmails = f.Recipients
	if f.Downloads != 0 {
		p.NumberOfDownloads = f.Downloads
	}
	if f.Duration != 0 {
		p.Duration = f.Duration
	}
	return p
}

// startProgress prints tracker to errOut until the returned stop is called.
func (a *App) startProgress(ctx context.Context, label string, tracker *progress.Tracker) (stop func()) {
	rctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		progress.Report(rctx, a.errOut, label, tracker, progressInterval)
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}

// withProgress runs fn while a reporter prints tracker to errOut.
func (a *App) withProgress(ctx context.Context, label string, tracker *progress.Tracker, fn func() error) error {
	stop := a.startProgress(ctx, label, tracker)
	err := fn()
	stop()
	return err
}

func (a *App) Upload(ctx context.Context, path string, flags UploadFlags) error {
	files, err := filex.CollectLocalFiles(path)
	if err != nil {
		return err
	}

	tracker := progress.NewTracker(lo.SumBy(files, func(f models.LocalFile) int64 { return f.Size }))

	var res *models.UploadResult
	err = a.withProgress(ctx, "upload", tracker, func() error {
		var err error
		res, err = a.uploadService.Upload(ctx, files, flags.params(a.config.Language), tracker)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s %d file(s), %s\n", color.Green.Sprint("Uploaded"), len(res.Files), progress.HumanBytes(res.TotalSize))
	fmt.Fprintln(a.out, color.Bold.Sprint(res.ShareLink))
	return nil
}

func (a *App) parseLink(link string) error {
	_, err := client.ParseShareLink(link, a.config.ServiceDomain)
	return err
}

// withPassword runs fn with password and, when it fails with
// ErrPasswordRequired and none was given, asks for one and runs fn once more.
func (a *App) withPassword(ctx context.Context, password string, fn func(password string) error) error {
	err := fn(password)
	if !errors.Is(err, common.ErrPasswordRequired) || password != "" || a.prompt == nil {
		return err
	}

	pw, perr := a.prompt()
	if perr != nil {
		a.log.Debug(ctx, "password prompt unavailable", "error", perr)
		return err
	}
	return fn(pw)
}

func (a *App) Download(ctx context.Context, link, password, dir string) error {
	if err := a.parseLink(link); err != nil {
		return err
	}

	onFile := func(f models.RemoteFile) (*progress.Tracker, func(string, error)) {
		tracker := progress.NewTracker(f.SizeBytes)
		stop := a.startProgress(ctx, f.SafeName(), tracker)
		return tracker, func(dest string, err error) {
			stop()
			if err == nil {
				fmt.Fprintf(a.out, "%s %s\n", color.Green.Sprint("Downloaded"), dest)
			}
		}
	}

	return a.withPassword(ctx, password, func(password string) error {
		_, err := a.downloadService.DownloadAll(ctx, link, password, dir, onFile)
		return err
	})
}

func (a *App) Info(ctx context.Context, link, password string) error {
	if err := a.parseLink(link); err != nil {
		return err
	}

	var manifest *models.RemoteManifest
	err := a.withPassword(ctx, password, func(password string) error {
		var err error
		manifest, err = a.downloadService.Resolve(ctx, link, password)
		return err
	})
	if err != nil {
		return err
	}
	renderManifest(a.out, link, manifest)
	return nil
}

func (a *App) History(ctx context.Context, wipe bool) error {
	if a.history == nil {
		return errors.New("upload history is disabled")
	}
	if wipe {
		if err := a.history.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "History cleared")
		return nil
	}

	records, err := a.history.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No uploads recorded")
		return nil
	}
	renderHistory(a.out, records)
	return nil
}

// Auto downloads target when it is a share link and uploads it when it is
// an existing path.
func (a *App) Auto(ctx context.Context, target string, flags UploadFlags, dir string) error {
	if client.IsShareLink(target, a.config.ServiceDomain) {
		return a.Download(ctx, target, flags.Password, dir)
	}
	if _, err := os.Stat(target); err == nil {
		return a.Upload(ctx, target, flags)
	}
	return fmt.Errorf("%q is neither a share link nor an existing file or directory", target)
}
