package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/swish/internal/chunks"
	"github.com/dmitrijs2005/swish/internal/client/client"
	"github.com/dmitrijs2005/swish/internal/client/models"
	"github.com/dmitrijs2005/swish/internal/client/repositories/history"
	"github.com/dmitrijs2005/swish/internal/common"
	"github.com/dmitrijs2005/swish/internal/logging"
	"github.com/dmitrijs2005/swish/internal/progress"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// UploadService sends a local file set as one container and returns the
// share link.
type UploadService interface {
	Upload(ctx context.Context, files []models.LocalFile, params models.TransferParameters, tracker *progress.Tracker) (*models.UploadResult, error)
}

type UploadOptions struct {
	// ChunkSize is the planner's chunk length in bytes.
	ChunkSize int64
	// Workers bounds concurrent chunk uploads per file. 1 means strict order.
	Workers int
}

type uploadService struct {
	client   client.Client
	history  history.Repository
	opts     UploadOptions
	validate *validator.Validate
	log      logging.Logger
}

// NewUploadService returns an UploadService. history may be nil to skip
// recording finished uploads.
func NewUploadService(c client.Client, hist history.Repository, opts UploadOptions, log logging.Logger) UploadService {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = chunks.DefaultLength
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if log == nil {
		log = logging.Nop()
	}
	return &uploadService{client: c, history: hist, opts: opts, validate: validator.New(), log: log}
}

func (s *uploadService) Upload(ctx context.Context, files []models.LocalFile, params models.TransferParameters, tracker *progress.Tracker) (*models.UploadResult, error) {
	if len(files) == 0 {
		return nil, common.ErrNoFiles
	}
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidParameters, err)
	}

	container, err := s.client.CreateContainer(ctx, files, params)
	if err != nil {
		return nil, fmt.Errorf("error creating container: %w", err)
	}
	s.log.Info(ctx, "container negotiated", "container", container.UUID, "files", len(files))

	for i, f := range files {
		if err := s.uploadFile(ctx, container, container.FileUUIDs[i], f, tracker); err != nil {
			return nil, err
		}
		s.log.Info(ctx, "file uploaded", "file", f.Name, "size", f.Size)
	}

	linkUUID, err := s.client.CompleteUpload(ctx, container.UUID, params.Language)
	if err != nil {
		return nil, fmt.Errorf("error finalizing upload: %w", err)
	}

	result := &models.UploadResult{
		ShareLink:     s.client.ShareLink(linkUUID),
		LinkUUID:      linkUUID,
		ContainerUUID: container.UUID,
		Files:         files,
		TotalSize:     lo.SumBy(files, func(f models.LocalFile) int64 { return f.Size }),
	}
	s.log.Info(ctx, "upload complete", "link", result.ShareLink)

	s.record(ctx, result, params)
	return result, nil
}

// record is best effort: the transfer already succeeded.
func (s *uploadService) record(ctx context.Context, result *models.UploadResult, params models.TransferParameters) {
	if s.history == nil {
		return
	}

	now := time.Now().UTC()
	rec := &history.Record{
		ShareLink:         result.ShareLink,
		ContainerUUID:     result.ContainerUUID,
		Files:             lo.Map(result.Files, func(f models.LocalFile, _ int) string { return f.Name }),
		TotalSize:         result.TotalSize,
		PasswordProtected: params.Password != "",
		CreatedAt:         now,
		ExpiresAt:         now.AddDate(0, 0, params.Duration),
	}
	if err := s.history.Add(ctx, rec); err != nil {
		s.log.Warn(ctx, "failed to record upload", "error", err)
	}
}

func (s *uploadService) uploadFile(ctx context.Context, container *models.Container, fileUUID string, f models.LocalFile, tracker *progress.Tracker) error {
	fh, err := os.Open(f.Path)
	if err != nil {
		return &common.FileError{Op: "open", Path: f.Path, Err: err}
	}
	defer fh.Close()

	fi, err := fh.Stat()
	if err != nil {
		return &common.FileError{Op: "stat", Path: f.Path, Err: err}
	}
	if fi.Size() != f.Size {
		return &common.FileError{Op: "stat", Path: f.Path, Err: fmt.Errorf("%w: expected %d bytes, found %d", common.ErrSizeMismatch, f.Size, fi.Size())}
	}

	plan := chunks.Plan(f.Size, s.opts.ChunkSize)
	last := plan[len(plan)-1]

	send := func(ctx context.Context, c chunks.Chunk) error {
		data, err := readChunk(fh, f.Path, c)
		if err != nil {
			return err
		}
		isLast := c.IsLast(len(plan))
		if err := s.client.UploadChunk(ctx, container, fileUUID, c, isLast, data); err != nil {
			return fmt.Errorf("error uploading chunk %d of %s: %w", c.Index, f.Name, err)
		}
		tracker.Add(c.Size)
		s.log.Debug(ctx, "chunk uploaded", "file", f.Name, "index", c.Index, "size", c.Size, "last", isLast)
		return nil
	}

	if s.opts.Workers == 1 {
		for _, c := range plan {
			if err := send(ctx, c); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for _, c := range plan[:len(plan)-1] {
		g.Go(func() error { return send(gctx, c) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// The final chunk closes the file on the service side.
	return send(ctx, last)
}

// readChunk reads exactly c.Size bytes at c.Offset.
func readChunk(r io.ReaderAt, path string, c chunks.Chunk) ([]byte, error) {
	buf := make([]byte, c.Size)
	if _, err := io.ReadFull(io.NewSectionReader(r, c.Offset, c.Size), buf); err != nil {
		return nil, &common.FileError{Op: "read", Path: path, Err: fmt.Errorf("chunk %d: %w", c.Index, err)}
	}
	return buf, nil
}
