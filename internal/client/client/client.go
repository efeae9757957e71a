package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/swish/internal/chunks"
	"github.com/dmitrijs2005/swish/internal/client/models"
)

// Client is the set of remote operations the transfer services rely on.
type Client interface {
	// CreateContainer negotiates a container for files, in order.
	CreateContainer(ctx context.Context, files []models.LocalFile, params models.TransferParameters) (*models.Container, error)
	// UploadChunk sends one chunk of the file identified by fileUUID.
	UploadChunk(ctx context.Context, container *models.Container, fileUUID string, chunk chunks.Chunk, last bool, data []byte) error
	// CompleteUpload finalizes the container and returns its link UUID.
	CompleteUpload(ctx context.Context, containerUUID, lang string) (string, error)
	// GetLink performs one resolution of a link id. An empty password sends
	// no Authorization header.
	GetLink(ctx context.Context, linkID, password string) (*models.RemoteManifest, error)
	// GenerateDownloadToken exchanges a password for a one-file token.
	GenerateDownloadToken(ctx context.Context, password, containerUUID, fileUUID string) (string, error)
	// OpenDownload starts the byte stream of one file. The caller closes it.
	OpenDownload(ctx context.Context, manifest *models.RemoteManifest, file models.RemoteFile, token string) (io.ReadCloser, error)
	// ShareLink builds the public URL for a link UUID.
	ShareLink(linkUUID string) string
}
