package services

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/dmitrijs2005/swish/internal/chunks"
	"github.com/dmitrijs2005/swish/internal/client/client"
	"github.com/dmitrijs2005/swish/internal/client/models"
	"github.com/dmitrijs2005/swish/internal/client/repositories/history"
)

type chunkCall struct {
	FileUUID string
	Index    int64
	Last     bool
	Data     []byte
}

type fakeClient struct {
	mu sync.Mutex

	// upload presets
	Container    *models.Container
	CreateErr    error
	ChunkErr     func(c chunks.Chunk) error
	LinkUUID     string
	CompleteErr  error
	completeLang string
	Chunks       []chunkCall

	// download presets
	LinkResults []linkResult
	linkCalls   int
	passwords   []string
	Tokens      map[string]string
	TokenErr    error
	tokenCalls  []string
	Content     map[string][]byte
	OpenErr     error
	openTokens  []string
}

type linkResult struct {
	Manifest *models.RemoteManifest
	Err      error
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) CreateContainer(ctx context.Context, files []models.LocalFile, params models.TransferParameters) (*models.Container, error) {
	return f.Container, f.CreateErr
}

func (f *fakeClient) UploadChunk(ctx context.Context, container *models.Container, fileUUID string, c chunks.Chunk, last bool, data []byte) error {
	if f.ChunkErr != nil {
		if err := f.ChunkErr(c); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Chunks = append(f.Chunks, chunkCall{FileUUID: fileUUID, Index: c.Index, Last: last, Data: bytes.Clone(data)})
	return nil
}

func (f *fakeClient) CompleteUpload(ctx context.Context, containerUUID, lang string) (string, error) {
	f.completeLang = lang
	return f.LinkUUID, f.CompleteErr
}

func (f *fakeClient) GetLink(ctx context.Context, linkID, password string) (*models.RemoteManifest, error) {
	f.passwords = append(f.passwords, password)
	i := f.linkCalls
	if i >= len(f.LinkResults) {
		i = len(f.LinkResults) - 1
	}
	f.linkCalls++
	return f.LinkResults[i].Manifest, f.LinkResults[i].Err
}

func (f *fakeClient) GenerateDownloadToken(ctx context.Context, password, containerUUID, fileUUID string) (string, error) {
	f.tokenCalls = append(f.tokenCalls, fileUUID)
	if f.TokenErr != nil {
		return "", f.TokenErr
	}
	return f.Tokens[fileUUID], nil
}

func (f *fakeClient) OpenDownload(ctx context.Context, manifest *models.RemoteManifest, file models.RemoteFile, token string) (io.ReadCloser, error) {
	f.openTokens = append(f.openTokens, token)
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	return io.NopCloser(bytes.NewReader(f.Content[file.UUID])), nil
}

func (f *fakeClient) ShareLink(linkUUID string) string {
	return client.BuildShareLink("www.swisstransfer.com", linkUUID)
}

// memHistory is an in-memory history.Repository.
type memHistory struct {
	records []history.Record
	err     error
}

func (m *memHistory) Add(ctx context.Context, r *history.Record) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, *r)
	return nil
}

func (m *memHistory) List(ctx context.Context) ([]history.Record, error) {
	return m.records, m.err
}

func (m *memHistory) Clear(ctx context.Context) error {
	m.records = nil
	return m.err
}

func (m *memHistory) Close() error { return nil }
