package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/swish/internal/chunks"
	"github.com/dmitrijs2005/swish/internal/client/models"
	"github.com/dmitrijs2005/swish/internal/common"
	"github.com/dmitrijs2005/swish/internal/logging"
	"github.com/dmitrijs2005/swish/internal/netx"
	"github.com/samber/lo"
)

// Options locates the service.
type Options struct {
	// APIBaseURL is the root of the JSON API, e.g. https://www.swisstransfer.com/api.
	APIBaseURL string
	// ServiceDomain is the host share links are issued on.
	ServiceDomain string
}

type SwissTransferClient struct {
	transport *netx.Transport
	opts      Options
	log       logging.Logger
}

var _ Client = (*SwissTransferClient)(nil)

func NewSwissTransferClient(transport *netx.Transport, opts Options, log logging.Logger) *SwissTransferClient {
	if log == nil {
		log = logging.Nop()
	}
	opts.APIBaseURL = strings.TrimRight(opts.APIBaseURL, "/")
	return &SwissTransferClient{transport: transport, opts: opts, log: log}
}

func (c *SwissTransferClient) endpoint(path string) string {
	return c.opts.APIBaseURL + "/" + path
}

func (c *SwissTransferClient) ShareLink(linkUUID string) string {
	return BuildShareLink(c.opts.ServiceDomain, linkUUID)
}

func (c *SwissTransferClient) postJSON(ctx context.Context, op, url string, payload any) (*netx.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}

	resp, err := c.transport.Do(ctx, netx.Request{
		Method: http.MethodPost,
		URL:    url,
		Header: netx.JSONHeaders(),
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, common.NewStatusError(op, url, resp.StatusCode, resp.Body)
	}
	return resp, nil
}

func buildContainerRequest(files []models.LocalFile, params models.TransferParameters) (*containerRequest, error) {
	filesJSON, err := json.Marshal(lo.Map(files, func(f models.LocalFile, _ int) containerFile {
		return containerFile{Name: f.Name, Size: f.Size}
	}))
	if err != nil {
		return nil, err
	}

	recipients := params.RecipientEmails
	if recipients == nil {
		recipients = []string{}
	}
	recipientsJSON, err := json.Marshal(recipients)
	if err != nil {
		return nil, err
	}

	return &containerRequest{
		Duration:         params.Duration,
		AuthorEmail:      params.AuthorEmail,
		Password:         params.Password,
		Message:          params.Message,
		SizeOfUpload:     lo.SumBy(files, func(f models.LocalFile) int64 { return f.Size }),
		NumberOfDownload: params.NumberOfDownloads,
		NumberOfFile:     len(files),
		Lang:             params.Language,
		Recaptcha:        common.RecaptchaPlaceholder,
		Files:            string(filesJSON),
		RecipientsEmails: string(recipientsJSON),
	}, nil
}

func (c *SwissTransferClient) CreateContainer(ctx context.Context, files []models.LocalFile, params models.TransferParameters) (*models.Container, error) {
	const op = "create container"

	payload, err := buildContainerRequest(files, params)
	if err != nil {
		return nil, fmt.Errorf("%s: encode files: %w", op, err)
	}

	resp, err := c.postJSON(ctx, op, c.endpoint("containers"), payload)
	if err != nil {
		return nil, err
	}

	var cr containerResponse
	if err := json.Unmarshal(resp.Body, &cr); err != nil {
		return nil, &common.DecodeError{Op: op, Err: err}
	}
	switch {
	case cr.UploadHost == "":
		return nil, &common.DecodeError{Op: op, Err: errors.New("missing uploadHost")}
	case cr.Container.UUID == "":
		return nil, &common.DecodeError{Op: op, Err: errors.New("missing container.UUID")}
	case len(cr.FilesUUID) != len(files):
		return nil, &common.DecodeError{Op: op, Err: fmt.Errorf("got %d file UUIDs for %d files", len(cr.FilesUUID), len(files))}
	}

	c.log.Debug(ctx, "container created", "container", cr.Container.UUID, "upload_host", cr.UploadHost)

	return &models.Container{
		UploadHost: cr.UploadHost,
		UUID:       cr.Container.UUID,
		FileUUIDs:  cr.FilesUUID,
	}, nil
}

func chunkURL(container *models.Container, fileUUID string, chunk chunks.Chunk, last bool) string {
	flag := 0
	if last {
		flag = 1
	}
	return fmt.Sprintf("https://%s/api/uploadChunk/%s/%s/%d/%d", container.UploadHost, container.UUID, fileUUID, chunk.Index, flag)
}

func (c *SwissTransferClient) UploadChunk(ctx context.Context, container *models.Container, fileUUID string, chunk chunks.Chunk, last bool, data []byte) error {
	url := chunkURL(container, fileUUID, chunk, last)

	resp, err := c.transport.Do(ctx, netx.Request{
		Method: http.MethodPost,
		URL:    url,
		Header: http.Header{"Content-Type": {"application/octet-stream"}},
		Body:   data,
	})
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return common.NewStatusError("upload chunk", url, resp.StatusCode, resp.Body)
	}
	return nil
}

func (c *SwissTransferClient) CompleteUpload(ctx context.Context, containerUUID, lang string) (string, error) {
	const op = "complete upload"

	resp, err := c.postJSON(ctx, op, c.endpoint("uploadComplete"), completeRequest{UUID: containerUUID, Lang: lang})
	if err != nil {
		return "", err
	}

	var cr completeResponse
	if err := json.Unmarshal(resp.Body, &cr); err != nil {
		return "", &common.DecodeError{Op: op, Err: err}
	}
	if len(cr) == 0 || cr[0].LinkUUID == "" {
		return "", &common.DecodeError{Op: op, Err: errors.New("missing [0].linkUUID")}
	}
	return cr[0].LinkUUID, nil
}

func classifyLinkMessage(msg string) error {
	switch strings.ToLower(strings.TrimSpace(msg)) {
	case common.MessageNeedPassword:
		return common.ErrPasswordRequired
	case common.MessageWrongPassword:
		return common.ErrInvalidPassword
	case common.MessageScanPending, common.MessageInProgress:
		return common.ErrScanPending
	}
	return nil
}

func (c *SwissTransferClient) GetLink(ctx context.Context, linkID, password string) (*models.RemoteManifest, error) {
	const op = "get link"
	linkURL := c.endpoint("links/" + url.PathEscape(linkID))

	var header http.Header
	if password != "" {
		header = http.Header{"Authorization": {base64.StdEncoding.EncodeToString([]byte(password))}}
	}

	resp, err := c.transport.Do(ctx, netx.Request{Method: http.MethodGet, URL: linkURL, Header: header})
	if err != nil {
		return nil, err
	}

	var lr linkResponse
	decodeErr := json.Unmarshal(resp.Body, &lr)
	if decodeErr == nil {
		if gate := classifyLinkMessage(lr.Data.Message); gate != nil {
			c.log.Debug(ctx, "link gated", "link", linkID, "message", lr.Data.Message, "status", resp.StatusCode)
			return nil, gate
		}
	}

	if !resp.OK() {
		return nil, common.NewStatusError(op, linkURL, resp.StatusCode, resp.Body)
	}
	if decodeErr != nil {
		return nil, &common.DecodeError{Op: op, Err: decodeErr}
	}

	d := lr.Data
	switch {
	case d.DownloadHost == "":
		return nil, &common.DecodeError{Op: op, Err: errors.New("missing data.downloadHost")}
	case d.LinkUUID == "":
		return nil, &common.DecodeError{Op: op, Err: errors.New("missing data.linkUUID")}
	case d.Container.UUID == "":
		return nil, &common.DecodeError{Op: op, Err: errors.New("missing data.container.UUID")}
	}

	files := make([]models.RemoteFile, 0, len(d.Container.Files))
	for i, f := range d.Container.Files {
		if f.UUID == "" {
			return nil, &common.DecodeError{Op: op, Err: fmt.Errorf("missing UUID of file %d", i)}
		}
		files = append(files, models.RemoteFile{
			UUID:            f.UUID,
			Name:            f.FileName,
			SizeBytes:       f.FileSizeInBytes,
			MimeType:        f.MimeType,
			CreatedDate:     f.CreatedDate,
			ExpiredDate:     f.ExpiredDate,
			DownloadCounter: f.DownloadCounter,
			VirusScan:       f.EVirus,
		})
	}

	return &models.RemoteManifest{
		DownloadHost:  d.DownloadHost,
		LinkUUID:      d.LinkUUID,
		ContainerUUID: d.Container.UUID,
		NeedsPassword: bool(d.Container.NeedPassword),
		Files:         files,
	}, nil
}

func (c *SwissTransferClient) GenerateDownloadToken(ctx context.Context, password, containerUUID, fileUUID string) (string, error) {
	const op = "generate download token"

	resp, err := c.postJSON(ctx, op, c.endpoint("generateDownloadToken"), tokenRequest{
		Password:      password,
		ContainerUUID: containerUUID,
		FileUUID:      fileUUID,
	})
	if err != nil {
		return "", err
	}

	token := decodeToken(resp.Body)
	if token == "" {
		return "", &common.DecodeError{Op: op, Err: errors.New("empty token")}
	}
	return token, nil
}

// DownloadURL is the effective URL of one file; the token is only appended
// for password-protected manifests.
func DownloadURL(manifest *models.RemoteManifest, file models.RemoteFile, token string) string {
	u := manifest.DownloadBaseURL() + "/" + url.PathEscape(file.UUID)
	if manifest.NeedsPassword {
		u += "?token=" + url.QueryEscape(token)
	}
	return u
}

// translateDownloadStatus is the only place download status codes are
// interpreted. The service does not document its errors here; a 500 has
// so far always meant the download quota was used up.
func translateDownloadStatus(url string, status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusInternalServerError:
		return fmt.Errorf("%w (status %d from %s)", common.ErrDownloadNumberExceeded, status, url)
	default:
		return common.NewStatusError("download", url, status, body)
	}
}

func (c *SwissTransferClient) OpenDownload(ctx context.Context, manifest *models.RemoteManifest, file models.RemoteFile, token string) (io.ReadCloser, error) {
	url := DownloadURL(manifest, file, token)

	resp, err := c.transport.Stream(ctx, netx.Request{Method: http.MethodGet, URL: url})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
		return nil, translateDownloadStatus(url, resp.StatusCode, body)
	}
	return resp.Body, nil
}
