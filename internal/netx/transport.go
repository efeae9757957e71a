// Package netx is the HTTP transport shared by every call to the remote
// service: baseline headers, per-call header overlays, timeouts and the
// bounded POST retry policy.
package netx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/swish/internal/common"
	"github.com/dmitrijs2005/swish/internal/logging"
	"github.com/sethvargo/go-retry"
)

// Options controls the retry policy for POST requests.
type Options struct {
	// MaxRetries is the number of additional attempts after the first one.
	MaxRetries uint64
	// RetryBaseDelay is the first backoff delay; it doubles on every retry.
	RetryBaseDelay time.Duration
	// RetryMaxDelay caps a single backoff delay.
	RetryMaxDelay time.Duration
}

// DefaultOptions mirrors the service's historical "3 more tries" policy,
// with backoff added between attempts.
func DefaultOptions() Options {
	return Options{
		MaxRetries:     3,
		RetryBaseDelay: 500 * time.Millisecond,
		RetryMaxDelay:  10 * time.Second,
	}
}

// Request is a single call. Header is merged after the baseline headers.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is a fully read response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSONHeaders is the overlay for requests carrying a JSON body.
func JSONHeaders() http.Header {
	h := make(http.Header)
	h.Add("Content-Type", "application/json")
	h.Add("Accept", "application/json")
	return h
}

// NewHTTPClient returns a client with connect and response-header timeouts.
// There is no overall request timeout since downloads may be arbitrarily
// large; cancellation goes through the request context.
func NewHTTPClient(connectTimeout, responseHeaderTimeout time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.DialContext = dialer.DialContext
	tr.TLSHandshakeTimeout = connectTimeout
	tr.ResponseHeaderTimeout = responseHeaderTimeout

	return &http.Client{Transport: tr}
}

type Transport struct {
	client *http.Client
	opts   Options
	log    logging.Logger
}

func New(client *http.Client, opts Options, log logging.Logger) *Transport {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Transport{client: client, opts: opts, log: log}
}

var errRetryableStatus = errors.New("retryable status")

// Do executes req and reads the whole body. Only connection-level failures
// are returned as errors; status codes are left to the caller.
//
// POST requests answered with status >= 400 are retried up to
// Options.MaxRetries more times with exponential backoff. When the retries
// are exhausted the last response is returned unmodified. GET is never
// retried.
func (t *Transport) Do(ctx context.Context, req Request) (*Response, error) {
	if req.Method != http.MethodPost {
		return t.once(ctx, req)
	}

	var last *Response
	attempt := 0
	err := retry.Do(ctx, t.backoff(), func(ctx context.Context) error {
		attempt++
		resp, err := t.once(ctx, req)
		if err != nil {
			return err
		}
		last = resp
		if resp.StatusCode >= http.StatusBadRequest {
			t.log.Warn(ctx, "request failed, retrying", "url", req.URL, "status", resp.StatusCode, "attempt", attempt)
			return retry.RetryableError(errRetryableStatus)
		}
		return nil
	})

	switch {
	case err == nil, errors.Is(err, errRetryableStatus):
		return last, nil
	default:
		var te *common.TransportError
		if errors.As(err, &te) {
			return nil, err
		}
		return nil, &common.TransportError{Method: req.Method, URL: req.URL, Err: err}
	}
}

// Stream executes req and hands back the open response; the caller must
// close its body. No retry is attempted.
func (t *Transport) Stream(ctx context.Context, req Request) (*http.Response, error) {
	httpReq, err := t.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	t.log.Debug(ctx, "stream request", "method", req.Method, "url", req.URL)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &common.TransportError{Method: req.Method, URL: req.URL, Err: err}
	}

	t.log.Debug(ctx, "stream response", "url", req.URL, "status", resp.StatusCode, "length", resp.ContentLength)
	return resp, nil
}

func (t *Transport) once(ctx context.Context, req Request) (*Response, error) {
	resp, err := t.Stream(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &common.TransportError{Method: req.Method, URL: req.URL, Err: err}
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

func (t *Transport) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil || req.Method == http.MethodPost {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, &common.TransportError{Method: req.Method, URL: req.URL, Err: err}
	}

	httpReq.Header.Set("User-Agent", common.UserAgent)
	httpReq.Header.Set("Cookie", common.Cookie)
	httpReq.Header.Set("Referer", common.Referer)
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	return httpReq, nil
}

func (t *Transport) backoff() retry.Backoff {
	base := t.opts.RetryBaseDelay
	if base <= 0 {
		base = time.Nanosecond
	}
	maxDelay := t.opts.RetryMaxDelay
	if maxDelay < base {
		maxDelay = base
	}
	return retry.WithMaxRetries(t.opts.MaxRetries, retry.WithCappedDuration(maxDelay, retry.NewExponential(base)))
}
