package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/getsentry/raven-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
)

const (
	// MaxResumeSize is the largest resume accepted before transmission.
	MaxResumeSize = 5 * 1024 * 1024

	defaultTimeout = 15 * time.Second
)

var allowedResumeExt = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// TokenSource supplies the bearer credential for protected calls. An empty
// string means no credential is attached.
type TokenSource interface {
	Token() string
}

// Config carries the client dependencies. OnUnauthorized, when set, runs
// after any 401 response so the session can be discarded immediately.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	Tokens         TokenSource
	Logger         zerolog.Logger
	OnUnauthorized func()
	SentryDSN      string
}

// Client is the single point of contact with the backend REST API. It
// attaches credentials, enforces the request timeout and maps transport and
// status failures to error kinds.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	logger         zerolog.Logger
	onUnauthorized func()
	captureServer  bool
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if cfg.SentryDSN != "" {
		raven.SetDSN(cfg.SentryDSN)
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout},
		tokens:         cfg.Tokens,
		logger:         cfg.Logger,
		onUnauthorized: cfg.OnUnauthorized,
		captureServer:  cfg.SentryDSN != "",
	}
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, out)
}

// PostMultipart uploads a single file under the given form field. The file is
// checked against the resume constraints before any bytes are sent.
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, data []byte, out interface{}) error {
	if err := ValidateResumeFile(filename, int64(len(data))); err != nil {
		return err
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filepath.Base(filename))
	if err != nil {
		return errors.Wrap(err, "unable to create multipart field")
	}
	if _, err := part.Write(data); err != nil {
		return errors.Wrap(err, "unable to write multipart payload")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "unable to finalise multipart payload")
	}
	return c.do(ctx, http.MethodPost, path, w.FormDataContentType(), &buf, out)
}

// GetBlob fetches an opaque binary body, returning it with its content type.
// Used for resume retrieval; the contents are never parsed client-side.
func (c *Client) GetBlob(ctx context.Context, path string) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, "", err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", c.transportError(err, req)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, "", c.statusError(res, req)
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", errors.Wrap(err, "unable to read response body")
	}
	return data, res.Header.Get("Content-Type"), nil
}

// ValidateResumeFile applies the client-side courtesy checks on a resume
// before transmission. The backend re-validates; this is not a security
// boundary.
func ValidateResumeFile(filename string, size int64) error {
	v := &ValidationError{}
	if filename == "" || size == 0 {
		v.Add("resume", "please upload your resume")
		return v
	}
	if !allowedResumeExt[strings.ToLower(filepath.Ext(filename))] {
		v.Add("resume", "only PDF and Word documents are allowed")
	}
	if size > MaxResumeSize {
		v.Add("resume", "file size must be less than 5MB")
	}
	return v.ErrOrNil()
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return errors.Wrapf(err, "unable to encode %s %s request body", method, path)
		}
	}
	return c.do(ctx, method, path, "application/json", &buf, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(err, req)
	}
	defer res.Body.Close()
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", res.StatusCode).
		Str("request_id", req.Header.Get("X-Request-ID")).
		Dur("took", time.Since(start)).
		Msg("api call")
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return c.statusError(res, req)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "unable to decode %s %s response", method, path)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to build request for %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", ksuid.New().String())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if tk := c.tokens.Token(); tk != "" {
			req.Header.Set("Authorization", "Bearer "+tk)
		}
	}
	return req, nil
}

func (c *Client) transportError(err error, req *http.Request) error {
	kind := KindUnreachable
	if isTimeout(err) {
		kind = KindTimeout
	}
	c.logger.Warn().
		Str("method", req.Method).
		Stringer("url", req.URL).
		Err(err).
		Msg("transport failure")
	return &Error{
		Kind:      kind,
		RequestID: req.Header.Get("X-Request-ID"),
		Err:       err,
	}
}

func (c *Client) statusError(res *http.Response, req *http.Request) error {
	var payload struct {
		Message string `json:"message"`
	}
	// best effort, error bodies are not always JSON
	_ = json.NewDecoder(io.LimitReader(res.Body, 1<<16)).Decode(&payload)

	apiErr := &Error{
		Kind:       kindForStatus(res.StatusCode),
		StatusCode: res.StatusCode,
		Message:    payload.Message,
		RequestID:  req.Header.Get("X-Request-ID"),
	}
	if apiErr.Kind == KindUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	if apiErr.Kind == KindServer && c.captureServer {
		raven.CaptureError(fmt.Errorf("api %s %s: %d %s", req.Method, req.URL.Path, res.StatusCode, payload.Message), map[string]string{
			"request_id": apiErr.RequestID,
		})
	}
	return apiErr
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	case status >= 500:
		return KindServer
	}
	return KindUnknown
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	type timeouter interface{ Timeout() bool }
	var t timeouter
	return errors.As(err, &t) && t.Timeout()
}
