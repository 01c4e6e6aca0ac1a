package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"backoffice/config"
	domainerrors "backoffice/internal/domain/errors"
)

// maxResponseBytes caps how much of an upstream body is buffered.
const maxResponseBytes = 8 << 20

// Client talks to the platform REST API with the authorizer installed on
// its transport.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	logger  *slog.Logger
}

// NewClient is the constructor for Client.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	baseURL, err := url.Parse(cfg.Upstream.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse upstream base URL")
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.Upstream.Timeout,
			Transport: NewAuthorizer(http.DefaultTransport, logger),
		},
		baseURL: baseURL,
		logger:  logger,
	}, nil
}

// Result is an upstream response, buffered so handlers can relay it.
type Result struct {
	Status      int
	ContentType string
	Body        []byte
}

// Successful reports whether the upstream answered 2xx.
func (r *Result) Successful() bool {
	return r.Status >= http.StatusOK && r.Status < http.StatusMultipleChoices
}

// DecodeJSON unmarshals the buffered body.
func (r *Result) DecodeJSON(v any) error {
	return errors.Wrap(json.Unmarshal(r.Body, v), "decode upstream body")
}

// Message pulls the server-provided message out of an error body, falling
// back to the given default.
func (r *Result) Message(fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(r.Body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}

	return fallback
}

// Do sends one request to the upstream API. Session failures from the
// authorizer pass through untouched so the central error handler can
// convert them into the sign-in redirect; transport failures are wrapped
// as upstream-unavailable.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body []byte, contentType string) (*Result, error) {
	target := c.resolve(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, errors.Wrap(err, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if len(body) > 0 {
		if contentType == "" {
			contentType = "application/json"
		}
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if cause := authFailure(err); cause != nil {
			return nil, cause
		}

		return nil, domainerrors.ErrUpstreamUnavailable.WrapMessage(err.Error())
	}
	defer resp.Body.Close()

	buffered, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domainerrors.ErrUpstreamUnavailable.WrapMessage("read upstream body")
	}

	return &Result{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        buffered,
	}, nil
}

// Get issues a GET with optional query passthrough.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Result, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil, "")
}

// Send issues a body-carrying request (POST/PUT/PATCH).
func (c *Client) Send(ctx context.Context, method, path string, body []byte, contentType string) (*Result, error) {
	return c.Do(ctx, method, path, nil, body, contentType)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) (*Result, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, "")
}

// resolve joins the base URL with an upstream path, tolerating the
// platform's mixed conventions (some paths already carry /api/v1).
func (c *Client) resolve(path string) *url.URL {
	joined := *c.baseURL
	joined.Path = strings.TrimSuffix(joined.Path, "/") + "/" + strings.TrimPrefix(path, "/")

	return &joined
}

// authFailure unwraps the *url.Error shell http.Client puts around
// transport errors and returns the session error, if that is what it is.
func authFailure(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	if domainerrors.IsAuthFailure(err) {
		return err
	}

	return nil
}
