// Package remote is the typed client of the KivuSafe HTTP API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"

	"github.com/kivusafe/portal/internal/api/metrics"
	"github.com/kivusafe/portal/internal/core/domain"
)

const (
	defaultTimeout  = 15 * time.Second
	maxErrorBody    = 512
	maxResponseBody = 4 << 20
)

// Config captures the settings required to reach the remote API.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements ports.IdentityClient, ports.RegistrationClient and
// ports.ReportClient over HTTP.
type Client struct {
	base    *url.URL
	http    *http.Client
	log     zerolog.Logger
	maxBody int64
}

// New builds a Client on a pooled transport. A default timeout is applied
// when none is provided.
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("remote: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("remote: base url %q must be absolute", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout

	return &Client{base: base, http: hc, log: log, maxBody: maxResponseBody}, nil
}

// request describes one call against the remote API.
type request struct {
	endpoint string // metric label
	method   string
	path     string
	token    string
	headers  map[string]string
	body     any
}

// response is a fully read answer from the remote API.
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool { return r.status >= 200 && r.status < 300 }

func (c *Client) do(ctx context.Context, req request) (response, error) {
	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return response{}, fmt.Errorf("%s: encode body: %w", req.endpoint, err)
		}
		body = bytes.NewReader(b)
	}

	u := c.base.JoinPath(req.path)
	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return response{}, fmt.Errorf("%s: build request: %w", req.endpoint, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.RemoteRequestDuration.WithLabelValues(req.endpoint, "transport_error").Observe(time.Since(start).Seconds())
		if ctxErr := ctx.Err(); ctxErr != nil {
			return response{}, fmt.Errorf("%s: %w", req.endpoint, ctxErr)
		}
		return response{}, fmt.Errorf("%s: %w: %v", req.endpoint, domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		metrics.RemoteRequestDuration.WithLabelValues(req.endpoint, "transport_error").Observe(time.Since(start).Seconds())
		return response{}, fmt.Errorf("%s: %w: read body: %v", req.endpoint, domain.ErrTransport, err)
	}
	if int64(len(data)) > c.maxBody {
		metrics.RemoteRequestDuration.WithLabelValues(req.endpoint, "transport_error").Observe(time.Since(start).Seconds())
		return response{}, fmt.Errorf("%s: %w: response larger than %d bytes", req.endpoint, domain.ErrTransport, c.maxBody)
	}
	metrics.RemoteRequestDuration.WithLabelValues(req.endpoint, outcome(resp.StatusCode)).Observe(time.Since(start).Seconds())

	c.log.Debug().
		Str("endpoint", req.endpoint).
		Str("method", req.method).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("remote call")

	return response{status: resp.StatusCode, body: data}, nil
}

// Ping reports whether the remote API answers at all. Any HTTP status counts.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, request{endpoint: "ping", method: http.MethodGet, path: "/"})
	return err
}

func outcome(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "ok"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return fmt.Sprintf("%dxx", status/100)
	}
}

func unexpected(op string, r response) error {
	body := strings.TrimSpace(string(r.body))
	if len(body) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut]
	}
	return &domain.RemoteError{Op: op, StatusCode: r.status, Body: body}
}
