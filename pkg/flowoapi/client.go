package flowoapi

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

	"github.com/flowohq/storefront-gateway/pkg/config"
	"github.com/flowohq/storefront-gateway/pkg/logger"
	"github.com/flowohq/storefront-gateway/pkg/metrics"
)

// Client talks to the remote Flowo REST API. It owns no domain types; the
// internal services define their wire structs and decode through the
// envelope helpers below.
type Client struct {
	baseURL string
	http    *http.Client
	logg    *logger.Logger
	metrics *metrics.RequestMetrics
}

func New(cfg config.UpstreamConfig, logg *logger.Logger, m *metrics.RequestMetrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logg:    logg,
		metrics: m,
	}
}

// NewWithHTTPClient is used by tests to point the client at an httptest server.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type credentialsKey struct{}

// WithCredentials carries the caller's Cookie header so the gateway forwards
// the session to the remote API, mirroring fetch(..., credentials: "include").
func WithCredentials(ctx context.Context, cookieHeader string) context.Context {
	if strings.TrimSpace(cookieHeader) == "" {
		return ctx
	}
	return context.WithValue(ctx, credentialsKey{}, cookieHeader)
}

func credentialsFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(credentialsKey{}).(string); ok {
		return v
	}
	return ""
}

// DoJSON performs one request against the remote API and returns the raw
// response body. Non-2xx responses come back as a *StatusError whose message
// follows the storefront convention: server message, else raw body, else
// "HTTP <status>".
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookies := credentialsFromContext(ctx); cookies != "" {
		req.Header.Set("Cookie", cookies)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	c.metrics.ObserveUpstream(endpointLabel(method, path), time.Since(start))
	if err != nil {
		c.metrics.IncUpstreamFailure(endpointLabel(method, path))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		c.metrics.IncUpstreamFailure(endpointLabel(method, path))
		if c.logg != nil {
			ctx = c.logg.WithFields(ctx, map[string]any{
				"upstream_status": res.StatusCode,
				"upstream_path":   path,
			})
			c.logg.Warn(ctx, "upstream request failed")
		}
		return nil, newStatusError(res.StatusCode, raw)
	}

	return raw, nil
}

func endpointLabel(method, path string) string {
	return strings.ToLower(method) + " " + path
}
