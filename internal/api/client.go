package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/havkom/fishops-bot/internal/infra/metrics"
)

// Client is the typed REST client for the facility backend. Reads are
// deduplicated (always-stale: every settled read hits the network again, but
// concurrent identical reads share one flight) and mutations carry an
// idempotency key so a retried POST cannot double-apply.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *slog.Logger
	reads   singleflight.Group
}

func New(baseURL, token string, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		// No client-side timeout: superseded requests are cancelled via
		// context, everything else rides on transport defaults.
		http: &http.Client{},
		log:  log,
	}
}

// Ping is used by the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	return c.get(ctx, "/health", nil, nil)
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

var pathIDs = regexp.MustCompile(`/\d+`)

// routeLabel collapses interpolated ids to a template so the metric vectors
// keep a bounded label set.
func routeLabel(path string) string {
	return pathIDs.ReplaceAllString(path, "/:id")
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	key := path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}

	// The flight runs on the initiating caller's context. If that caller
	// aborts, the key is forgotten so the next read starts a fresh flight;
	// concurrent waiters see the abort as a cancellation, and their screens
	// refetch anyway (reads are always stale).
	ch := c.reads.DoChan(key, func() (any, error) {
		return c.do(ctx, http.MethodGet, path, query, nil)
	})

	select {
	case <-ctx.Done():
		c.reads.Forget(key)
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			// A shared flight dies with the caller that started it. When our
			// own context is still live, the cancellation was not ours, so
			// refetch once instead of surfacing someone else's abort.
			if IsCanceled(res.Err) && ctx.Err() == nil {
				c.reads.Forget(key)
				raw, err := c.do(ctx, http.MethodGet, path, query, nil)
				if err != nil {
					return err
				}
				if out == nil {
					return nil
				}
				return json.Unmarshal(raw, out)
			}
			return res.Err
		}
		if out == nil {
			return nil
		}
		return json.Unmarshal(res.Val.([]byte), out)
	}
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	raw, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader) ([]byte, error) {
	if c.tokenExpired() {
		return nil, ErrTokenExpired
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	route := routeLabel(path)
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() != nil {
			metrics.BackendRequests.WithLabelValues(method, route, "canceled").Inc()
			return nil, ctx.Err()
		}
		metrics.BackendRequests.WithLabelValues(method, route, "transport_error").Inc()
		c.log.Error("backend request failed", "method", method, "path", path, "err", err)
		return nil, fmt.Errorf("backend unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	// 4xx is a business-rule rejection carrying a user-facing message; 5xx
	// falls through to the generic failure path like any transport fault.
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		metrics.BackendRequests.WithLabelValues(method, route, "api_error").Inc()
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Error
		}
		c.log.Warn("backend rejected request",
			"method", method, "path", path, "status", resp.StatusCode, "message", msg)
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}
	if resp.StatusCode >= 500 {
		metrics.BackendRequests.WithLabelValues(method, route, "transport_error").Inc()
		c.log.Error("backend failure", "method", method, "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("backend failure (status %d)", resp.StatusCode)
	}

	metrics.BackendRequests.WithLabelValues(method, route, "ok").Inc()
	return raw, nil
}
