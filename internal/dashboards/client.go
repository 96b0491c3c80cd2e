package dashboards

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/osdash/opensearch-dashboards-exporter/internal/config"
)

const (
	statusPath = "/api/status"
	statsPath  = "/api/stats"
)

// Client fetches the status and stats documents from a single OpenSearch
// Dashboards instance. It is safe for concurrent use; Reconfigure may be
// called while fetches are in flight.
type Client struct {
	mu    sync.RWMutex
	state *clientState
}

// clientState bundles everything derived from one UpstreamConfig so a
// reload swaps all of it atomically.
type clientState struct {
	baseURL string
	httpc   *http.Client
}

// New builds a Client for the given upstream.
func New(cfg config.UpstreamConfig) *Client {
	return &Client{state: newState(cfg)}
}

func newState(cfg config.UpstreamConfig) *clientState {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.TLS.InsecureSkipVerify, //nolint:gosec // user-configured
		},
	}
	return &clientState{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		httpc: &http.Client{
			Transport: &authRoundTripper{base: transport, auth: cfg.Auth},
			Timeout:   cfg.Timeout,
		},
	}
}

// Reconfigure replaces the upstream settings. Fetches already in flight
// finish against the client they started with.
func (c *Client) Reconfigure(cfg config.UpstreamConfig) {
	state := newState(cfg)
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

// BaseURL returns the upstream base URL currently in effect.
func (c *Client) BaseURL() string {
	return c.snapshot().baseURL
}

func (c *Client) snapshot() *clientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// authRoundTripper adds basic auth to outgoing requests when both a
// username and a password resolve to non-empty values.
type authRoundTripper struct {
	base http.RoundTripper
	auth config.AuthConfig
}

func (rt *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	user, password := rt.auth.User(), rt.auth.Password()
	if user != "" && password != "" {
		req = req.Clone(req.Context())
		req.SetBasicAuth(user, password)
	}
	return rt.base.RoundTrip(req)
}

// Status fetches /api/status. A document without an overall state is
// reported as an error, not returned.
func (c *Client) Status(ctx context.Context) (*StatusDocument, error) {
	var doc StatusDocument
	if err := c.getJSON(ctx, statusPath, &doc); err != nil {
		return nil, err
	}
	if doc.Status == nil || doc.Status.Overall == nil {
		return nil, fmt.Errorf("dashboards: %s: missing status.overall section", statusPath)
	}
	return &doc, nil
}

// Stats fetches /api/stats. A body with none of the known sections is
// reported as an error: it decodes, but carries nothing to export.
func (c *Client) Stats(ctx context.Context) (*StatsDocument, error) {
	var doc StatsDocument
	if err := c.getJSON(ctx, statsPath, &doc); err != nil {
		return nil, err
	}
	if doc.ConcurrentConnections == nil && doc.Process == nil && doc.OS == nil &&
		doc.ResponseTimes == nil && doc.Requests == nil {
		return nil, fmt.Errorf("dashboards: %s: no recognized stats sections", statsPath)
	}
	return &doc, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v interface{}) error {
	state := c.snapshot()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, state.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("dashboards: %s: build request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := state.httpc.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("dashboards: %s: timed out after %s: %w", path, state.httpc.Timeout, err)
		}
		return fmt.Errorf("dashboards: %s: %w", path, err)
	}
	defer resp.Body.Close()

	// Non-200 bodies are not trusted: Dashboards serves 503 while red, and
	// proxies serve HTML error pages.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dashboards: %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("dashboards: %s: decode JSON: %w", path, err)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
