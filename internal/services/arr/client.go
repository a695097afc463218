package arr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dweagle/extras/internal/services"
)

// Kind identifies which *arr application a client talks to.
type Kind string

const (
	KindRadarr Kind = "radarr"
	KindSonarr Kind = "sonarr"
)

// DefaultTimeout bounds each request when the caller does not supply one.
const DefaultTimeout = 10 * time.Second

// HTTPDoer describes the HTTP client used by Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client reads library contents from one Radarr or Sonarr instance.
type Client struct {
	kind    Kind
	name    string
	baseURL string
	apiKey  string
	client  HTTPDoer
}

// New constructs a client. timeout <= 0 selects DefaultTimeout.
func New(kind Kind, name, baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewWithHTTPClient(kind, name, baseURL, apiKey, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient constructs a client around a caller-supplied HTTP client.
func NewWithHTTPClient(kind Kind, name, baseURL, apiKey string, client HTTPDoer) (*Client, error) {
	if kind != KindRadarr && kind != KindSonarr {
		return nil, services.Wrap(services.ErrConfiguration, string(kind), "init", fmt.Sprintf("unsupported kind %q", kind), nil)
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	apiKey = strings.TrimSpace(apiKey)
	if baseURL == "" || apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, string(kind), "init", "url and api key are required", nil)
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if strings.TrimSpace(name) == "" {
		name = string(kind)
	}
	return &Client{kind: kind, name: name, baseURL: baseURL, apiKey: apiKey, client: client}, nil
}

// Name returns the configured instance name.
func (c *Client) Name() string { return c.name }

// Kind returns the application type.
func (c *Client) Kind() Kind { return c.kind }

// Movies returns every movie known to a Radarr instance.
func (c *Client) Movies(ctx context.Context) ([]Movie, error) {
	if err := c.require(KindRadarr, "movies"); err != nil {
		return nil, err
	}
	var movies []Movie
	if err := c.get(ctx, "/api/v3/movie", "movies", &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Collections returns every collection known to a Radarr instance.
func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	if err := c.require(KindRadarr, "collections"); err != nil {
		return nil, err
	}
	var collections []Collection
	if err := c.get(ctx, "/api/v3/collection", "collections", &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

// Series returns every series known to a Sonarr instance.
func (c *Client) Series(ctx context.Context) ([]Series, error) {
	if err := c.require(KindSonarr, "series"); err != nil {
		return nil, err
	}
	var series []Series
	if err := c.get(ctx, "/api/v3/series", "series", &series); err != nil {
		return nil, err
	}
	return series, nil
}

func (c *Client) require(kind Kind, operation string) error {
	if c.kind != kind {
		return services.Wrap(services.ErrConfiguration, c.name, operation, fmt.Sprintf("not supported by %s", c.kind), nil)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, operation string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, c.name, operation, "build request", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrUnavailable, c.name, operation, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return services.Wrap(services.MarkerForStatus(resp.StatusCode), c.name, operation, msg, nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrUnexpectedResponse, c.name, operation, "decode response", err)
	}
	return nil
}
