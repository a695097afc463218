package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Searcher defines the TMDB operations used by the remote matcher.
type Searcher interface {
	SearchMovie(ctx context.Context, query string, opts SearchOptions) (*Response, error)
	SearchTV(ctx context.Context, query string, opts SearchOptions) (*Response, error)
	SearchCollection(ctx context.Context, query string) (*Response, error)
	GetTVExternalIDs(ctx context.Context, showID int64) (*ExternalIDs, error)
	GetCollectionTranslations(ctx context.Context, collectionID int64) (*Collection, error)
}

// SearchOptions contains optional search parameters.
type SearchOptions struct {
	Year int `json:"year,omitempty"`
}

// CacheKey returns a stable string representation for caching.
func (o SearchOptions) CacheKey() string {
	return "y=" + strconv.Itoa(o.Year)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchMovie searches movies, filtering on primary release year when set.
func (c *Client) SearchMovie(ctx context.Context, query string, opts SearchOptions) (*Response, error) {
	params, err := searchParams(query)
	if err != nil {
		return nil, err
	}
	if opts.Year > 0 {
		params.Set("primary_release_year", strconv.Itoa(opts.Year))
	}
	var payload Response
	if err := c.get(ctx, "/search/movie", params, "movie search", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SearchTV searches TV shows, filtering on first air date year when set.
func (c *Client) SearchTV(ctx context.Context, query string, opts SearchOptions) (*Response, error) {
	params, err := searchParams(query)
	if err != nil {
		return nil, err
	}
	if opts.Year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(opts.Year))
	}
	var payload Response
	if err := c.get(ctx, "/search/tv", params, "tv search", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SearchCollection searches collections. TMDB offers no year filter here.
func (c *Client) SearchCollection(ctx context.Context, query string) (*Response, error) {
	params, err := searchParams(query)
	if err != nil {
		return nil, err
	}
	var payload Response
	if err := c.get(ctx, "/search/collection", params, "collection search", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetTVExternalIDs fetches the external identifiers (TVDB, IMDb) of a show.
func (c *Client) GetTVExternalIDs(ctx context.Context, showID int64) (*ExternalIDs, error) {
	if showID <= 0 {
		return nil, errors.New("show id must be positive")
	}
	var payload ExternalIDs
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/external_ids", showID), url.Values{}, "tv external ids", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetCollectionTranslations fetches collection details with translations
// appended.
func (c *Client) GetCollectionTranslations(ctx context.Context, collectionID int64) (*Collection, error) {
	if collectionID <= 0 {
		return nil, errors.New("collection id must be positive")
	}
	params := url.Values{}
	params.Set("append_to_response", "translations")
	var payload Collection
	if err := c.get(ctx, fmt.Sprintf("/collection/%d", collectionID), params, "collection translations", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func searchParams(query string) (url.Values, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("page", "1")
	return params, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, label string, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("tmdb %s returned %d (latency=%v)", label, resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb %s: %w", label, err)
	}
	return nil
}
