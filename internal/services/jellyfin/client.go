package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dweagle/extras/internal/media"
	"github.com/dweagle/extras/internal/services"
)

const (
	// DefaultTimeout bounds each page request.
	DefaultTimeout = 10 * time.Second
	// DefaultPageSize is the Limit sent when the caller does not choose one.
	DefaultPageSize = 200

	serviceName = "jellyfin"
	itemFields  = "ProviderIds,ProductionYear"
)

// HTTPDoer describes the HTTP client used by the Jellyfin client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Client.
type Options struct {
	Name     string
	BaseURL  string
	APIKey   string
	UserID   string
	PageSize int
	Timeout  time.Duration
	HTTP     HTTPDoer
}

// Client reads library items from one Jellyfin server.
type Client struct {
	name     string
	baseURL  string
	apiKey   string
	userID   string
	pageSize int
	client   HTTPDoer
}

// New constructs a Client from opts.
func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	apiKey := strings.TrimSpace(opts.APIKey)
	if baseURL == "" || apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, serviceName, "init", "url and api key are required", nil)
	}
	c := &Client{
		name:     strings.TrimSpace(opts.Name),
		baseURL:  baseURL,
		apiKey:   apiKey,
		userID:   strings.TrimSpace(opts.UserID),
		pageSize: opts.PageSize,
		client:   opts.HTTP,
	}
	if c.name == "" {
		c.name = serviceName
	}
	if c.pageSize <= 0 {
		c.pageSize = DefaultPageSize
	}
	if c.client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.client = &http.Client{Timeout: timeout}
	}
	return c, nil
}

// Name returns the configured instance name.
func (c *Client) Name() string { return c.name }

// Items returns every item of the given media type, walking all pages.
func (c *Client) Items(ctx context.Context, t media.Type) ([]Item, error) {
	itemType, ok := itemTypeFor(t)
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, c.name, "items", fmt.Sprintf("unsupported media type %q", t), nil)
	}
	var all []Item
	start := 0
	for {
		page, err := c.page(ctx, itemType, start)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		start += len(page.Items)
		if len(page.Items) == 0 || start >= page.TotalRecordCount {
			break
		}
	}
	return all, nil
}

func (c *Client) page(ctx context.Context, itemType string, start int) (*ItemsResponse, error) {
	params := url.Values{}
	params.Set("Recursive", "true")
	params.Set("IncludeItemTypes", itemType)
	params.Set("Fields", itemFields)
	params.Set("StartIndex", strconv.Itoa(start))
	params.Set("Limit", strconv.Itoa(c.pageSize))

	endpoint := c.baseURL + "/Items"
	if c.userID != "" {
		endpoint = fmt.Sprintf("%s/Users/%s/Items", c.baseURL, url.PathEscape(c.userID))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, c.name, "items", "build request", err)
	}
	req.Header.Set("X-Emby-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrUnavailable, c.name, "items", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return nil, services.Wrap(services.MarkerForStatus(resp.StatusCode), c.name, "items", msg, nil)
	}
	var page ItemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, services.Wrap(services.ErrUnexpectedResponse, c.name, "items", "decode response", err)
	}
	return &page, nil
}
