// Package ll2 implements a launch.Source backed by the Launch Library 2 API.
package ll2

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/padview/padview/internal/padviewd/errors"
	"github.com/padview/padview/internal/padviewd/launch"
)

// DefaultBaseURL is the public Launch Library 2 endpoint.
const DefaultBaseURL = "https://ll.thespacedevs.com/2.3.0"

// DefaultWindow bounds the query to launches inside the next 180 days.
const DefaultWindow = 180 * 24 * time.Hour

// Client queries the Launch Library 2 /launches/ endpoint for the next
// scheduled launch.
type Client struct {
	baseURL string
	window  time.Duration
	http    *http.Client
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, e.g. for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithWindow overrides the query window.
func WithWindow(d time.Duration) Option {
	return func(c *Client) { c.window = d }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithNow overrides the time source used to build the query window.
func WithNow(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a Launch Library client.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		window:  DefaultWindow,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// launchResponse mirrors the subset of the LL2 payload the display needs.
type launchResponse struct {
	Results []struct {
		Name                  string `json:"name"`
		Net                   string `json:"net"`
		LaunchServiceProvider struct {
			Name string `json:"name"`
		} `json:"launch_service_provider"`
		Pad struct {
			Location struct {
				Name string `json:"name"`
			} `json:"location"`
		} `json:"pad"`
		Image json.RawMessage `json:"image"`
	} `json:"results"`
}

// NextEvent fetches the next launch ordered by scheduled time.
func (c *Client) NextEvent(ctx context.Context) (*launch.Event, error) {
	now := c.now().UTC()

	q := url.Values{}
	q.Set("net__gte", now.Format(time.RFC3339))
	q.Set("net__lte", now.Add(c.window).Format(time.RFC3339))
	q.Set("include_suborbital", "true")
	q.Set("mode", "detailed")
	q.Set("limit", "1")
	q.Set("ordering", "net")

	reqURL := fmt.Sprintf("%s/launches/?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.NewError("FETCH_FAILED", "building launch request", "ll2.NextEvent", errors.ErrFetchFailed)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.NewError("FETCH_FAILED", fmt.Sprintf("requesting launches: %v", err), "ll2.NextEvent", errors.ErrFetchFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewError("FETCH_FAILED", fmt.Sprintf("launch API returned status %d", resp.StatusCode), "ll2.NextEvent", errors.ErrFetchFailed)
	}

	var payload launchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewError("FETCH_FAILED", fmt.Sprintf("decoding launch payload: %v", err), "ll2.NextEvent", errors.ErrFetchFailed)
	}

	if len(payload.Results) == 0 {
		return nil, errors.NewError("NO_UPCOMING", "no launches in window", "ll2.NextEvent", errors.ErrNoUpcoming)
	}

	raw := payload.Results[0]
	net, err := parseNet(raw.Net)
	if err != nil {
		return nil, errors.NewError("BAD_RECORD", fmt.Sprintf("parsing net %q: %v", raw.Net, err), "ll2.NextEvent", errors.ErrUnsupportedFormat)
	}

	ev := &launch.Event{
		Name:     raw.Name,
		Net:      net,
		Provider: raw.LaunchServiceProvider.Name,
		Location: raw.Pad.Location.Name,
		Image:    resolveImageRef(raw.Image),
	}
	if err := ev.Validate(); err != nil {
		return nil, errors.NewError("BAD_RECORD", err.Error(), "ll2.NextEvent", errors.ErrUnsupportedFormat)
	}

	c.logger.Info("fetched next launch",
		"name", ev.Name,
		"net", ev.Net,
		"provider", ev.Provider,
	)
	return ev, nil
}

// parseNet accepts the ISO-8601 variants LL2 has been observed to emit.
func parseNet(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// resolveImageRef collapses the payload's image field, which may be an object
// carrying thumbnail URLs, a bare URL string, or null, into the tagged
// variant the core consumes. The ambiguity stops here.
func resolveImageRef(raw json.RawMessage) launch.ImageRef {
	if len(raw) == 0 || string(raw) == "null" {
		return launch.NoImage()
	}

	var obj struct {
		ThumbnailURL string `json:"thumbnail_url"`
		Thumbnail    string `json:"thumbnail"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.ThumbnailURL != "" {
			return launch.ImageURL(obj.ThumbnailURL)
		}
		if obj.Thumbnail != "" {
			return launch.ImageURL(obj.Thumbnail)
		}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return launch.ImageURL(s)
	}

	return launch.NoImage()
}
