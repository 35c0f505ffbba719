package openf1

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/f1stats/f1stats-go/pkg/provider"
)

const DefaultBaseURL = "https://api.openf1.org/v1"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func NewClient(opts ...Option) *Client {
	ret := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Meetings fetches all meetings (races) known to the provider.
func (c *Client) Meetings(ctx context.Context) ([]MeetingRecord, error) {
	return fetchList[MeetingRecord](ctx, c, "meetings", nil)
}

// Sessions fetches the sessions of one meeting.
func (c *Client) Sessions(ctx context.Context, meetingKey int) (
	[]SessionRecord, error,
) {
	return fetchList[SessionRecord](ctx, c, "sessions", meetingParam(meetingKey))
}

// Stints fetches the stints of one meeting.
func (c *Client) Stints(ctx context.Context, meetingKey int) ([]StintRecord, error) {
	return fetchList[StintRecord](ctx, c, "stints", meetingParam(meetingKey))
}

// Laps fetches the laps of one meeting.
func (c *Client) Laps(ctx context.Context, meetingKey int) ([]LapRecord, error) {
	return fetchList[LapRecord](ctx, c, "laps", meetingParam(meetingKey))
}

// Drivers fetches the drivers of one meeting.
func (c *Client) Drivers(ctx context.Context, meetingKey int) ([]DriverRecord, error) {
	return fetchList[DriverRecord](ctx, c, "drivers", meetingParam(meetingKey))
}

func meetingParam(meetingKey int) url.Values {
	return url.Values{"meeting_key": []string{fmt.Sprintf("%d", meetingKey)}}
}

// fetchList issues a GET against the provider and validates that the
// response is a non-empty list. Transport failures map to
// provider.ErrUpstreamUnavailable, shape mismatches to
// provider.ErrUpstreamInvalid.
func fetchList[T any](
	ctx context.Context,
	c *Client,
	path string,
	params url.Values,
) ([]T, error) {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, path)
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, params.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", provider.ErrUpstreamUnavailable, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d",
			provider.ErrUpstreamUnavailable, path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", provider.ErrUpstreamUnavailable, path, err)
	}
	var ret []T
	if err := json.Unmarshal(body, &ret); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", provider.ErrUpstreamInvalid, path, err)
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("%w: %s: empty list", provider.ErrUpstreamInvalid, path)
	}
	return ret, nil
}
