// Package replay adapts the session replay provider. It serves archived
// timing data with pit events, track status and telemetry aggregates
// which the live REST provider does not carry.
package replay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/f1stats/f1stats-go/pkg/provider"
)

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

func NewClient(baseURL string, opts ...Option) *Client {
	ret := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// LapRecord is the replay provider wire format. Durations arrive in
// milliseconds, driver acronyms in arbitrary case.
type LapRecord struct {
	Driver       string   `json:"driver"`
	LapNumber    int      `json:"lap_number"`
	LapTimeMs    *float64 `json:"lap_time_ms"`
	PitInTimeMs  *float64 `json:"pit_in_time_ms"`
	PitOutTimeMs *float64 `json:"pit_out_time_ms"`
	TrackStatus  *string  `json:"track_status"`
	SpeedAvg     *float64 `json:"speed_avg"`
	RpmMean      *float64 `json:"rpm_mean"`
	GearMean     *int     `json:"gear_mean"`
	ThrottleMean *float64 `json:"throttle_mean"`
	BrakeUsage   *float64 `json:"brake_usage"`
	DrsUsage     *int     `json:"drs_usage"`
	TimeMs       *float64 `json:"time_ms"`
}

// Lap is the canonical form of a replay lap. All durations are in
// seconds, the acronym is upper case.
type Lap struct {
	Driver       string
	LapNumber    int
	LapTime      float64
	PitInTime    float64
	PitOutTime   float64
	TrackStatus  string
	SpeedAvg     float64
	RpmMean      float64
	GearMean     int
	ThrottleMean float64
	BrakeUsage   float64
	DrsUsage     int
	TimeS        float64
}

func (r LapRecord) Canonical() Lap {
	ret := Lap{
		Driver:    strings.ToUpper(strings.TrimSpace(r.Driver)),
		LapNumber: r.LapNumber,
	}
	if r.LapTimeMs != nil {
		ret.LapTime = *r.LapTimeMs / 1000.0
	}
	if r.PitInTimeMs != nil {
		ret.PitInTime = *r.PitInTimeMs / 1000.0
	}
	if r.PitOutTimeMs != nil {
		ret.PitOutTime = *r.PitOutTimeMs / 1000.0
	}
	if r.TrackStatus != nil {
		ret.TrackStatus = *r.TrackStatus
	}
	if r.SpeedAvg != nil {
		ret.SpeedAvg = *r.SpeedAvg
	}
	if r.RpmMean != nil {
		ret.RpmMean = *r.RpmMean
	}
	if r.GearMean != nil {
		ret.GearMean = *r.GearMean
	}
	if r.ThrottleMean != nil {
		ret.ThrottleMean = *r.ThrottleMean
	}
	if r.BrakeUsage != nil {
		ret.BrakeUsage = *r.BrakeUsage
	}
	if r.DrsUsage != nil {
		ret.DrsUsage = *r.DrsUsage
	}
	if r.TimeMs != nil {
		ret.TimeS = *r.TimeMs / 1000.0
	}
	return ret
}

// HasPitData reports whether any replay-only lap attribute is present.
func (r LapRecord) HasPitData() bool {
	return r.PitInTimeMs != nil || r.PitOutTimeMs != nil || r.TrackStatus != nil
}

// HasTelemetry reports whether the record carries telemetry aggregates.
func (r LapRecord) HasTelemetry() bool {
	return r.SpeedAvg != nil || r.RpmMean != nil || r.ThrottleMean != nil
}

// SessionLaps fetches the replay laps of one session. The session name
// may be given in either the long or the short form.
func (c *Client) SessionLaps(
	ctx context.Context,
	year int,
	eventName string,
	sessionName string,
) ([]LapRecord, error) {
	params := url.Values{
		"year":    []string{fmt.Sprintf("%d", year)},
		"event":   []string{eventName},
		"session": []string{SessionName(sessionName)},
	}
	reqURL := fmt.Sprintf("%s/laps?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: laps: %v", provider.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: laps: status %d",
			provider.ErrUpstreamUnavailable, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: laps: %v", provider.ErrUpstreamUnavailable, err)
	}
	var ret []LapRecord
	if err := json.Unmarshal(body, &ret); err != nil {
		return nil, fmt.Errorf("%w: laps: %v", provider.ErrUpstreamInvalid, err)
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("%w: laps: empty list", provider.ErrUpstreamInvalid)
	}
	return ret, nil
}
