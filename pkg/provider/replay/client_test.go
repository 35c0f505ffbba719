package replay

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1stats/f1stats-go/pkg/provider"
)

func TestSessionNameMapping(t *testing.T) {
	tests := []struct {
		long  string
		short string
	}{
		{long: "Practice 1", short: "FP1"},
		{long: "Practice 2", short: "FP2"},
		{long: "Practice 3", short: "FP3"},
		{long: "Qualifying", short: "Q"},
		{long: "Sprint", short: "S"},
		{long: "Race", short: "R"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.short, SessionName(tt.long))
		assert.Equal(t, tt.long, LongSessionName(tt.short))
	}
	// unknown names pass through
	assert.Equal(t, "Warmup", SessionName("Warmup"))
	assert.Equal(t, "WU", LongSessionName("WU"))
}

func TestCanonical(t *testing.T) {
	lapTime := 92345.0
	pitIn := 5421300.0
	status := "4"
	rec := LapRecord{
		Driver:      " ham ",
		LapNumber:   10,
		LapTimeMs:   &lapTime,
		PitInTimeMs: &pitIn,
		TrackStatus: &status,
	}
	data := rec.Canonical()
	assert.Equal(t, "HAM", data.Driver)
	assert.InDelta(t, 92.345, data.LapTime, 1e-9)
	assert.InDelta(t, 5421.3, data.PitInTime, 1e-9)
	assert.Equal(t, "4", data.TrackStatus)
	assert.True(t, rec.HasPitData())
	assert.False(t, rec.HasTelemetry())

	empty := LapRecord{Driver: "VER", LapNumber: 1}
	assert.False(t, empty.HasPitData())
	assert.Equal(t, 0.0, empty.Canonical().LapTime)
}

func TestSessionLaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/laps", r.URL.Path)
			assert.Equal(t, "2023", r.URL.Query().Get("year"))
			assert.Equal(t, "Singapore Grand Prix", r.URL.Query().Get("event"))
			// long name translated to the short code
			assert.Equal(t, "FP1", r.URL.Query().Get("session"))
			w.Write([]byte(`[{"driver": "HAM", "lap_number": 1,
				"lap_time_ms": 92345.0}]`))
		}))
	defer srv.Close()

	client := NewClient(srv.URL)
	records, err := client.SessionLaps(context.Background(),
		2023, "Singapore Grand Prix", "Practice 1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "HAM", records[0].Driver)
}

func TestSessionLapsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.SessionLaps(context.Background(), 2023, "x", "Race")
	assert.True(t, errors.Is(err, provider.ErrUpstreamInvalid))

	srv.Close()
	_, err = client.SessionLaps(context.Background(), 2023, "x", "Race")
	assert.True(t, errors.Is(err, provider.ErrUpstreamUnavailable))
}
