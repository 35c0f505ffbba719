package openf1

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

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(WithBaseURL(srv.URL)), srv
}

func TestMeetings(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/meetings", r.URL.Path)
		w.Write([]byte(`[
			{"meeting_key": 1219, "meeting_name": "Singapore Grand Prix",
			 "circuit_short_name": "Singapore", "location": "Marina Bay",
			 "country_name": "Singapore", "year": 2023},
			{"meeting_key": 1220}
		]`))
	})
	defer srv.Close()

	records, err := client.Meetings(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	full, err := records[0].Canonical()
	require.NoError(t, err)
	assert.Equal(t, 1219, full.RaceID)
	assert.Equal(t, "Singapore Grand Prix", full.RaceName)

	// absent attributes get defaults
	sparse, err := records[1].Canonical()
	require.NoError(t, err)
	assert.Equal(t, "Unknown Race", sparse.RaceName)
	assert.Equal(t, 0, sparse.Year)
}

func TestMeetingParamPassed(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1219", r.URL.Query().Get("meeting_key"))
		w.Write([]byte(`[{"session_key": 9158, "meeting_key": 1219,
			"session_name": "Race", "session_type": "Race"}]`))
	})
	defer srv.Close()

	records, err := client.Sessions(context.Background(), 1219)
	require.NoError(t, err)
	require.Len(t, records, 1)
	data, err := records[0].Canonical()
	require.NoError(t, err)
	assert.Equal(t, 9158, data.SessionID)
	assert.Equal(t, 1219, data.RaceID)
}

func TestTransportFailure(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := client.Meetings(context.Background())
	assert.True(t, errors.Is(err, provider.ErrUpstreamUnavailable))

	srv.Close()
	_, err = client.Meetings(context.Background())
	assert.True(t, errors.Is(err, provider.ErrUpstreamUnavailable))
}

func TestInvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not a list", body: `{"detail": "oops"}`},
		{name: "empty list", body: `[]`},
		{name: "garbage", body: `this is not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			defer srv.Close()

			_, err := client.Laps(context.Background(), 1219)
			assert.True(t, errors.Is(err, provider.ErrUpstreamInvalid))
		})
	}
}

func TestRecordValidation(t *testing.T) {
	_, err := MeetingRecord{}.Canonical()
	assert.ErrorIs(t, err, ErrMissingKey)

	_, err = SessionRecord{SessionKey: intPtr(9158)}.Canonical()
	assert.ErrorIs(t, err, ErrMissingKey)

	_, err = DriverRecord{}.Canonical()
	assert.ErrorIs(t, err, ErrMissingKey)

	d, err := DriverRecord{FullName: strPtr("Oscar Piastri")}.Canonical()
	require.NoError(t, err)
	assert.Equal(t, "oscar_piastri", d.DriverID)

	lap := LapRecord{
		SessionKey:   intPtr(9158),
		DriverNumber: intPtr(81),
		LapNumber:    intPtr(3),
	}
	assert.False(t, lap.HasDuration())
	data, err := lap.Canonical(1219)
	require.NoError(t, err)
	assert.Equal(t, 0.0, data.LapDuration)
	assert.False(t, data.IsPitOutLap)

	s, err := StintRecord{
		SessionKey:   intPtr(9158),
		DriverNumber: intPtr(81),
		StintNumber:  intPtr(1),
	}.Canonical(1219)
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN", s.TyreCompound)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
