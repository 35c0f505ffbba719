//nolint:funlen,errcheck //ok for this test code
package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/provider/openf1"
	"github.com/f1stats/f1stats-go/pkg/provider/replay"
	driverrepos "github.com/f1stats/f1stats-go/pkg/repository/driver"
	laprepos "github.com/f1stats/f1stats-go/pkg/repository/lap"
	racerepos "github.com/f1stats/f1stats-go/pkg/repository/race"
	telemetryrepos "github.com/f1stats/f1stats-go/pkg/repository/telemetry"
	"github.com/f1stats/f1stats-go/testsupport/basedata"
	"github.com/f1stats/f1stats-go/testsupport/testdb"
)

func TestMergeDrivers(t *testing.T) {
	records := []*model.Driver{
		{DriverID: "lewis_hamilton", FullName: "Lewis Hamilton", DriverNumber: 44},
		{DriverID: "max_verstappen", FullName: "Max Verstappen", NameAcronym: "VER"},
		{
			DriverID: "lewis_hamilton", FullName: "Lewis Hamilton",
			NameAcronym: "HAM", CountryCode: "GBR", TeamName: "Mercedes",
		},
	}
	merged := mergeDrivers(records)
	require.Len(t, merged, 2)
	// order of first appearance is kept
	assert.Equal(t, "lewis_hamilton", merged[0].DriverID)
	// attributes missing in the first record come from later ones
	assert.Equal(t, "GBR", merged[0].CountryCode)
	assert.Equal(t, "HAM", merged[0].NameAcronym)
	assert.Equal(t, 44, merged[0].DriverNumber)
	assert.Equal(t, "VER", merged[1].NameAcronym)
}

func TestMergeDriversLastWriteWins(t *testing.T) {
	records := []*model.Driver{
		{
			DriverID: "lewis_hamilton", FullName: "Lewis Hamilton",
			TeamName: "Mercedes", CountryCode: "GBR",
		},
		{
			DriverID: "lewis_hamilton", FullName: "Lewis Hamilton",
			TeamName: "Ferrari",
		},
	}
	merged := mergeDrivers(records)
	require.Len(t, merged, 1)
	// the later record overwrites, a missing attribute does not erase
	assert.Equal(t, "Ferrari", merged[0].TeamName)
	assert.Equal(t, "GBR", merged[0].CountryCode)
}

func TestSyncDriversCountsRawRecords(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
			{"full_name": "Fernando Alonso", "driver_number": 14,
			 "team_name": "Aston Martin"},
			{"full_name": "Fernando Alonso", "driver_number": 14,
			 "team_name": "Alpine", "country_code": "ESP"}
		]`))
		}))
	defer srv.Close()

	syncer := NewSyncer(pool, openf1.NewClient(openf1.WithBaseURL(srv.URL)))
	res, err := syncer.SyncDrivers(context.Background())
	require.NoError(t, err)
	// both raw records count, the merged driver is stored once
	assert.Equal(t, &Result{Created: 1, Updated: 0, Total: 2}, res)

	stored, err := driverrepos.LoadByID(context.Background(), pool,
		"fernando_alonso")
	require.NoError(t, err)
	assert.Equal(t, "Alpine", stored.TeamName)
	assert.Equal(t, "ESP", stored.CountryCode)
}

func TestSyncRacesIdempotent(t *testing.T) {
	pool := testdb.InitTestDb()
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
			{"meeting_key": 1219, "meeting_name": "Singapore Grand Prix",
			 "circuit_short_name": "Singapore", "location": "Marina Bay",
			 "country_name": "Singapore", "year": 2023},
			{"meeting_key": 1220, "meeting_name": "Japanese Grand Prix",
			 "circuit_short_name": "Suzuka", "location": "Suzuka",
			 "country_name": "Japan", "year": 2023}
		]`))
		}))
	defer srv.Close()

	syncer := NewSyncer(pool, openf1.NewClient(openf1.WithBaseURL(srv.URL)))
	ctx := context.Background()

	first, err := syncer.SyncRaces(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Result{Created: 2, Updated: 0, Total: 2}, first)

	second, err := syncer.SyncRaces(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Result{Created: 0, Updated: 2, Total: 2}, second)

	races, err := racerepos.LoadAll(ctx, pool)
	require.NoError(t, err)
	assert.Len(t, races, 2)
}

func TestSyncRacesSkipsMalformed(t *testing.T) {
	pool := testdb.InitTestDb()
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			// second record has no meeting key
			w.Write([]byte(`[
			{"meeting_key": 1219, "meeting_name": "Singapore Grand Prix", "year": 2023},
			{"meeting_name": "Phantom Grand Prix"}
		]`))
		}))
	defer srv.Close()

	syncer := NewSyncer(pool, openf1.NewClient(openf1.WithBaseURL(srv.URL)))
	res, err := syncer.SyncRaces(context.Background())
	require.NoError(t, err)
	// the bad record counts towards Total but is neither created nor updated
	assert.Equal(t, &Result{Created: 1, Updated: 0, Total: 2}, res)
}

func TestSyncLapsSkipsMissingDuration(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
			{"session_key": 54321, "driver_number": 44, "lap_number": 1,
			 "lap_duration": 91.5, "is_pit_out_lap": false},
			{"session_key": 54321, "driver_number": 44, "lap_number": 2}
		]`))
		}))
	defer srv.Close()

	syncer := NewSyncer(pool, openf1.NewClient(openf1.WithBaseURL(srv.URL)))
	res, err := syncer.SyncLaps(context.Background(), basedata.SampleRaceID)
	require.NoError(t, err)
	assert.Equal(t, &Result{Created: 1, Updated: 0, Total: 2}, res)

	laps, err := laprepos.LoadAll(context.Background(), pool)
	require.NoError(t, err)
	assert.Len(t, laps, 1)
}

func TestSyncReplayLaps(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	ctx := context.Background()
	_, err := laprepos.Create(ctx, pool, basedata.SampleLap())
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{
			"driver": "ham", "lap_number": 10, "lap_time_ms": 90000.0,
			"pit_in_time_ms": 5421300.0, "track_status": "4",
			"speed_avg": 210.5, "rpm_mean": 10800, "gear_mean": 5,
			"throttle_mean": 68.4, "brake_usage": 12.1, "drs_usage": 3,
			"time_ms": 90000.0
		}]`))
		}))
	defer srv.Close()

	syncer := NewSyncer(pool, openf1.NewClient(),
		WithReplayClient(replay.NewClient(srv.URL)))

	res, err := syncer.SyncReplayLaps(ctx, basedata.SampleSessionID)
	require.NoError(t, err)
	assert.Equal(t, &Result{Created: 1, Updated: 1, Total: 1}, res)

	l, err := laprepos.LoadByKey(ctx, pool, model.LapKey{
		RaceID:       basedata.SampleRaceID,
		SessionID:    basedata.SampleSessionID,
		DriverNumber: 44,
		LapNumber:    10,
	})
	require.NoError(t, err)
	assert.InDelta(t, 5421.3, l.PitInTime, 1e-9)
	assert.Equal(t, "4", l.TrackStatus)
	// REST provider fields stay untouched
	assert.Equal(t, 90.0, l.LapDuration)

	tele, err := telemetryrepos.LoadByKey(ctx, pool, model.LapKey{
		RaceID:       basedata.SampleRaceID,
		SessionID:    basedata.SampleSessionID,
		DriverNumber: 44,
		LapNumber:    10,
	})
	require.NoError(t, err)
	assert.InDelta(t, 210.5, tele.SpeedAvg, 1e-9)

	// second run updates instead of creating
	again, err := syncer.SyncReplayLaps(ctx, basedata.SampleSessionID)
	require.NoError(t, err)
	assert.Equal(t, &Result{Created: 0, Updated: 1, Total: 1}, again)
}

func TestSyncReplayWithoutClient(t *testing.T) {
	pool := testdb.InitTestDb()
	syncer := NewSyncer(pool, openf1.NewClient())
	_, err := syncer.SyncReplayLaps(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoReplayClient)
}
