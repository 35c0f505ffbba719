//nolint:funlen,errcheck //ok for this test code
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1stats/f1stats-go/pkg/model"
	laprepos "github.com/f1stats/f1stats-go/pkg/repository/lap"
	stintrepos "github.com/f1stats/f1stats-go/pkg/repository/stint"
	"github.com/f1stats/f1stats-go/testsupport/basedata"
	"github.com/f1stats/f1stats-go/testsupport/testdb"
)

func seedLap(lapNumber int, duration float64, pitOut bool) *model.Lap {
	l := basedata.SampleLap()
	l.LapNumber = lapNumber
	l.LapDuration = duration
	l.IsPitOutLap = pitOut
	return l
}

func TestLapDataset(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	ctx := context.Background()

	_, err := stintrepos.Create(ctx, pool, basedata.SampleStint())
	require.NoError(t, err)

	laps := []*model.Lap{
		seedLap(5, 91.2, false),  // kept
		seedLap(6, 55.0, false),  // too fast, dropped
		seedLap(7, 180.0, false), // too slow, dropped
		seedLap(8, 92.0, true),   // pit out lap, dropped
	}
	for _, l := range laps {
		_, err := laprepos.Create(ctx, pool, l)
		require.NoError(t, err)
	}
	// lap without sector times, dropped
	noSectors := seedLap(9, 93.0, false)
	noSectors.DurationSector2 = 0
	_, err = laprepos.Create(ctx, pool, noSectors)
	require.NoError(t, err)

	exporter := NewExporter(pool)
	data, err := exporter.LapDataset(ctx)
	require.NoError(t, err)
	require.Len(t, data, 1)

	row := data[0]
	assert.Equal(t, 5, row.LapNumber)
	assert.Equal(t, "Testland Grand Prix", row.RaceName)
	assert.Equal(t, "HAM", row.NameAcronym)
	assert.Equal(t, 1, row.StintNumber)
	assert.Equal(t, "MEDIUM", row.TyreCompound)
	// lap 5 in a stint starting at lap 1
	assert.Equal(t, 5, row.StintLapNumber)
	assert.Equal(t, 5, row.TyreAge)
}

func TestLapDatasetDropsUnknownCompound(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	ctx := context.Background()

	st := basedata.SampleStint()
	st.TyreCompound = "UNKNOWN"
	_, err := stintrepos.Create(ctx, pool, st)
	require.NoError(t, err)
	_, err = laprepos.Create(ctx, pool, seedLap(5, 91.2, false))
	require.NoError(t, err)

	data, err := NewExporter(pool).LapDataset(ctx)
	require.NoError(t, err)
	assert.Len(t, data, 0)
}

func TestWriteCSV(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	ctx := context.Background()

	_, err := stintrepos.Create(ctx, pool, basedata.SampleStint())
	require.NoError(t, err)
	_, err = laprepos.Create(ctx, pool, seedLap(5, 91.2, false))
	require.NoError(t, err)

	var buf bytes.Buffer
	num, err := NewExporter(pool).WriteCSV(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, num)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "2024", records[1][0])
	assert.Equal(t, "91.200", records[1][10])
}

func TestSessionNameFilter(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	ctx := context.Background()

	_, err := stintrepos.Create(ctx, pool, basedata.SampleStint())
	require.NoError(t, err)
	_, err = laprepos.Create(ctx, pool, seedLap(5, 91.2, false))
	require.NoError(t, err)

	// base session is named "Race", so a qualifying only export is empty
	data, err := NewExporter(pool,
		WithSessionNames("Qualifying")).LapDataset(ctx)
	require.NoError(t, err)
	assert.Len(t, data, 0)
}
