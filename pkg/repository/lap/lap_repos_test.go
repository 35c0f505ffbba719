//nolint:funlen,errcheck //ok for this test code
package lap

import (
	"context"
	"testing"

	"github.com/aarondl/opt/omit"
	"gotest.tools/v3/assert"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/testsupport/basedata"
	"github.com/f1stats/f1stats-go/testsupport/testdb"
)

func TestCreate(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	ctx := context.Background()

	created, err := Create(ctx, pool, basedata.SampleLap())
	assert.NilError(t, err)
	assert.Assert(t, created.LapID > 0)

	// same composite key again
	_, err = Create(ctx, pool, basedata.SampleLap())
	assert.Assert(t, err != nil)
}

func TestLoadByKey(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	ctx := context.Background()
	_, err := Create(ctx, pool, basedata.SampleLap())
	assert.NilError(t, err)

	loaded, err := LoadByKey(ctx, pool, model.LapKey{
		RaceID:       basedata.SampleRaceID,
		SessionID:    basedata.SampleSessionID,
		DriverNumber: 44,
		LapNumber:    10,
	})
	assert.NilError(t, err)
	assert.Equal(t, loaded.LapDuration, 90.0)

	_, err = LoadByKey(ctx, pool, model.LapKey{
		RaceID:       basedata.SampleRaceID,
		SessionID:    basedata.SampleSessionID,
		DriverNumber: 44,
		LapNumber:    99,
	})
	assert.Assert(t, err != nil)
}

func TestUpdate(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	ctx := context.Background()
	created, err := Create(ctx, pool, basedata.SampleLap())
	assert.NilError(t, err)

	updated, err := Update(ctx, pool, created.LapID,
		&model.LapPatch{LapDuration: omit.From(95.236)})
	assert.NilError(t, err)
	assert.Equal(t, updated.LapDuration, 95.236)
	assert.Equal(t, updated.DurationSector1, 29.5)
}

func TestUpdateReplayData(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	ctx := context.Background()
	created, err := Create(ctx, pool, basedata.SampleLap())
	assert.NilError(t, err)

	patch := &model.LapPatch{
		PitInTime:   omit.From(5421.3),
		TrackStatus: omit.From("4"),
	}
	// driver resolved via acronym
	num, err := UpdateReplayData(ctx, pool,
		basedata.SampleSessionID, "HAM", 10, patch)
	assert.NilError(t, err)
	assert.Equal(t, num, 1)

	loaded, err := LoadByID(ctx, pool, created.LapID)
	assert.NilError(t, err)
	assert.Equal(t, loaded.PitInTime, 5421.3)
	assert.Equal(t, loaded.TrackStatus, "4")
	assert.Equal(t, loaded.LapDuration, 90.0)

	// unknown acronym matches nothing
	num, err = UpdateReplayData(ctx, pool,
		basedata.SampleSessionID, "XXX", 10, patch)
	assert.NilError(t, err)
	assert.Equal(t, num, 0)

	// empty patch is a no-op
	num, err = UpdateReplayData(ctx, pool,
		basedata.SampleSessionID, "HAM", 10, &model.LapPatch{})
	assert.NilError(t, err)
	assert.Equal(t, num, 0)
}

func TestDelete(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	ctx := context.Background()
	created, err := Create(ctx, pool, basedata.SampleLap())
	assert.NilError(t, err)

	num, err := DeleteByID(ctx, pool, created.LapID)
	assert.NilError(t, err)
	assert.Equal(t, num, 1)
	_, err = LoadByID(ctx, pool, created.LapID)
	assert.Assert(t, err != nil)
}
