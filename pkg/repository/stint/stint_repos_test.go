//nolint:errcheck //ok for this test code
package stint

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

	created, err := Create(ctx, pool, basedata.SampleStint())
	assert.NilError(t, err)
	assert.Assert(t, created.StintID > 0)

	_, err = Create(ctx, pool, basedata.SampleStint())
	assert.Assert(t, err != nil)
}

func TestLoadForLap(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	ctx := context.Background()
	// stint 1: laps 1-20, stint 2: laps 21-40
	_, err := Create(ctx, pool, basedata.SampleStint())
	assert.NilError(t, err)
	second := basedata.SampleStint()
	second.StintNumber = 2
	second.LapStart = 21
	second.LapEnd = 40
	second.TyreCompound = "HARD"
	_, err = Create(ctx, pool, second)
	assert.NilError(t, err)

	tests := []struct {
		name        string
		lapNumber   int
		wantStint   int
		wantMissing bool
	}{
		{name: "first stint", lapNumber: 10, wantStint: 1},
		{name: "boundary start", lapNumber: 21, wantStint: 2},
		{name: "boundary end", lapNumber: 20, wantStint: 1},
		{name: "beyond all stints", lapNumber: 41, wantMissing: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := basedata.SampleLap()
			l.LapNumber = tt.lapNumber
			got, err := LoadForLap(ctx, pool, l)
			if tt.wantMissing {
				assert.Assert(t, err != nil)
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, got.StintNumber, tt.wantStint)
		})
	}
}

func TestUpdateAndDelete(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	ctx := context.Background()
	created, err := Create(ctx, pool, basedata.SampleStint())
	assert.NilError(t, err)

	updated, err := Update(ctx, pool, created.StintID,
		&model.StintPatch{TyreCompound: omit.From("SOFT")})
	assert.NilError(t, err)
	assert.Equal(t, updated.TyreCompound, "SOFT")
	assert.Equal(t, updated.LapEnd, 20)

	byKey, err := LoadByKey(ctx, pool, model.StintKey{
		RaceID:       basedata.SampleRaceID,
		SessionID:    basedata.SampleSessionID,
		DriverNumber: 44,
		StintNumber:  1,
	})
	assert.NilError(t, err)
	assert.Equal(t, byKey.StintID, created.StintID)

	num, err := DeleteByID(ctx, pool, created.StintID)
	assert.NilError(t, err)
	assert.Equal(t, num, 1)
}
