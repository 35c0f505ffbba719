//nolint:dupl,errcheck //ok for this test code
package session_test

import (
	"context"
	"testing"

	"github.com/aarondl/opt/omit"
	"gotest.tools/v3/assert"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository/session"
	"github.com/f1stats/f1stats-go/testsupport/basedata"
	"github.com/f1stats/f1stats-go/testsupport/testdb"
)

func TestCreate(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	ctx := context.Background()

	// session_id is unique across races
	_, err := session.Create(ctx, pool, basedata.SampleSession())
	assert.Assert(t, err != nil)

	created, err := session.Create(ctx, pool, &model.Session{
		SessionID:   77777,
		RaceID:      basedata.SampleRaceID,
		SessionName: "Qualifying",
		SessionType: "Qualifying",
	})
	assert.NilError(t, err)
	assert.Assert(t, created.ID > 0)
}

func TestLoadAndUpdate(t *testing.T) {
	pool := testdb.InitTestDb()
	basedata.InsertBaseData(pool)
	ctx := context.Background()

	loaded, err := session.LoadBySessionID(ctx, pool, basedata.SampleSessionID)
	assert.NilError(t, err)
	assert.Equal(t, loaded.SessionName, "Race")

	byRace, err := session.LoadByRaceID(ctx, pool, basedata.SampleRaceID)
	assert.NilError(t, err)
	assert.Equal(t, len(byRace), 1)

	updated, err := session.Update(ctx, pool, basedata.SampleSessionID,
		&model.SessionPatch{SessionType: omit.From("Sprint")})
	assert.NilError(t, err)
	assert.Equal(t, updated.SessionType, "Sprint")
	assert.Equal(t, updated.SessionName, "Race")

	num, err := session.DeleteBySessionID(ctx, pool, basedata.SampleSessionID)
	assert.NilError(t, err)
	assert.Equal(t, num, 1)
	_, err = session.LoadBySessionID(ctx, pool, basedata.SampleSessionID)
	assert.Assert(t, err != nil)
}
