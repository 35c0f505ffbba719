//nolint:dupl,funlen,errcheck //ok for this test code
package driver

import (
	"context"
	"log"
	"testing"

	"github.com/aarondl/opt/omit"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gotest.tools/v3/assert"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/testsupport/testdb"
)

var sampleDriver = &model.Driver{
	DriverID:     "lewis_hamilton",
	FullName:     "Lewis Hamilton",
	FirstName:    "Lewis",
	LastName:     "Hamilton",
	DriverNumber: 44,
	NameAcronym:  "HAM",
	TeamName:     "Mercedes",
	CountryCode:  "GBR",
}

func createSampleEntry(db *pgxpool.Pool) *model.Driver {
	ctx := context.Background()
	err := pgx.BeginFunc(context.Background(), db, func(tx pgx.Tx) error {
		_, err := Create(ctx, tx, sampleDriver)
		return err
	})
	if err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}
	return sampleDriver
}

func TestCreate(t *testing.T) {
	pool := testdb.InitTestDb()
	tests := []struct {
		name    string
		driver  *model.Driver
		wantErr bool
	}{
		{
			name: "new entry",
			driver: &model.Driver{
				DriverID:     "max_verstappen",
				FullName:     "Max Verstappen",
				FirstName:    "Max",
				LastName:     "Verstappen",
				DriverNumber: 1,
				NameAcronym:  "VER",
				TeamName:     "Red Bull Racing",
				CountryCode:  "NED",
			},
		},
		{
			name:    "duplicate",
			driver:  sampleDriver,
			wantErr: true,
		},
	}
	createSampleEntry(pool)
	for _, tt := range tests {
		ctx := context.Background()
		t.Run(tt.name, func(t *testing.T) {
			_, err := Create(ctx, pool, tt.driver)
			if (err != nil) != tt.wantErr {
				t.Errorf("Create error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	pool := testdb.InitTestDb()
	createSampleEntry(pool)
	ctx := context.Background()

	byID, err := LoadByID(ctx, pool, "lewis_hamilton")
	assert.NilError(t, err)
	assert.Equal(t, byID.FullName, "Lewis Hamilton")

	byNumber, err := LoadByNumber(ctx, pool, 44)
	assert.NilError(t, err)
	assert.Equal(t, byNumber.DriverID, "lewis_hamilton")

	byAcronym, err := LoadByAcronym(ctx, pool, "HAM")
	assert.NilError(t, err)
	assert.Equal(t, byAcronym.DriverID, "lewis_hamilton")

	_, err = LoadByID(ctx, pool, "unknown_driver")
	assert.Assert(t, err != nil)
}

func TestUpdate(t *testing.T) {
	pool := testdb.InitTestDb()
	createSampleEntry(pool)
	ctx := context.Background()

	patch := &model.DriverPatch{
		TeamName:    omit.From("Ferrari"),
		CountryCode: omit.From("GBR"),
	}
	updated, err := Update(ctx, pool, "lewis_hamilton", patch)
	assert.NilError(t, err)
	assert.Equal(t, updated.TeamName, "Ferrari")
	// untouched fields keep their values
	assert.Equal(t, updated.DriverNumber, 44)
	assert.Equal(t, updated.NameAcronym, "HAM")

	// empty patch is a no-op
	unchanged, err := Update(ctx, pool, "lewis_hamilton", &model.DriverPatch{})
	assert.NilError(t, err)
	assert.Equal(t, unchanged.TeamName, "Ferrari")
}

func TestDelete(t *testing.T) {
	pool := testdb.InitTestDb()
	createSampleEntry(pool)
	ctx := context.Background()

	num, err := DeleteByID(ctx, pool, "lewis_hamilton")
	assert.NilError(t, err)
	assert.Equal(t, num, 1)

	num, err = DeleteByID(ctx, pool, "lewis_hamilton")
	assert.NilError(t, err)
	assert.Equal(t, num, 0)
}
