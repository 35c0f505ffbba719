// Package basedata provides sample entities and seeding helpers for
// repository and endpoint tests.
package basedata

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/f1stats/f1stats-go/pkg/model"
	driverrepos "github.com/f1stats/f1stats-go/pkg/repository/driver"
	racerepos "github.com/f1stats/f1stats-go/pkg/repository/race"
	sessionrepos "github.com/f1stats/f1stats-go/pkg/repository/session"
)

const (
	SampleRaceID    = 9999
	SampleSessionID = 54321
)

func SampleRace() *model.Race {
	return &model.Race{
		RaceID:      SampleRaceID,
		RaceName:    "Testland Grand Prix",
		CircuitName: "Testring",
		Location:    "Testville",
		CountryName: "Testland",
		Year:        2024,
	}
}

func SampleSession() *model.Session {
	return &model.Session{
		SessionID:   SampleSessionID,
		RaceID:      SampleRaceID,
		SessionName: "Race",
		SessionType: "Race",
	}
}

func SampleDriver() *model.Driver {
	return &model.Driver{
		DriverID:     "lewis_hamilton",
		FullName:     "Lewis Hamilton",
		FirstName:    "Lewis",
		LastName:     "Hamilton",
		DriverNumber: 44,
		NameAcronym:  "HAM",
		TeamName:     "Mercedes",
		CountryCode:  "GBR",
	}
}

func SampleLap() *model.Lap {
	return &model.Lap{
		RaceID:          SampleRaceID,
		SessionID:       SampleSessionID,
		DriverNumber:    44,
		LapNumber:       10,
		LapDuration:     90.0,
		DurationSector1: 29.5,
		DurationSector2: 31.2,
		DurationSector3: 29.3,
		I1Speed:         290,
		I2Speed:         310,
		StSpeed:         305,
	}
}

func SampleStint() *model.Stint {
	return &model.Stint{
		RaceID:         SampleRaceID,
		SessionID:      SampleSessionID,
		DriverNumber:   44,
		StintNumber:    1,
		LapStart:       1,
		LapEnd:         20,
		TyreCompound:   "MEDIUM",
		TyreAgeAtStart: 0,
	}
}

func SampleTelemetry() *model.Telemetry {
	return &model.Telemetry{
		RaceID:       SampleRaceID,
		SessionID:    SampleSessionID,
		DriverNumber: 44,
		LapNumber:    10,
		SpeedAvg:     210.5,
		RpmMean:      10800,
		GearMean:     5,
		ThrottleMean: 68.4,
		BrakeUsage:   12.1,
		DrsUsage:     3,
		TimeS:        90.0,
	}
}

// InsertBaseData seeds race, session and driver so that dependent
// entities can be created in tests.
func InsertBaseData(pool *pgxpool.Pool) {
	ctx := context.Background()
	if _, err := racerepos.Create(ctx, pool, SampleRace()); err != nil {
		log.Fatalf("InsertBaseData race: %v", err)
	}
	if _, err := sessionrepos.Create(ctx, pool, SampleSession()); err != nil {
		log.Fatalf("InsertBaseData session: %v", err)
	}
	if _, err := driverrepos.Create(ctx, pool, SampleDriver()); err != nil {
		log.Fatalf("InsertBaseData driver: %v", err)
	}
}
