package openf1

import (
	"errors"

	"github.com/f1stats/f1stats-go/pkg/model"
)

// The provider delivers records with optional attributes. Raw records keep
// those as pointers; Canonical converts them to the storage model, filling
// defaults for absent values. A record without its identifying key is
// rejected with an error so callers can skip it.

var ErrMissingKey = errors.New("record is missing its identifying key")

type MeetingRecord struct {
	MeetingKey       *int    `json:"meeting_key"`
	MeetingName      *string `json:"meeting_name"`
	CircuitShortName *string `json:"circuit_short_name"`
	Location         *string `json:"location"`
	CountryName      *string `json:"country_name"`
	Year             *int    `json:"year"`
}

func (r MeetingRecord) Canonical() (*model.Race, error) {
	if r.MeetingKey == nil {
		return nil, ErrMissingKey
	}
	return &model.Race{
		RaceID:      *r.MeetingKey,
		RaceName:    strOr(r.MeetingName, "Unknown Race"),
		CircuitName: strOr(r.CircuitShortName, "Unknown Circuit"),
		Location:    strOr(r.Location, "Unknown Location"),
		CountryName: strOr(r.CountryName, "Unknown Country"),
		Year:        intOr(r.Year, 0),
	}, nil
}

type SessionRecord struct {
	SessionKey  *int    `json:"session_key"`
	MeetingKey  *int    `json:"meeting_key"`
	SessionName *string `json:"session_name"`
	SessionType *string `json:"session_type"`
}

func (r SessionRecord) Canonical() (*model.Session, error) {
	if r.SessionKey == nil || r.MeetingKey == nil {
		return nil, ErrMissingKey
	}
	return &model.Session{
		SessionID:   *r.SessionKey,
		RaceID:      *r.MeetingKey,
		SessionName: strOr(r.SessionName, "Unknown"),
		SessionType: strOr(r.SessionType, "Unknown"),
	}, nil
}

type DriverRecord struct {
	FullName     *string `json:"full_name"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	DriverNumber *int    `json:"driver_number"`
	NameAcronym  *string `json:"name_acronym"`
	TeamName     *string `json:"team_name"`
	CountryCode  *string `json:"country_code"`
}

func (r DriverRecord) Canonical() (*model.Driver, error) {
	if r.FullName == nil || *r.FullName == "" {
		return nil, ErrMissingKey
	}
	return &model.Driver{
		DriverID:     model.NormalizeDriverID(*r.FullName),
		FullName:     *r.FullName,
		FirstName:    strOr(r.FirstName, ""),
		LastName:     strOr(r.LastName, ""),
		DriverNumber: intOr(r.DriverNumber, 0),
		NameAcronym:  strOr(r.NameAcronym, ""),
		TeamName:     strOr(r.TeamName, ""),
		CountryCode:  strOr(r.CountryCode, ""),
	}, nil
}

type StintRecord struct {
	SessionKey     *int    `json:"session_key"`
	DriverNumber   *int    `json:"driver_number"`
	StintNumber    *int    `json:"stint_number"`
	LapStart       *int    `json:"lap_start"`
	LapEnd         *int    `json:"lap_end"`
	Compound       *string `json:"compound"`
	TyreAgeAtStart *int    `json:"tyre_age_at_start"`
}

func (r StintRecord) Canonical(raceID int) (*model.Stint, error) {
	if r.SessionKey == nil || r.DriverNumber == nil || r.StintNumber == nil {
		return nil, ErrMissingKey
	}
	return &model.Stint{
		RaceID:         raceID,
		SessionID:      *r.SessionKey,
		DriverNumber:   *r.DriverNumber,
		StintNumber:    *r.StintNumber,
		LapStart:       intOr(r.LapStart, 0),
		LapEnd:         intOr(r.LapEnd, 0),
		TyreCompound:   strOr(r.Compound, "UNKNOWN"),
		TyreAgeAtStart: intOr(r.TyreAgeAtStart, 0),
	}, nil
}

type LapRecord struct {
	SessionKey      *int     `json:"session_key"`
	DriverNumber    *int     `json:"driver_number"`
	LapNumber       *int     `json:"lap_number"`
	LapDuration     *float64 `json:"lap_duration"`
	DurationSector1 *float64 `json:"duration_sector_1"`
	DurationSector2 *float64 `json:"duration_sector_2"`
	DurationSector3 *float64 `json:"duration_sector_3"`
	I1Speed         *float64 `json:"i1_speed"`
	I2Speed         *float64 `json:"i2_speed"`
	StSpeed         *float64 `json:"st_speed"`
	IsPitOutLap     *bool    `json:"is_pit_out_lap"`
}

func (r LapRecord) Canonical(raceID int) (*model.Lap, error) {
	if r.SessionKey == nil || r.DriverNumber == nil || r.LapNumber == nil {
		return nil, ErrMissingKey
	}
	return &model.Lap{
		RaceID:          raceID,
		SessionID:       *r.SessionKey,
		DriverNumber:    *r.DriverNumber,
		LapNumber:       *r.LapNumber,
		LapDuration:     floatOr(r.LapDuration, 0),
		DurationSector1: floatOr(r.DurationSector1, 0),
		DurationSector2: floatOr(r.DurationSector2, 0),
		DurationSector3: floatOr(r.DurationSector3, 0),
		I1Speed:         floatOr(r.I1Speed, 0),
		I2Speed:         floatOr(r.I2Speed, 0),
		StSpeed:         floatOr(r.StSpeed, 0),
		IsPitOutLap:     r.IsPitOutLap != nil && *r.IsPitOutLap,
	}, nil
}

// HasDuration reports whether the provider delivered a measured lap time.
// Laps without one are not worth storing.
func (r LapRecord) HasDuration() bool {
	return r.LapDuration != nil
}

func strOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
