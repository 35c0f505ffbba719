package model

import "github.com/aarondl/opt/omit"

// Lap is unique per (race_id, session_id, driver_number, lap_number).
// PitInTime, PitOutTime and TrackStatus are filled by the session
// replay provider, all other fields come from the REST provider.
type Lap struct {
	LapID           int     `json:"lap_id"`
	RaceID          int     `json:"race_id"`
	SessionID       int     `json:"session_id"`
	DriverNumber    int     `json:"driver_number"`
	LapNumber       int     `json:"lap_number"`
	LapDuration     float64 `json:"lap_duration"`
	DurationSector1 float64 `json:"duration_sector_1"`
	DurationSector2 float64 `json:"duration_sector_2"`
	DurationSector3 float64 `json:"duration_sector_3"`
	I1Speed         float64 `json:"i1_speed"`
	I2Speed         float64 `json:"i2_speed"`
	StSpeed         float64 `json:"st_speed"`
	IsPitOutLap     bool    `json:"is_pit_out_lap"`
	PitInTime       float64 `json:"pit_in_time"`
	PitOutTime      float64 `json:"pit_out_time"`
	TrackStatus     string  `json:"track_status"`
}

type LapPatch struct {
	LapDuration     omit.Val[float64] `json:"lap_duration"`
	DurationSector1 omit.Val[float64] `json:"duration_sector_1"`
	DurationSector2 omit.Val[float64] `json:"duration_sector_2"`
	DurationSector3 omit.Val[float64] `json:"duration_sector_3"`
	I1Speed         omit.Val[float64] `json:"i1_speed"`
	I2Speed         omit.Val[float64] `json:"i2_speed"`
	StSpeed         omit.Val[float64] `json:"st_speed"`
	IsPitOutLap     omit.Val[bool]    `json:"is_pit_out_lap"`
	PitInTime       omit.Val[float64] `json:"pit_in_time"`
	PitOutTime      omit.Val[float64] `json:"pit_out_time"`
	TrackStatus     omit.Val[string]  `json:"track_status"`
}

// LapKey is the composite natural key of a lap.
type LapKey struct {
	RaceID       int
	SessionID    int
	DriverNumber int
	LapNumber    int
}
