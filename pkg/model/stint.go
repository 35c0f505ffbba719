package model

import "github.com/aarondl/opt/omit"

// Stint is unique per (race_id, session_id, driver_number, stint_number).
// The laps belonging to a stint are not referenced directly; membership is
// derived from lap_number being within [lap_start, lap_end].
type Stint struct {
	StintID        int    `json:"stint_id"`
	RaceID         int    `json:"race_id"`
	SessionID      int    `json:"session_id"`
	DriverNumber   int    `json:"driver_number"`
	StintNumber    int    `json:"stint_number"`
	LapStart       int    `json:"lap_start"`
	LapEnd         int    `json:"lap_end"`
	TyreCompound   string `json:"tyre_compound"`
	TyreAgeAtStart int    `json:"tyre_age_at_start"`
}

type StintPatch struct {
	LapStart       omit.Val[int]    `json:"lap_start"`
	LapEnd         omit.Val[int]    `json:"lap_end"`
	TyreCompound   omit.Val[string] `json:"tyre_compound"`
	TyreAgeAtStart omit.Val[int]    `json:"tyre_age_at_start"`
}

// StintKey is the composite natural key of a stint.
type StintKey struct {
	RaceID       int
	SessionID    int
	DriverNumber int
	StintNumber  int
}
