package model

import "github.com/aarondl/opt/omit"

// Telemetry holds aggregated per-lap signal summaries.
type Telemetry struct {
	TelemetryID  int     `json:"telemetry_id"`
	RaceID       int     `json:"race_id"`
	SessionID    int     `json:"session_id"`
	DriverNumber int     `json:"driver_number"`
	LapNumber    int     `json:"lap_number"`
	SpeedAvg     float64 `json:"speed_avg"`
	RpmMean      float64 `json:"rpm_mean"`
	GearMean     int     `json:"gear_mean"`
	ThrottleMean float64 `json:"throttle_mean"`
	BrakeUsage   float64 `json:"brake_usage"`
	DrsUsage     int     `json:"drs_usage"`
	TimeS        float64 `json:"time_s"`
}

type TelemetryPatch struct {
	SpeedAvg     omit.Val[float64] `json:"speed_avg"`
	RpmMean      omit.Val[float64] `json:"rpm_mean"`
	GearMean     omit.Val[int]     `json:"gear_mean"`
	ThrottleMean omit.Val[float64] `json:"throttle_mean"`
	BrakeUsage   omit.Val[float64] `json:"brake_usage"`
	DrsUsage     omit.Val[int]     `json:"drs_usage"`
	TimeS        omit.Val[float64] `json:"time_s"`
}
