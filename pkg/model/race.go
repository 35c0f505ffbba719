package model

import "github.com/aarondl/opt/omit"

// Race is identified by the meeting key assigned by the provider.
type Race struct {
	RaceID      int    `json:"race_id"`
	RaceName    string `json:"race_name"`
	CircuitName string `json:"circuit_name"`
	Location    string `json:"location"`
	CountryName string `json:"country_name"`
	Year        int    `json:"year"`
}

type RacePatch struct {
	RaceName    omit.Val[string] `json:"race_name"`
	CircuitName omit.Val[string] `json:"circuit_name"`
	Location    omit.Val[string] `json:"location"`
	CountryName omit.Val[string] `json:"country_name"`
	Year        omit.Val[int]    `json:"year"`
}
