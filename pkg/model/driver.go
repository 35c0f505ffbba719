package model

import (
	"regexp"
	"strings"

	"github.com/aarondl/opt/omit"
)

// Driver is uniquely identified by its driver_id which is derived
// from the full name (see NormalizeDriverID).
type Driver struct {
	DriverID     string `json:"driver_id"`
	FullName     string `json:"full_name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	DriverNumber int    `json:"driver_number"`
	NameAcronym  string `json:"name_acronym"`
	TeamName     string `json:"team_name"`
	CountryCode  string `json:"country_code"`
}

// DriverPatch carries the fields of a partial update. Only fields
// explicitly set are applied; absent fields leave the stored value alone.
type DriverPatch struct {
	FullName     omit.Val[string] `json:"full_name"`
	FirstName    omit.Val[string] `json:"first_name"`
	LastName     omit.Val[string] `json:"last_name"`
	DriverNumber omit.Val[int]    `json:"driver_number"`
	NameAcronym  omit.Val[string] `json:"name_acronym"`
	TeamName     omit.Val[string] `json:"team_name"`
	CountryCode  omit.Val[string] `json:"country_code"`
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	invalidRe    = regexp.MustCompile(`[^a-z0-9_]`)
)

// NormalizeDriverID converts a full name to firstname_lastname (lowercase).
// The result is stable: normalizing an already normalized id is a no-op.
func NormalizeDriverID(fullName string) string {
	id := strings.ToLower(strings.TrimSpace(fullName))
	id = whitespaceRe.ReplaceAllString(id, "_")
	return invalidRe.ReplaceAllString(id, "")
}
