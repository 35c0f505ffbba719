package model

import "github.com/aarondl/opt/omit"

// Session is identified by the provider assigned session key which is
// unique across all races.
type Session struct {
	ID          int    `json:"id"`
	SessionID   int    `json:"session_id"`
	RaceID      int    `json:"race_id"`
	SessionName string `json:"session_name"`
	SessionType string `json:"session_type"`
}

type SessionPatch struct {
	SessionName omit.Val[string] `json:"session_name"`
	SessionType omit.Val[string] `json:"session_type"`
}
