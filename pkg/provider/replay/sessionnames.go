package replay

// The replay provider labels sessions with short codes while the REST
// provider uses long names. Lookups are needed in both directions.
var sessionNames = map[string]string{
	"Practice 1": "FP1",
	"Practice 2": "FP2",
	"Practice 3": "FP3",
	"Qualifying": "Q",
	"Sprint":     "S",
	"Race":       "R",
}

// SessionName translates a long session name ("Practice 1") to the
// replay provider's short code ("FP1"). Unknown names pass through
// unchanged.
func SessionName(name string) string {
	if short, ok := sessionNames[name]; ok {
		return short
	}
	return name
}

// LongSessionName translates a replay short code ("FP1") back to the
// long session name ("Practice 1"). Unknown codes pass through unchanged.
func LongSessionName(code string) string {
	for long, short := range sessionNames {
		if short == code {
			return long
		}
	}
	return code
}
