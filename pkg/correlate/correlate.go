// Package correlate joins lap data from two sources on a composite of
// five attributes. The sources disagree on formatting (case, whitespace,
// session naming), so all attributes are normalized before the join.
package correlate

import (
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/f1stats/f1stats-go/pkg/provider/replay"
)

// Record is one lap as seen by either source.
type Record struct {
	Year        int     `json:"year"`
	EventName   string  `json:"event_name"`
	SessionName string  `json:"session_name"`
	Driver      string  `json:"driver"`
	LapNumber   int     `json:"lap_number"`
	LapTime     float64 `json:"lap_time"`
}

// Key is the normalized join key of a record.
type Key struct {
	Year      int
	Event     string
	Session   string
	Driver    string
	LapNumber int
}

// key normalizes the record: event names are compared case insensitively
// and trimmed, session names are reduced to the replay short code, driver
// acronyms are upper case.
func (r Record) key() Key {
	return Key{
		Year:      r.Year,
		Event:     strings.ToLower(strings.TrimSpace(r.EventName)),
		Session:   replay.SessionName(strings.TrimSpace(r.SessionName)),
		Driver:    strings.ToUpper(strings.TrimSpace(r.Driver)),
		LapNumber: r.LapNumber,
	}
}

// Match pairs the lap times both sources report for the same lap.
type Match struct {
	Key       Key     `json:"-"`
	Driver    string  `json:"driver"`
	LapNumber int     `json:"lap_number"`
	LeftTime  float64 `json:"left_time"`
	RightTime float64 `json:"right_time"`
	Delta     float64 `json:"delta"`
}

// Report summarizes one correlation run. Matched never exceeds the
// smaller of the two sides.
type Report struct {
	TotalLeft      int     `json:"total_left"`
	TotalRight     int     `json:"total_right"`
	Matched        int     `json:"matched"`
	MatchRateLeft  float64 `json:"match_rate_left"`
	MatchRateRight float64 `json:"match_rate_right"`
	Matches        []Match `json:"matches"`
}

// Correlate inner-joins both sides on the normalized five attribute key.
// Duplicate keys within one side collapse to their last occurrence.
func Correlate(left, right []Record) *Report {
	leftByKey := lo.KeyBy(left, func(r Record) Key { return r.key() })
	rightByKey := lo.KeyBy(right, func(r Record) Key { return r.key() })

	matches := make([]Match, 0)
	for key, l := range leftByKey {
		rt, ok := rightByKey[key]
		if !ok {
			continue
		}
		matches = append(matches, Match{
			Key:       key,
			Driver:    key.Driver,
			LapNumber: key.LapNumber,
			LeftTime:  l.LapTime,
			RightTime: rt.LapTime,
			Delta:     l.LapTime - rt.LapTime,
		})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Driver != matches[j].Driver {
			return matches[i].Driver < matches[j].Driver
		}
		return matches[i].LapNumber < matches[j].LapNumber
	})
	return &Report{
		TotalLeft:      len(left),
		TotalRight:     len(right),
		Matched:        len(matches),
		MatchRateLeft:  matchRate(len(matches), len(left)),
		MatchRateRight: matchRate(len(matches), len(right)),
		Matches:        matches,
	}
}

// matchRate computes matched/total as a percentage with two decimals.
func matchRate(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	rate := decimal.NewFromInt(int64(matched)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	ret, _ := rate.Float64()
	return ret
}
