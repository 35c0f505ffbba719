package correlate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(driver string, lapNumber int, lapTime float64) Record {
	return Record{
		Year:        2023,
		EventName:   "Singapore Grand Prix",
		SessionName: "Race",
		Driver:      driver,
		LapNumber:   lapNumber,
		LapTime:     lapTime,
	}
}

func TestCorrelate(t *testing.T) {
	left := []Record{
		record("HAM", 1, 92.3),
		record("HAM", 2, 91.8),
		record("VER", 1, 91.5),
	}
	right := []Record{
		record("HAM", 1, 92.345),
		record("VER", 1, 91.5),
		record("VER", 2, 90.9),
		record("PER", 1, 93.1),
	}
	report := Correlate(left, right)
	assert.Equal(t, 3, report.TotalLeft)
	assert.Equal(t, 4, report.TotalRight)
	assert.Equal(t, 2, report.Matched)
	// 2/3 and 2/4 as percentages
	assert.InDelta(t, 66.67, report.MatchRateLeft, 1e-9)
	assert.InDelta(t, 50.0, report.MatchRateRight, 1e-9)

	require.Len(t, report.Matches, 2)
	wantFirst := Match{
		Key: Key{
			Year: 2023, Event: "singapore grand prix", Session: "R",
			Driver: "HAM", LapNumber: 1,
		},
		Driver:    "HAM",
		LapNumber: 1,
		LeftTime:  92.3,
		RightTime: 92.345,
		Delta:     92.3 - 92.345,
	}
	if diff := cmp.Diff(wantFirst, report.Matches[0]); diff != "" {
		t.Errorf("first match mismatch (-want +got):\n%s", diff)
	}
}

func TestCorrelateNormalization(t *testing.T) {
	left := []Record{{
		Year:        2023,
		EventName:   "  Singapore Grand Prix ",
		SessionName: "Practice 1",
		Driver:      "ham",
		LapNumber:   5,
		LapTime:     95.0,
	}}
	right := []Record{{
		Year:        2023,
		EventName:   "singapore grand prix",
		SessionName: "FP1",
		Driver:      "HAM",
		LapNumber:   5,
		LapTime:     95.1,
	}}
	report := Correlate(left, right)
	assert.Equal(t, 1, report.Matched)
	assert.InDelta(t, 100.0, report.MatchRateLeft, 1e-9)
}

func TestCorrelateDuplicateKeyLastWins(t *testing.T) {
	left := []Record{
		record("HAM", 1, 92.3),
		record("HAM", 1, 91.7),
	}
	right := []Record{record("HAM", 1, 92.0)}
	report := Correlate(left, right)
	require.Len(t, report.Matches, 1)
	assert.Equal(t, 91.7, report.Matches[0].LeftTime)
}

func TestCorrelateBounds(t *testing.T) {
	tests := []struct {
		name  string
		left  []Record
		right []Record
	}{
		{name: "both empty"},
		{name: "left empty", right: []Record{record("HAM", 1, 92.3)}},
		{name: "right empty", left: []Record{record("HAM", 1, 92.3)}},
		{
			name: "duplicate keys collapse",
			left: []Record{
				record("HAM", 1, 92.3),
				record("HAM", 1, 92.3),
			},
			right: []Record{record("HAM", 1, 92.345)},
		},
		{
			name:  "different years never match",
			left:  []Record{record("HAM", 1, 92.3)},
			right: []Record{{Year: 2024, EventName: "Singapore Grand Prix", SessionName: "Race", Driver: "HAM", LapNumber: 1, LapTime: 92.3}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Correlate(tt.left, tt.right)
			smaller := min(len(tt.left), len(tt.right))
			assert.LessOrEqual(t, report.Matched, smaller)
			assert.LessOrEqual(t, report.MatchRateLeft, 100.0)
			assert.LessOrEqual(t, report.MatchRateRight, 100.0)
		})
	}
}
