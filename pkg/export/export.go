// Package export builds a flat lap dataset suitable for analysis. Laps
// are joined with their race, session, driver and stint; the stint is
// resolved by lap range membership. Rows that would distort an analysis
// (missing timings, unknown tyres, pit out laps, outlier durations) are
// dropped.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/f1stats/f1stats-go/pkg/repository"
)

// Durations outside this open interval are considered outliers
// (in and out laps, red flags, crawling on damage).
const (
	minLapDuration = 60.0
	maxLapDuration = 150.0
)

var defaultSessionNames = []string{"Race", "Practice 2"}

// Row is one exported lap.
type Row struct {
	Year            int
	RaceName        string
	CircuitName     string
	SessionName     string
	SessionType     string
	FullName        string
	NameAcronym     string
	TeamName        string
	DriverNumber    int
	LapNumber       int
	LapDuration     float64
	DurationSector1 float64
	DurationSector2 float64
	DurationSector3 float64
	I1Speed         float64
	I2Speed         float64
	StSpeed         float64
	IsPitOutLap     bool
	StintNumber     int
	TyreCompound    string
	TyreAgeAtStart  int
	StintLapNumber  int
	TyreAge         int
}

type Exporter struct {
	conn         repository.Querier
	sessionNames []string
}

type Option func(*Exporter)

// WithSessionNames restricts the export to the given session names.
func WithSessionNames(names ...string) Option {
	return func(e *Exporter) {
		e.sessionNames = names
	}
}

func NewExporter(conn repository.Querier, opts ...Option) *Exporter {
	ret := &Exporter{conn: conn, sessionNames: defaultSessionNames}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// LapDataset loads and cleans the joined lap rows.
func (e *Exporter) LapDataset(ctx context.Context) ([]Row, error) {
	rows, err := e.conn.Query(ctx, `
	select r.year, r.race_name, r.circuit_name, s.session_name, s.session_type,
		d.full_name, d.name_acronym, d.team_name, l.driver_number,
		l.lap_number, l.lap_duration,
		l.duration_sector_1, l.duration_sector_2, l.duration_sector_3,
		l.i1_speed, l.i2_speed, l.st_speed, l.is_pit_out_lap,
		st.stint_number, st.tyre_compound, st.tyre_age_at_start,
		l.lap_number - st.lap_start + 1 as stint_lap_number
	from lap l
	join session s on s.session_id = l.session_id
	join race r on r.race_id = l.race_id
	join driver d on d.driver_number = l.driver_number
	join stint st on st.session_id = l.session_id
		and st.driver_number = l.driver_number
		and st.lap_start <= l.lap_number and st.lap_end >= l.lap_number
	where s.session_name = any($1)
	order by r.year, r.race_id, s.session_id, l.driver_number, l.lap_number
		`, e.sessionNames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]Row, 0)
	for rows.Next() {
		var item Row
		if err := rows.Scan(
			&item.Year, &item.RaceName, &item.CircuitName, &item.SessionName,
			&item.SessionType, &item.FullName, &item.NameAcronym, &item.TeamName,
			&item.DriverNumber, &item.LapNumber, &item.LapDuration,
			&item.DurationSector1, &item.DurationSector2, &item.DurationSector3,
			&item.I1Speed, &item.I2Speed, &item.StSpeed, &item.IsPitOutLap,
			&item.StintNumber, &item.TyreCompound, &item.TyreAgeAtStart,
			&item.StintLapNumber,
		); err != nil {
			return nil, err
		}
		item.TyreAge = item.TyreAgeAtStart + item.StintLapNumber
		ret = append(ret, item)
	}
	return lo.Filter(ret, func(r Row, _ int) bool { return keep(r) }), nil
}

// keep applies the cleaning rules.
func keep(r Row) bool {
	if r.LapDuration <= minLapDuration || r.LapDuration >= maxLapDuration {
		return false
	}
	if r.DurationSector1 == 0 || r.DurationSector2 == 0 || r.DurationSector3 == 0 {
		return false
	}
	if r.TyreCompound == "" || r.TyreCompound == "UNKNOWN" {
		return false
	}
	return !r.IsPitOutLap
}

var csvHeader = []string{
	"year", "race_name", "circuit_name", "session_name", "session_type",
	"full_name", "name_acronym", "team_name", "driver_number",
	"lap_number", "lap_duration",
	"duration_sector_1", "duration_sector_2", "duration_sector_3",
	"i1_speed", "i2_speed", "st_speed",
	"stint_number", "tyre_compound", "stint_lap_number", "tyre_age",
}

// WriteCSV writes the cleaned dataset to w and returns the number of
// data rows written.
func (e *Exporter) WriteCSV(ctx context.Context, w io.Writer) (int, error) {
	data, err := e.LapDataset(ctx)
	if err != nil {
		return 0, err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}
	for _, r := range data {
		record := []string{
			fmt.Sprintf("%d", r.Year), r.RaceName, r.CircuitName,
			r.SessionName, r.SessionType,
			r.FullName, r.NameAcronym, r.TeamName,
			fmt.Sprintf("%d", r.DriverNumber),
			fmt.Sprintf("%d", r.LapNumber),
			formatFloat(r.LapDuration),
			formatFloat(r.DurationSector1),
			formatFloat(r.DurationSector2),
			formatFloat(r.DurationSector3),
			formatFloat(r.I1Speed),
			formatFloat(r.I2Speed),
			formatFloat(r.StSpeed),
			fmt.Sprintf("%d", r.StintNumber), r.TyreCompound,
			fmt.Sprintf("%d", r.StintLapNumber),
			fmt.Sprintf("%d", r.TyreAge),
		}
		if err := cw.Write(record); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(data), cw.Error()
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
