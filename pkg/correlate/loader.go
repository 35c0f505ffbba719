package correlate

import (
	"context"

	"github.com/samber/lo"

	"github.com/f1stats/f1stats-go/pkg/provider/replay"
	"github.com/f1stats/f1stats-go/pkg/repository"
	"github.com/f1stats/f1stats-go/pkg/repository/race"
	"github.com/f1stats/f1stats-go/pkg/repository/session"
)

// Correlator compares locally stored laps of one session against the
// replay provider's view of the same session.
type Correlator struct {
	conn   repository.Querier
	replay *replay.Client
}

func NewCorrelator(conn repository.Querier, replayClient *replay.Client) *Correlator {
	return &Correlator{conn: conn, replay: replayClient}
}

// CorrelateSession loads both sides for one session and joins them.
// The local database is the left side, the replay provider the right.
func (c *Correlator) CorrelateSession(ctx context.Context, sessionID int) (
	*Report, error,
) {
	sess, err := session.LoadBySessionID(ctx, c.conn, sessionID)
	if err != nil {
		return nil, err
	}
	r, err := race.LoadByID(ctx, c.conn, sess.RaceID)
	if err != nil {
		return nil, err
	}
	left, err := c.loadLocal(ctx, sess.SessionID)
	if err != nil {
		return nil, err
	}
	records, err := c.replay.SessionLaps(ctx, r.Year, r.RaceName, sess.SessionName)
	if err != nil {
		return nil, err
	}
	right := FromReplay(records, r.Year, r.RaceName, sess.SessionName)
	return Correlate(left, right), nil
}

// loadLocal reads the laps of one session with the attributes needed for
// the join key. The driver acronym comes from the driver table.
func (c *Correlator) loadLocal(ctx context.Context, sessionID int) ([]Record, error) {
	rows, err := c.conn.Query(ctx, `
	select r.year, r.race_name, s.session_name, d.name_acronym,
		l.lap_number, l.lap_duration
	from lap l
	join session s on s.session_id = l.session_id
	join race r on r.race_id = l.race_id
	join driver d on d.driver_number = l.driver_number
	where l.session_id = $1
	order by d.name_acronym, l.lap_number
		`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]Record, 0)
	for rows.Next() {
		var item Record
		if err := rows.Scan(&item.Year, &item.EventName, &item.SessionName,
			&item.Driver, &item.LapNumber, &item.LapTime); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, nil
}

// FromReplay converts replay lap records to correlation records. Laps
// without a measured time are dropped.
func FromReplay(records []replay.LapRecord, year int, event, sessionName string) []Record {
	withTime := lo.Filter(records, func(r replay.LapRecord, _ int) bool {
		return r.LapTimeMs != nil
	})
	return lo.Map(withTime, func(r replay.LapRecord, _ int) Record {
		data := r.Canonical()
		return Record{
			Year:        year,
			EventName:   event,
			SessionName: sessionName,
			Driver:      data.Driver,
			LapNumber:   data.LapNumber,
			LapTime:     data.LapTime,
		}
	})
}
