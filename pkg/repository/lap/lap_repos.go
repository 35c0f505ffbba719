package lap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository"
)

var selector = `select lap_id, race_id, session_id, driver_number, lap_number,
	lap_duration, duration_sector_1, duration_sector_2, duration_sector_3,
	i1_speed, i2_speed, st_speed, is_pit_out_lap,
	pit_in_time, pit_out_time, track_status from lap`

// Create inserts a new lap. The composite key
// (race_id, session_id, driver_number, lap_number) must not exist yet,
// otherwise repository.ErrDuplicate is returned.
func Create(ctx context.Context, conn repository.Querier, l *model.Lap) (
	*model.Lap, error,
) {
	row := conn.QueryRow(ctx, `
	insert into lap (
		race_id, session_id, driver_number, lap_number,
		lap_duration, duration_sector_1, duration_sector_2, duration_sector_3,
		i1_speed, i2_speed, st_speed, is_pit_out_lap,
		pit_in_time, pit_out_time, track_status
	) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	returning lap_id
		`,
		l.RaceID, l.SessionID, l.DriverNumber, l.LapNumber,
		l.LapDuration, l.DurationSector1, l.DurationSector2, l.DurationSector3,
		l.I1Speed, l.I2Speed, l.StSpeed, l.IsPitOutLap,
		l.PitInTime, l.PitOutTime, l.TrackStatus,
	)
	if err := row.Scan(&l.LapID); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return LoadByID(ctx, conn, l.LapID)
}

func LoadByID(ctx context.Context, conn repository.Querier, lapID int) (
	*model.Lap, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where lap_id=$1", selector), lapID)
	return readData(row)
}

// LoadByKey finds the lap matching the composite natural key.
// Returns repository.ErrNoData if no such lap exists.
func LoadByKey(ctx context.Context, conn repository.Querier, key model.LapKey) (
	*model.Lap, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf(
		`%s where race_id=$1 and session_id=$2 and driver_number=$3
		and lap_number=$4`, selector),
		key.RaceID, key.SessionID, key.DriverNumber, key.LapNumber)
	return readData(row)
}

func LoadAll(ctx context.Context, conn repository.Querier) ([]*model.Lap, error) {
	rows, err := conn.Query(ctx, fmt.Sprintf("%s order by lap_id asc", selector))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.Lap, 0)
	for rows.Next() {
		item, err := readData(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, nil
}

// Update applies a partial update. Fields not set in the patch keep
// their stored values.
func Update(
	ctx context.Context,
	conn repository.Querier,
	lapID int,
	patch *model.LapPatch,
) (*model.Lap, error) {
	ps := patchSet(patch)
	if ps.Empty() {
		return LoadByID(ctx, conn, lapID)
	}
	cmdTag, err := conn.Exec(ctx,
		fmt.Sprintf("update lap set %s where lap_id=$%d",
			ps.Clause(), ps.NextPlaceholder()),
		ps.Args(lapID)...)
	if err != nil {
		return nil, err
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, repository.ErrNoData
	}
	return LoadByID(ctx, conn, lapID)
}

// UpdateReplayData applies replay provider fields to the lap identified by
// session, driver acronym and lap number. The driver number is resolved
// through the driver table since the replay provider has no numbers.
// Returns the number of laps updated (0 if no local lap matches).
func UpdateReplayData(
	ctx context.Context,
	conn repository.Querier,
	sessionID int,
	acronym string,
	lapNumber int,
	patch *model.LapPatch,
) (int, error) {
	ps := patchSet(patch)
	if ps.Empty() {
		return 0, nil
	}
	next := ps.NextPlaceholder()
	cmdTag, err := conn.Exec(ctx,
		fmt.Sprintf(`update lap set %s
		where session_id=$%d and lap_number=$%d
		and driver_number in
			(select driver_number from driver where name_acronym=$%d)`,
			ps.Clause(), next, next+1, next+2),
		ps.Args(sessionID, lapNumber, acronym)...)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, lapID int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from lap where lap_id=$1", lapID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

//nolint:cyclop // straightforward field mapping
func patchSet(patch *model.LapPatch) *repository.PatchSet {
	ps := repository.NewPatchSet()
	if patch.LapDuration.IsValue() {
		ps.Add("lap_duration", patch.LapDuration.MustGet())
	}
	if patch.DurationSector1.IsValue() {
		ps.Add("duration_sector_1", patch.DurationSector1.MustGet())
	}
	if patch.DurationSector2.IsValue() {
		ps.Add("duration_sector_2", patch.DurationSector2.MustGet())
	}
	if patch.DurationSector3.IsValue() {
		ps.Add("duration_sector_3", patch.DurationSector3.MustGet())
	}
	if patch.I1Speed.IsValue() {
		ps.Add("i1_speed", patch.I1Speed.MustGet())
	}
	if patch.I2Speed.IsValue() {
		ps.Add("i2_speed", patch.I2Speed.MustGet())
	}
	if patch.StSpeed.IsValue() {
		ps.Add("st_speed", patch.StSpeed.MustGet())
	}
	if patch.IsPitOutLap.IsValue() {
		ps.Add("is_pit_out_lap", patch.IsPitOutLap.MustGet())
	}
	if patch.PitInTime.IsValue() {
		ps.Add("pit_in_time", patch.PitInTime.MustGet())
	}
	if patch.PitOutTime.IsValue() {
		ps.Add("pit_out_time", patch.PitOutTime.MustGet())
	}
	if patch.TrackStatus.IsValue() {
		ps.Add("track_status", patch.TrackStatus.MustGet())
	}
	return ps
}

func readData(row pgx.Row) (*model.Lap, error) {
	var item model.Lap
	if err := row.Scan(
		&item.LapID, &item.RaceID, &item.SessionID, &item.DriverNumber,
		&item.LapNumber, &item.LapDuration, &item.DurationSector1,
		&item.DurationSector2, &item.DurationSector3,
		&item.I1Speed, &item.I2Speed, &item.StSpeed, &item.IsPitOutLap,
		&item.PitInTime, &item.PitOutTime, &item.TrackStatus,
	); err != nil {
		return nil, repository.WrapNoData(err)
	}
	return &item, nil
}
