package stint

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository"
)

var selector = `select stint_id, race_id, session_id, driver_number,
	stint_number, lap_start, lap_end, tyre_compound, tyre_age_at_start
	from stint`

// Create inserts a new stint. The composite key
// (race_id, session_id, driver_number, stint_number) must not exist yet,
// otherwise repository.ErrDuplicate is returned.
func Create(ctx context.Context, conn repository.Querier, s *model.Stint) (
	*model.Stint, error,
) {
	row := conn.QueryRow(ctx, `
	insert into stint (
		race_id, session_id, driver_number, stint_number,
		lap_start, lap_end, tyre_compound, tyre_age_at_start
	) values ($1,$2,$3,$4,$5,$6,$7,$8)
	returning stint_id
		`,
		s.RaceID, s.SessionID, s.DriverNumber, s.StintNumber,
		s.LapStart, s.LapEnd, s.TyreCompound, s.TyreAgeAtStart,
	)
	if err := row.Scan(&s.StintID); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return LoadByID(ctx, conn, s.StintID)
}

func LoadByID(ctx context.Context, conn repository.Querier, stintID int) (
	*model.Stint, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where stint_id=$1", selector), stintID)
	return readData(row)
}

// LoadByKey finds the stint matching the composite natural key.
// Returns repository.ErrNoData if no such stint exists.
func LoadByKey(ctx context.Context, conn repository.Querier, key model.StintKey) (
	*model.Stint, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf(
		`%s where race_id=$1 and session_id=$2 and driver_number=$3
		and stint_number=$4`, selector),
		key.RaceID, key.SessionID, key.DriverNumber, key.StintNumber)
	return readData(row)
}

func LoadAll(ctx context.Context, conn repository.Querier) ([]*model.Stint, error) {
	rows, err := conn.Query(ctx, fmt.Sprintf("%s order by stint_id asc", selector))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.Stint, 0)
	for rows.Next() {
		item, err := readData(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, nil
}

// LoadForLap finds the stint whose lap range contains the given lap.
// Stint membership of a lap is derived here at read time, it is not
// stored on the lap itself.
func LoadForLap(ctx context.Context, conn repository.Querier, l *model.Lap) (
	*model.Stint, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf(
		`%s where race_id=$1 and session_id=$2 and driver_number=$3
		and lap_start<=$4 and lap_end>=$4`, selector),
		l.RaceID, l.SessionID, l.DriverNumber, l.LapNumber)
	return readData(row)
}

// Update applies a partial update. Fields not set in the patch keep
// their stored values.
func Update(
	ctx context.Context,
	conn repository.Querier,
	stintID int,
	patch *model.StintPatch,
) (*model.Stint, error) {
	ps := repository.NewPatchSet()
	if patch.LapStart.IsValue() {
		ps.Add("lap_start", patch.LapStart.MustGet())
	}
	if patch.LapEnd.IsValue() {
		ps.Add("lap_end", patch.LapEnd.MustGet())
	}
	if patch.TyreCompound.IsValue() {
		ps.Add("tyre_compound", patch.TyreCompound.MustGet())
	}
	if patch.TyreAgeAtStart.IsValue() {
		ps.Add("tyre_age_at_start", patch.TyreAgeAtStart.MustGet())
	}
	if ps.Empty() {
		return LoadByID(ctx, conn, stintID)
	}
	cmdTag, err := conn.Exec(ctx,
		fmt.Sprintf("update stint set %s where stint_id=$%d",
			ps.Clause(), ps.NextPlaceholder()),
		ps.Args(stintID)...)
	if err != nil {
		return nil, err
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, repository.ErrNoData
	}
	return LoadByID(ctx, conn, stintID)
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, stintID int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from stint where stint_id=$1", stintID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func readData(row pgx.Row) (*model.Stint, error) {
	var item model.Stint
	if err := row.Scan(
		&item.StintID, &item.RaceID, &item.SessionID, &item.DriverNumber,
		&item.StintNumber, &item.LapStart, &item.LapEnd, &item.TyreCompound,
		&item.TyreAgeAtStart,
	); err != nil {
		return nil, repository.WrapNoData(err)
	}
	return &item, nil
}
