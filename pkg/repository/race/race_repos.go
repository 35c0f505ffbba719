package race

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository"
)

var selector = `select race_id, race_name, circuit_name, location,
	country_name, year from race`

// Create inserts a new race. The race_id (provider meeting key) must not
// exist yet, otherwise repository.ErrDuplicate is returned.
func Create(ctx context.Context, conn repository.Querier, r *model.Race) (
	*model.Race, error,
) {
	_, err := conn.Exec(ctx, `
	insert into race (
		race_id, race_name, circuit_name, location, country_name, year
	) values ($1,$2,$3,$4,$5,$6)
		`,
		r.RaceID, r.RaceName, r.CircuitName, r.Location, r.CountryName, r.Year,
	)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return LoadByID(ctx, conn, r.RaceID)
}

func LoadByID(ctx context.Context, conn repository.Querier, raceID int) (
	*model.Race, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where race_id=$1", selector), raceID)
	return readData(row)
}

func LoadAll(ctx context.Context, conn repository.Querier) ([]*model.Race, error) {
	rows, err := conn.Query(ctx, fmt.Sprintf("%s order by year,race_id asc", selector))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.Race, 0)
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
	raceID int,
	patch *model.RacePatch,
) (*model.Race, error) {
	ps := repository.NewPatchSet()
	if patch.RaceName.IsValue() {
		ps.Add("race_name", patch.RaceName.MustGet())
	}
	if patch.CircuitName.IsValue() {
		ps.Add("circuit_name", patch.CircuitName.MustGet())
	}
	if patch.Location.IsValue() {
		ps.Add("location", patch.Location.MustGet())
	}
	if patch.CountryName.IsValue() {
		ps.Add("country_name", patch.CountryName.MustGet())
	}
	if patch.Year.IsValue() {
		ps.Add("year", patch.Year.MustGet())
	}
	if ps.Empty() {
		return LoadByID(ctx, conn, raceID)
	}
	cmdTag, err := conn.Exec(ctx,
		fmt.Sprintf("update race set %s where race_id=$%d",
			ps.Clause(), ps.NextPlaceholder()),
		ps.Args(raceID)...)
	if err != nil {
		return nil, err
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, repository.ErrNoData
	}
	return LoadByID(ctx, conn, raceID)
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, raceID int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from race where race_id=$1", raceID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func readData(row pgx.Row) (*model.Race, error) {
	var item model.Race
	if err := row.Scan(
		&item.RaceID, &item.RaceName, &item.CircuitName, &item.Location,
		&item.CountryName, &item.Year,
	); err != nil {
		return nil, repository.WrapNoData(err)
	}
	return &item, nil
}
