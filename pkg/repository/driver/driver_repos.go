package driver

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository"
)

var selector = `select driver_id, full_name, first_name, last_name,
	driver_number, name_acronym, team_name, country_code from driver`

// Create inserts a new driver. The driver_id must not exist yet,
// otherwise repository.ErrDuplicate is returned.
func Create(ctx context.Context, conn repository.Querier, d *model.Driver) (
	*model.Driver, error,
) {
	_, err := conn.Exec(ctx, `
	insert into driver (
		driver_id, full_name, first_name, last_name, driver_number,
		name_acronym, team_name, country_code
	) values ($1,$2,$3,$4,$5,$6,$7,$8)
		`,
		d.DriverID, d.FullName, d.FirstName, d.LastName, d.DriverNumber,
		d.NameAcronym, d.TeamName, d.CountryCode,
	)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return LoadByID(ctx, conn, d.DriverID)
}

func LoadByID(ctx context.Context, conn repository.Querier, driverID string) (
	*model.Driver, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where driver_id=$1", selector), driverID)
	return readData(row)
}

func LoadByNumber(ctx context.Context, conn repository.Querier, driverNumber int) (
	*model.Driver, error,
) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("%s where driver_number=$1", selector), driverNumber)
	return readData(row)
}

// LoadByAcronym finds a driver by the three letter name acronym.
// The replay provider identifies drivers this way.
func LoadByAcronym(ctx context.Context, conn repository.Querier, acronym string) (
	*model.Driver, error,
) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("%s where name_acronym=$1", selector), acronym)
	return readData(row)
}

func LoadAll(ctx context.Context, conn repository.Querier) ([]*model.Driver, error) {
	rows, err := conn.Query(ctx, fmt.Sprintf("%s order by driver_id asc", selector))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.Driver, 0)
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
	driverID string,
	patch *model.DriverPatch,
) (*model.Driver, error) {
	ps := repository.NewPatchSet()
	if patch.FullName.IsValue() {
		ps.Add("full_name", patch.FullName.MustGet())
	}
	if patch.FirstName.IsValue() {
		ps.Add("first_name", patch.FirstName.MustGet())
	}
	if patch.LastName.IsValue() {
		ps.Add("last_name", patch.LastName.MustGet())
	}
	if patch.DriverNumber.IsValue() {
		ps.Add("driver_number", patch.DriverNumber.MustGet())
	}
	if patch.NameAcronym.IsValue() {
		ps.Add("name_acronym", patch.NameAcronym.MustGet())
	}
	if patch.TeamName.IsValue() {
		ps.Add("team_name", patch.TeamName.MustGet())
	}
	if patch.CountryCode.IsValue() {
		ps.Add("country_code", patch.CountryCode.MustGet())
	}
	if ps.Empty() {
		return LoadByID(ctx, conn, driverID)
	}
	cmdTag, err := conn.Exec(ctx,
		fmt.Sprintf("update driver set %s where driver_id=$%d",
			ps.Clause(), ps.NextPlaceholder()),
		ps.Args(driverID)...)
	if err != nil {
		return nil, err
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, repository.ErrNoData
	}
	return LoadByID(ctx, conn, driverID)
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, driverID string) (
	int, error,
) {
	cmdTag, err := conn.Exec(ctx, "delete from driver where driver_id=$1", driverID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func readData(row pgx.Row) (*model.Driver, error) {
	var item model.Driver
	if err := row.Scan(
		&item.DriverID, &item.FullName, &item.FirstName, &item.LastName,
		&item.DriverNumber, &item.NameAcronym, &item.TeamName, &item.CountryCode,
	); err != nil {
		return nil, repository.WrapNoData(err)
	}
	return &item, nil
}
