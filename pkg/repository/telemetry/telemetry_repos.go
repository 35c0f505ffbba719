package telemetry

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository"
)

var selector = `select telemetry_id, race_id, session_id, driver_number,
	lap_number, speed_avg, rpm_mean, gear_mean, throttle_mean, brake_usage,
	drs_usage, time_s from telemetry`

// Create inserts a new telemetry summary. The composite key
// (race_id, session_id, driver_number, lap_number) must not exist yet,
// otherwise repository.ErrDuplicate is returned.
func Create(ctx context.Context, conn repository.Querier, t *model.Telemetry) (
	*model.Telemetry, error,
) {
	row := conn.QueryRow(ctx, `
	insert into telemetry (
		race_id, session_id, driver_number, lap_number,
		speed_avg, rpm_mean, gear_mean, throttle_mean, brake_usage,
		drs_usage, time_s
	) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	returning telemetry_id
		`,
		t.RaceID, t.SessionID, t.DriverNumber, t.LapNumber,
		t.SpeedAvg, t.RpmMean, t.GearMean, t.ThrottleMean, t.BrakeUsage,
		t.DrsUsage, t.TimeS,
	)
	if err := row.Scan(&t.TelemetryID); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return LoadByID(ctx, conn, t.TelemetryID)
}

func LoadByID(ctx context.Context, conn repository.Querier, telemetryID int) (
	*model.Telemetry, error,
) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("%s where telemetry_id=$1", selector), telemetryID)
	return readData(row)
}

// LoadByKey finds the telemetry summary for one lap of one driver.
// Returns repository.ErrNoData if no entry exists.
func LoadByKey(ctx context.Context, conn repository.Querier, key model.LapKey) (
	*model.Telemetry, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf(
		`%s where race_id=$1 and session_id=$2 and driver_number=$3
		and lap_number=$4`, selector),
		key.RaceID, key.SessionID, key.DriverNumber, key.LapNumber)
	return readData(row)
}

func LoadAll(ctx context.Context, conn repository.Querier) ([]*model.Telemetry, error) {
	rows, err := conn.Query(ctx, fmt.Sprintf("%s order by telemetry_id asc", selector))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.Telemetry, 0)
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
	telemetryID int,
	patch *model.TelemetryPatch,
) (*model.Telemetry, error) {
	ps := repository.NewPatchSet()
	if patch.SpeedAvg.IsValue() {
		ps.Add("speed_avg", patch.SpeedAvg.MustGet())
	}
	if patch.RpmMean.IsValue() {
		ps.Add("rpm_mean", patch.RpmMean.MustGet())
	}
	if patch.GearMean.IsValue() {
		ps.Add("gear_mean", patch.GearMean.MustGet())
	}
	if patch.ThrottleMean.IsValue() {
		ps.Add("throttle_mean", patch.ThrottleMean.MustGet())
	}
	if patch.BrakeUsage.IsValue() {
		ps.Add("brake_usage", patch.BrakeUsage.MustGet())
	}
	if patch.DrsUsage.IsValue() {
		ps.Add("drs_usage", patch.DrsUsage.MustGet())
	}
	if patch.TimeS.IsValue() {
		ps.Add("time_s", patch.TimeS.MustGet())
	}
	if ps.Empty() {
		return LoadByID(ctx, conn, telemetryID)
	}
	cmdTag, err := conn.Exec(ctx,
		fmt.Sprintf("update telemetry set %s where telemetry_id=$%d",
			ps.Clause(), ps.NextPlaceholder()),
		ps.Args(telemetryID)...)
	if err != nil {
		return nil, err
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, repository.ErrNoData
	}
	return LoadByID(ctx, conn, telemetryID)
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, telemetryID int) (
	int, error,
) {
	cmdTag, err := conn.Exec(ctx,
		"delete from telemetry where telemetry_id=$1", telemetryID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func readData(row pgx.Row) (*model.Telemetry, error) {
	var item model.Telemetry
	if err := row.Scan(
		&item.TelemetryID, &item.RaceID, &item.SessionID, &item.DriverNumber,
		&item.LapNumber, &item.SpeedAvg, &item.RpmMean, &item.GearMean,
		&item.ThrottleMean, &item.BrakeUsage, &item.DrsUsage, &item.TimeS,
	); err != nil {
		return nil, repository.WrapNoData(err)
	}
	return &item, nil
}
