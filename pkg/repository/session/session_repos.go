package session

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository"
)

var selector = `select id, session_id, race_id, session_name, session_type
	from session`

// Create inserts a new session. The session_id (provider session key) is
// unique across all races; repository.ErrDuplicate is returned otherwise.
func Create(ctx context.Context, conn repository.Querier, s *model.Session) (
	*model.Session, error,
) {
	row := conn.QueryRow(ctx, `
	insert into session (
		session_id, race_id, session_name, session_type
	) values ($1,$2,$3,$4)
	returning id
		`,
		s.SessionID, s.RaceID, s.SessionName, s.SessionType,
	)
	if err := row.Scan(&s.ID); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return LoadBySessionID(ctx, conn, s.SessionID)
}

func LoadBySessionID(ctx context.Context, conn repository.Querier, sessionID int) (
	*model.Session, error,
) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("%s where session_id=$1", selector), sessionID)
	return readData(row)
}

func LoadByRaceID(ctx context.Context, conn repository.Querier, raceID int) (
	[]*model.Session, error,
) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("%s where race_id=$1 order by session_id asc", selector), raceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func LoadAll(ctx context.Context, conn repository.Querier) ([]*model.Session, error) {
	rows, err := conn.Query(ctx, fmt.Sprintf("%s order by session_id asc", selector))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// Update applies a partial update. Fields not set in the patch keep
// their stored values.
func Update(
	ctx context.Context,
	conn repository.Querier,
	sessionID int,
	patch *model.SessionPatch,
) (*model.Session, error) {
	ps := repository.NewPatchSet()
	if patch.SessionName.IsValue() {
		ps.Add("session_name", patch.SessionName.MustGet())
	}
	if patch.SessionType.IsValue() {
		ps.Add("session_type", patch.SessionType.MustGet())
	}
	if ps.Empty() {
		return LoadBySessionID(ctx, conn, sessionID)
	}
	cmdTag, err := conn.Exec(ctx,
		fmt.Sprintf("update session set %s where session_id=$%d",
			ps.Clause(), ps.NextPlaceholder()),
		ps.Args(sessionID)...)
	if err != nil {
		return nil, err
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, repository.ErrNoData
	}
	return LoadBySessionID(ctx, conn, sessionID)
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteBySessionID(ctx context.Context, conn repository.Querier, sessionID int) (
	int, error,
) {
	cmdTag, err := conn.Exec(ctx, "delete from session where session_id=$1", sessionID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func collect(rows pgx.Rows) ([]*model.Session, error) {
	ret := make([]*model.Session, 0)
	for rows.Next() {
		item, err := readData(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, nil
}

func readData(row pgx.Row) (*model.Session, error) {
	var item model.Session
	if err := row.Scan(
		&item.ID, &item.SessionID, &item.RaceID, &item.SessionName,
		&item.SessionType,
	); err != nil {
		return nil, repository.WrapNoData(err)
	}
	return &item, nil
}
