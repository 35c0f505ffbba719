package sync

import (
	"context"
	"errors"

	"github.com/aarondl/opt/omit"

	"github.com/f1stats/f1stats-go/log"
	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository"
	"github.com/f1stats/f1stats-go/pkg/repository/race"
	"github.com/f1stats/f1stats-go/pkg/repository/session"
)

// SyncSessions reconciles the sessions of one race.
func (s *Syncer) SyncSessions(ctx context.Context, raceID int) (*Result, error) {
	if _, err := race.LoadByID(ctx, s.pool, raceID); err != nil {
		return nil, err
	}
	records, err := s.openF1.Sessions(ctx, raceID)
	if err != nil {
		return nil, err
	}
	ret := &Result{Total: len(records)}
	for i := range records {
		data, err := records[i].Canonical()
		if err != nil {
			s.log.Warn("skipping session record",
				log.Int("raceId", raceID), log.ErrorField(err))
			countOutcome("session", outcomeSkipped)
			continue
		}
		if err := s.upsertSession(ctx, data, ret); err != nil {
			s.log.Warn("session upsert failed",
				log.Int("sessionId", data.SessionID), log.ErrorField(err))
			countOutcome("session", outcomeSkipped)
		}
	}
	return ret, nil
}

// SyncAllSessions runs SyncSessions for every known race. A failing race
// does not stop the others.
func (s *Syncer) SyncAllSessions(ctx context.Context) (*Result, error) {
	races, err := race.LoadAll(ctx, s.pool)
	if err != nil {
		return nil, err
	}
	ret := &Result{}
	for _, r := range races {
		res, err := s.SyncSessions(ctx, r.RaceID)
		if err != nil {
			s.log.Warn("session sync failed",
				log.Int("raceId", r.RaceID), log.ErrorField(err))
			continue
		}
		ret.merge(res)
	}
	return ret, nil
}

func (s *Syncer) upsertSession(ctx context.Context, data *model.Session, res *Result) error {
	_, err := session.LoadBySessionID(ctx, s.pool, data.SessionID)
	switch {
	case errors.Is(err, repository.ErrNoData):
		if _, err := session.Create(ctx, s.pool, data); err != nil {
			return err
		}
		res.Created++
		countOutcome("session", outcomeCreated)
	case err != nil:
		return err
	default:
		patch := &model.SessionPatch{
			SessionName: omit.From(data.SessionName),
			SessionType: omit.From(data.SessionType),
		}
		if _, err := session.Update(ctx, s.pool, data.SessionID, patch); err != nil {
			return err
		}
		res.Updated++
		countOutcome("session", outcomeUpdated)
	}
	return nil
}
