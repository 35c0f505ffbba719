package sync

import (
	"context"
	"errors"

	"github.com/aarondl/opt/omit"

	"github.com/f1stats/f1stats-go/log"
	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository"
	"github.com/f1stats/f1stats-go/pkg/repository/race"
	"github.com/f1stats/f1stats-go/pkg/repository/stint"
)

// SyncStints reconciles the stints of one race.
func (s *Syncer) SyncStints(ctx context.Context, raceID int) (*Result, error) {
	if _, err := race.LoadByID(ctx, s.pool, raceID); err != nil {
		return nil, err
	}
	records, err := s.openF1.Stints(ctx, raceID)
	if err != nil {
		return nil, err
	}
	ret := &Result{Total: len(records)}
	for i := range records {
		data, err := records[i].Canonical(raceID)
		if err != nil {
			s.log.Warn("skipping stint record",
				log.Int("raceId", raceID), log.ErrorField(err))
			countOutcome("stint", outcomeSkipped)
			continue
		}
		if err := s.upsertStint(ctx, data, ret); err != nil {
			s.log.Warn("stint upsert failed",
				log.Int("sessionId", data.SessionID),
				log.Int("driverNumber", data.DriverNumber),
				log.Int("stintNumber", data.StintNumber),
				log.ErrorField(err))
			countOutcome("stint", outcomeSkipped)
		}
	}
	return ret, nil
}

// SyncAllStints runs SyncStints for every known race. A failing race
// does not stop the others.
func (s *Syncer) SyncAllStints(ctx context.Context) (*Result, error) {
	races, err := race.LoadAll(ctx, s.pool)
	if err != nil {
		return nil, err
	}
	ret := &Result{}
	for _, r := range races {
		res, err := s.SyncStints(ctx, r.RaceID)
		if err != nil {
			s.log.Warn("stint sync failed",
				log.Int("raceId", r.RaceID), log.ErrorField(err))
			continue
		}
		ret.merge(res)
	}
	return ret, nil
}

func (s *Syncer) upsertStint(ctx context.Context, data *model.Stint, res *Result) error {
	key := model.StintKey{
		RaceID:       data.RaceID,
		SessionID:    data.SessionID,
		DriverNumber: data.DriverNumber,
		StintNumber:  data.StintNumber,
	}
	existing, err := stint.LoadByKey(ctx, s.pool, key)
	switch {
	case errors.Is(err, repository.ErrNoData):
		if _, err := stint.Create(ctx, s.pool, data); err != nil {
			return err
		}
		res.Created++
		countOutcome("stint", outcomeCreated)
	case err != nil:
		return err
	default:
		patch := &model.StintPatch{
			LapStart:       omit.From(data.LapStart),
			LapEnd:         omit.From(data.LapEnd),
			TyreCompound:   omit.From(data.TyreCompound),
			TyreAgeAtStart: omit.From(data.TyreAgeAtStart),
		}
		if _, err := stint.Update(ctx, s.pool, existing.StintID, patch); err != nil {
			return err
		}
		res.Updated++
		countOutcome("stint", outcomeUpdated)
	}
	return nil
}
