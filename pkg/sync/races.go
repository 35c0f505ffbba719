package sync

import (
	"context"
	"errors"

	"github.com/aarondl/opt/omit"

	"github.com/f1stats/f1stats-go/log"
	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository"
	"github.com/f1stats/f1stats-go/pkg/repository/race"
)

// SyncRaces reconciles all provider meetings with the race table.
func (s *Syncer) SyncRaces(ctx context.Context) (*Result, error) {
	records, err := s.openF1.Meetings(ctx)
	if err != nil {
		return nil, err
	}
	ret := &Result{Total: len(records)}
	for i := range records {
		data, err := records[i].Canonical()
		if err != nil {
			s.log.Warn("skipping meeting record", log.ErrorField(err))
			countOutcome("race", outcomeSkipped)
			continue
		}
		if err := s.upsertRace(ctx, data, ret); err != nil {
			s.log.Warn("race upsert failed",
				log.Int("raceId", data.RaceID), log.ErrorField(err))
			countOutcome("race", outcomeSkipped)
		}
	}
	return ret, nil
}

func (s *Syncer) upsertRace(ctx context.Context, data *model.Race, res *Result) error {
	_, err := race.LoadByID(ctx, s.pool, data.RaceID)
	switch {
	case errors.Is(err, repository.ErrNoData):
		if _, err := race.Create(ctx, s.pool, data); err != nil {
			return err
		}
		res.Created++
		countOutcome("race", outcomeCreated)
	case err != nil:
		return err
	default:
		patch := &model.RacePatch{
			RaceName:    omit.From(data.RaceName),
			CircuitName: omit.From(data.CircuitName),
			Location:    omit.From(data.Location),
			CountryName: omit.From(data.CountryName),
			Year:        omit.From(data.Year),
		}
		if _, err := race.Update(ctx, s.pool, data.RaceID, patch); err != nil {
			return err
		}
		res.Updated++
		countOutcome("race", outcomeUpdated)
	}
	return nil
}
