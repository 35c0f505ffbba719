package sync

import (
	"context"
	"errors"

	"github.com/aarondl/opt/omit"

	"github.com/f1stats/f1stats-go/log"
	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository"
	"github.com/f1stats/f1stats-go/pkg/repository/lap"
	"github.com/f1stats/f1stats-go/pkg/repository/race"
)

// SyncLaps reconciles the laps of one race. Laps without a measured
// duration are not stored, they still count towards Total.
func (s *Syncer) SyncLaps(ctx context.Context, raceID int) (*Result, error) {
	if _, err := race.LoadByID(ctx, s.pool, raceID); err != nil {
		return nil, err
	}
	records, err := s.openF1.Laps(ctx, raceID)
	if err != nil {
		return nil, err
	}
	ret := &Result{Total: len(records)}
	for i := range records {
		if !records[i].HasDuration() {
			countOutcome("lap", outcomeSkipped)
			continue
		}
		data, err := records[i].Canonical(raceID)
		if err != nil {
			s.log.Warn("skipping lap record",
				log.Int("raceId", raceID), log.ErrorField(err))
			countOutcome("lap", outcomeSkipped)
			continue
		}
		if err := s.upsertLap(ctx, data, ret); err != nil {
			s.log.Warn("lap upsert failed",
				log.Int("sessionId", data.SessionID),
				log.Int("driverNumber", data.DriverNumber),
				log.Int("lapNumber", data.LapNumber),
				log.ErrorField(err))
			countOutcome("lap", outcomeSkipped)
		}
	}
	return ret, nil
}

// SyncAllLaps runs SyncLaps for every known race. A failing race does
// not stop the others.
func (s *Syncer) SyncAllLaps(ctx context.Context) (*Result, error) {
	races, err := race.LoadAll(ctx, s.pool)
	if err != nil {
		return nil, err
	}
	ret := &Result{}
	for _, r := range races {
		res, err := s.SyncLaps(ctx, r.RaceID)
		if err != nil {
			s.log.Warn("lap sync failed",
				log.Int("raceId", r.RaceID), log.ErrorField(err))
			continue
		}
		ret.merge(res)
	}
	return ret, nil
}

func (s *Syncer) upsertLap(ctx context.Context, data *model.Lap, res *Result) error {
	key := model.LapKey{
		RaceID:       data.RaceID,
		SessionID:    data.SessionID,
		DriverNumber: data.DriverNumber,
		LapNumber:    data.LapNumber,
	}
	existing, err := lap.LoadByKey(ctx, s.pool, key)
	switch {
	case errors.Is(err, repository.ErrNoData):
		if _, err := lap.Create(ctx, s.pool, data); err != nil {
			return err
		}
		res.Created++
		countOutcome("lap", outcomeCreated)
	case err != nil:
		return err
	default:
		patch := &model.LapPatch{
			LapDuration:     omit.From(data.LapDuration),
			DurationSector1: omit.From(data.DurationSector1),
			DurationSector2: omit.From(data.DurationSector2),
			DurationSector3: omit.From(data.DurationSector3),
			I1Speed:         omit.From(data.I1Speed),
			I2Speed:         omit.From(data.I2Speed),
			StSpeed:         omit.From(data.StSpeed),
			IsPitOutLap:     omit.From(data.IsPitOutLap),
		}
		if _, err := lap.Update(ctx, s.pool, existing.LapID, patch); err != nil {
			return err
		}
		res.Updated++
		countOutcome("lap", outcomeUpdated)
	}
	return nil
}
