package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/aarondl/opt/omit"

	"github.com/f1stats/f1stats-go/log"
	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/provider/replay"
	"github.com/f1stats/f1stats-go/pkg/repository"
	"github.com/f1stats/f1stats-go/pkg/repository/driver"
	"github.com/f1stats/f1stats-go/pkg/repository/lap"
	"github.com/f1stats/f1stats-go/pkg/repository/race"
	"github.com/f1stats/f1stats-go/pkg/repository/session"
	"github.com/f1stats/f1stats-go/pkg/repository/telemetry"
)

var ErrNoReplayClient = errors.New("no replay client configured")

// SyncReplayLaps augments the laps of one session with replay data: pit
// events and track status are applied to existing laps, telemetry
// aggregates are stored as per-lap summaries. Updated counts augmented
// laps, Created counts new telemetry summaries. Replay records without a
// matching local lap are skipped.
func (s *Syncer) SyncReplayLaps(ctx context.Context, sessionID int) (*Result, error) {
	if s.replay == nil {
		return nil, ErrNoReplayClient
	}
	sess, err := session.LoadBySessionID(ctx, s.pool, sessionID)
	if err != nil {
		return nil, err
	}
	r, err := race.LoadByID(ctx, s.pool, sess.RaceID)
	if err != nil {
		return nil, err
	}
	records, err := s.replay.SessionLaps(ctx, r.Year, r.RaceName, sess.SessionName)
	if err != nil {
		return nil, err
	}
	ret := &Result{Total: len(records)}
	for i := range records {
		data := records[i].Canonical()
		if data.Driver == "" || data.LapNumber == 0 {
			countOutcome("replay_lap", outcomeSkipped)
			continue
		}
		if err := s.applyReplayLap(ctx, sess, &records[i], &data, ret); err != nil {
			s.log.Warn("replay lap failed",
				log.Int("sessionId", sessionID),
				log.String("driver", data.Driver),
				log.Int("lapNumber", data.LapNumber),
				log.ErrorField(err))
			countOutcome("replay_lap", outcomeSkipped)
		}
	}
	return ret, nil
}

func (s *Syncer) applyReplayLap(
	ctx context.Context,
	sess *model.Session,
	rec *replay.LapRecord,
	data *replay.Lap,
	res *Result,
) error {
	patch := &model.LapPatch{}
	if rec.PitInTimeMs != nil {
		patch.PitInTime = omit.From(data.PitInTime)
	}
	if rec.PitOutTimeMs != nil {
		patch.PitOutTime = omit.From(data.PitOutTime)
	}
	if rec.TrackStatus != nil {
		patch.TrackStatus = omit.From(data.TrackStatus)
	}
	updated, err := lap.UpdateReplayData(ctx, s.pool,
		sess.SessionID, data.Driver, data.LapNumber, patch)
	if err != nil {
		return err
	}
	if updated > 0 {
		res.Updated += updated
		countOutcome("replay_lap", outcomeUpdated)
	} else if rec.HasPitData() {
		return fmt.Errorf("no local lap for %s lap %d", data.Driver, data.LapNumber)
	}
	if rec.HasTelemetry() {
		return s.upsertTelemetry(ctx, sess, data, res)
	}
	return nil
}

func (s *Syncer) upsertTelemetry(
	ctx context.Context,
	sess *model.Session,
	data *replay.Lap,
	res *Result,
) error {
	d, err := driver.LoadByAcronym(ctx, s.pool, data.Driver)
	if err != nil {
		return err
	}
	key := model.LapKey{
		RaceID:       sess.RaceID,
		SessionID:    sess.SessionID,
		DriverNumber: d.DriverNumber,
		LapNumber:    data.LapNumber,
	}
	existing, err := telemetry.LoadByKey(ctx, s.pool, key)
	switch {
	case errors.Is(err, repository.ErrNoData):
		item := &model.Telemetry{
			RaceID:       key.RaceID,
			SessionID:    key.SessionID,
			DriverNumber: key.DriverNumber,
			LapNumber:    key.LapNumber,
			SpeedAvg:     data.SpeedAvg,
			RpmMean:      data.RpmMean,
			GearMean:     data.GearMean,
			ThrottleMean: data.ThrottleMean,
			BrakeUsage:   data.BrakeUsage,
			DrsUsage:     data.DrsUsage,
			TimeS:        data.TimeS,
		}
		if _, err := telemetry.Create(ctx, s.pool, item); err != nil {
			return err
		}
		res.Created++
		countOutcome("telemetry", outcomeCreated)
	case err != nil:
		return err
	default:
		patch := &model.TelemetryPatch{
			SpeedAvg:     omit.From(data.SpeedAvg),
			RpmMean:      omit.From(data.RpmMean),
			GearMean:     omit.From(data.GearMean),
			ThrottleMean: omit.From(data.ThrottleMean),
			BrakeUsage:   omit.From(data.BrakeUsage),
			DrsUsage:     omit.From(data.DrsUsage),
			TimeS:        omit.From(data.TimeS),
		}
		if _, err := telemetry.Update(ctx, s.pool, existing.TelemetryID, patch); err != nil {
			return err
		}
		countOutcome("telemetry", outcomeUpdated)
	}
	return nil
}
