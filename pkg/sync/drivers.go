package sync

import (
	"context"
	"errors"

	"github.com/aarondl/opt/omit"
	"github.com/samber/lo"

	"github.com/f1stats/f1stats-go/log"
	"github.com/f1stats/f1stats-go/pkg/model"
	"github.com/f1stats/f1stats-go/pkg/repository"
	"github.com/f1stats/f1stats-go/pkg/repository/driver"
	"github.com/f1stats/f1stats-go/pkg/repository/race"
)

// SyncDrivers reconciles the drivers of all known races. Driver records
// repeat across meetings with varying completeness, so all records of one
// driver are merged before the upsert. In particular the country code is
// often absent and taken from whichever record carries it.
func (s *Syncer) SyncDrivers(ctx context.Context) (*Result, error) {
	races, err := race.LoadAll(ctx, s.pool)
	if err != nil {
		return nil, err
	}
	collected := make([]*model.Driver, 0)
	for _, r := range races {
		records, err := s.openF1.Drivers(ctx, r.RaceID)
		if err != nil {
			s.log.Warn("driver fetch failed",
				log.Int("raceId", r.RaceID), log.ErrorField(err))
			continue
		}
		for i := range records {
			data, err := records[i].Canonical()
			if err != nil {
				s.log.Warn("skipping driver record",
					log.Int("raceId", r.RaceID), log.ErrorField(err))
				countOutcome("driver", outcomeSkipped)
				continue
			}
			collected = append(collected, data)
		}
	}
	merged := mergeDrivers(collected)
	ret := &Result{Total: len(collected)}
	for _, data := range merged {
		if err := s.upsertDriver(ctx, data, ret); err != nil {
			s.log.Warn("driver upsert failed",
				log.String("driverId", data.DriverID), log.ErrorField(err))
			countOutcome("driver", outcomeSkipped)
		}
	}
	return ret, nil
}

// mergeDrivers folds all records of one driver into a single one.
// Later records overwrite earlier ones, an absent attribute never
// erases a present one. Order of first appearance is kept.
func mergeDrivers(records []*model.Driver) []*model.Driver {
	grouped := lo.GroupBy(records, func(d *model.Driver) string { return d.DriverID })
	ids := lo.Uniq(lo.Map(records, func(d *model.Driver, _ int) string {
		return d.DriverID
	}))
	ret := make([]*model.Driver, 0, len(ids))
	for _, id := range ids {
		group := grouped[id]
		merged := *group[0]
		for _, d := range group[1:] {
			if d.FullName != "" {
				merged.FullName = d.FullName
			}
			if d.FirstName != "" {
				merged.FirstName = d.FirstName
			}
			if d.LastName != "" {
				merged.LastName = d.LastName
			}
			if d.CountryCode != "" {
				merged.CountryCode = d.CountryCode
			}
			if d.NameAcronym != "" {
				merged.NameAcronym = d.NameAcronym
			}
			if d.TeamName != "" {
				merged.TeamName = d.TeamName
			}
			if d.DriverNumber != 0 {
				merged.DriverNumber = d.DriverNumber
			}
		}
		ret = append(ret, &merged)
	}
	return ret
}

func (s *Syncer) upsertDriver(ctx context.Context, data *model.Driver, res *Result) error {
	_, err := driver.LoadByID(ctx, s.pool, data.DriverID)
	switch {
	case errors.Is(err, repository.ErrNoData):
		if _, err := driver.Create(ctx, s.pool, data); err != nil {
			return err
		}
		res.Created++
		countOutcome("driver", outcomeCreated)
	case err != nil:
		return err
	default:
		patch := &model.DriverPatch{
			FullName:     omit.From(data.FullName),
			FirstName:    omit.From(data.FirstName),
			LastName:     omit.From(data.LastName),
			DriverNumber: omit.From(data.DriverNumber),
			NameAcronym:  omit.From(data.NameAcronym),
			TeamName:     omit.From(data.TeamName),
		}
		// never blank out a known country code with an empty one
		if data.CountryCode != "" {
			patch.CountryCode = omit.From(data.CountryCode)
		}
		if _, err := driver.Update(ctx, s.pool, data.DriverID, patch); err != nil {
			return err
		}
		res.Updated++
		countOutcome("driver", outcomeUpdated)
	}
	return nil
}
