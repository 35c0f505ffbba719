// Package sync provides the CLI entry for provider reconciliation runs.
package sync

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/f1stats/f1stats-go/log"
	"github.com/f1stats/f1stats-go/pkg/cmd/option"
	"github.com/f1stats/f1stats-go/pkg/config"
	"github.com/f1stats/f1stats-go/pkg/db/postgres"
	"github.com/f1stats/f1stats-go/pkg/provider/openf1"
	"github.com/f1stats/f1stats-go/pkg/provider/replay"
	"github.com/f1stats/f1stats-go/pkg/sync"
)

func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "reconciles provider data with the database",
	}
	option.AddLogFlags(cmd)
	cmd.AddCommand(newRacesCmd())
	cmd.AddCommand(newDriversCmd())
	cmd.AddCommand(newSessionsCmd())
	cmd.AddCommand(newStintsCmd())
	cmd.AddCommand(newLapsCmd())
	cmd.AddCommand(newReplayCmd())
	return cmd
}

func newRacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "races",
		Short: "sync all races from the REST provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), func(
				ctx context.Context, s *sync.Syncer,
			) (*sync.Result, error) {
				return s.SyncRaces(ctx)
			})
		},
	}
}

func newDriversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "sync the drivers of all known races",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), func(
				ctx context.Context, s *sync.Syncer,
			) (*sync.Result, error) {
				return s.SyncDrivers(ctx)
			})
		},
	}
}

func newSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions [raceId]",
		Short: "sync sessions, either for one race or for all known races",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), func(
				ctx context.Context, s *sync.Syncer,
			) (*sync.Result, error) {
				if len(args) == 0 {
					return s.SyncAllSessions(ctx)
				}
				raceID, err := strconv.Atoi(args[0])
				if err != nil {
					return nil, fmt.Errorf("invalid race id: %s", args[0])
				}
				return s.SyncSessions(ctx, raceID)
			})
		},
	}
}

func newStintsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stints [raceId]",
		Short: "sync stints, either for one race or for all known races",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), func(
				ctx context.Context, s *sync.Syncer,
			) (*sync.Result, error) {
				if len(args) == 0 {
					return s.SyncAllStints(ctx)
				}
				raceID, err := strconv.Atoi(args[0])
				if err != nil {
					return nil, fmt.Errorf("invalid race id: %s", args[0])
				}
				return s.SyncStints(ctx, raceID)
			})
		},
	}
}

func newLapsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "laps [raceId]",
		Short: "sync laps, either for one race or for all known races",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), func(
				ctx context.Context, s *sync.Syncer,
			) (*sync.Result, error) {
				if len(args) == 0 {
					return s.SyncAllLaps(ctx)
				}
				raceID, err := strconv.Atoi(args[0])
				if err != nil {
					return nil, fmt.Errorf("invalid race id: %s", args[0])
				}
				return s.SyncLaps(ctx, raceID)
			})
		},
	}
}

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay sessionId",
		Short: "augment the laps of a session with replay data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid session id: %s", args[0])
			}
			return runSync(cmd.Context(), func(
				ctx context.Context, s *sync.Syncer,
			) (*sync.Result, error) {
				return s.SyncReplayLaps(ctx, sessionID)
			})
		},
	}
}

func runSync(
	ctx context.Context,
	pass func(ctx context.Context, s *sync.Syncer) (*sync.Result, error),
) error {
	option.SetupLogger()
	pool, err := postgres.InitWithURL(config.DB)
	if err != nil {
		log.Error("could not connect to database", log.ErrorField(err))
		return err
	}
	defer pool.Close()

	providerTimeout := option.ProviderTimeout()
	openF1 := openf1.NewClient(
		openf1.WithBaseURL(config.OpenF1URL),
		openf1.WithTimeout(providerTimeout))
	replayClient := replay.NewClient(config.ReplayURL,
		replay.WithTimeout(providerTimeout))
	syncer := sync.NewSyncer(pool, openF1, sync.WithReplayClient(replayClient))

	res, err := pass(ctx, syncer)
	if err != nil {
		log.Error("sync failed", log.ErrorField(err))
		return err
	}
	log.Info("sync done",
		log.Int("created", res.Created),
		log.Int("updated", res.Updated),
		log.Int("total", res.Total))
	return nil
}
