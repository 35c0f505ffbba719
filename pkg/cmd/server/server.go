package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/f1stats/f1stats-go/log"
	"github.com/f1stats/f1stats-go/pkg/cmd/option"
	"github.com/f1stats/f1stats-go/pkg/config"
	"github.com/f1stats/f1stats-go/pkg/correlate"
	"github.com/f1stats/f1stats-go/pkg/db/postgres"
	"github.com/f1stats/f1stats-go/pkg/endpoints"
	"github.com/f1stats/f1stats-go/pkg/provider/openf1"
	"github.com/f1stats/f1stats-go/pkg/provider/replay"
	"github.com/f1stats/f1stats-go/pkg/sync"
	"github.com/f1stats/f1stats-go/pkg/utils"
)

func NewServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "starts the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startServer(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&config.HTTPServerAddr,
		"addr",
		"localhost:8080",
		"listen address for the HTTP API")
	option.AddLogFlags(cmd)
	return cmd
}

func startServer(ctx context.Context) error {
	logger := option.SetupLogger()

	log.Info("Starting server")
	if timeout, err := time.ParseDuration(config.WaitForServices); err == nil {
		if addr := utils.ExtractFromDBURL(config.DB); addr != "" {
			if err := utils.WaitForTCP(addr, timeout); err != nil {
				log.Error("database not ready", log.ErrorField(err))
				return err
			}
		}
	}
	pool, err := postgres.InitWithURL(
		config.DB,
		postgres.WithTracer(logger,
			option.ParseLogLevel(config.SQLLogLevel, log.DebugLevel)))
	if err != nil {
		log.Error("server could not be started", log.ErrorField(err))
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
	correlator := correlate.NewCorrelator(pool, replayClient)

	srv := endpoints.NewServer(pool,
		endpoints.WithSyncer(syncer),
		endpoints.WithCorrelator(correlator))

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Server started", log.String("addr", config.HTTPServerAddr))
	if err := srv.ListenAndServe(runCtx, config.HTTPServerAddr); err != nil {
		log.Error("server terminated with error", log.ErrorField(err))
		return err
	}
	log.Info("Server terminated")
	return nil
}
