package correlate

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/f1stats/f1stats-go/log"
	"github.com/f1stats/f1stats-go/pkg/cmd/option"
	"github.com/f1stats/f1stats-go/pkg/config"
	"github.com/f1stats/f1stats-go/pkg/correlate"
	"github.com/f1stats/f1stats-go/pkg/db/postgres"
	"github.com/f1stats/f1stats-go/pkg/provider/replay"
)

func NewCorrelateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correlate sessionId",
		Short: "compares stored laps of a session against the replay provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid session id: %s", args[0])
			}
			return startCorrelation(cmd, sessionID)
		},
	}
	option.AddLogFlags(cmd)
	return cmd
}

func startCorrelation(cmd *cobra.Command, sessionID int) error {
	option.SetupLogger()
	pool, err := postgres.InitWithURL(config.DB)
	if err != nil {
		log.Error("could not connect to database", log.ErrorField(err))
		return err
	}
	defer pool.Close()

	replayClient := replay.NewClient(config.ReplayURL,
		replay.WithTimeout(option.ProviderTimeout()))
	correlator := correlate.NewCorrelator(pool, replayClient)

	report, err := correlator.CorrelateSession(cmd.Context(), sessionID)
	if err != nil {
		log.Error("correlation failed", log.ErrorField(err))
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
