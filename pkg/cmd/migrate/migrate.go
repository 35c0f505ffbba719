package migrate

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/f1stats/f1stats-go/log"
	"github.com/f1stats/f1stats-go/pkg/cmd/option"
	"github.com/f1stats/f1stats-go/pkg/config"
	"github.com/f1stats/f1stats-go/pkg/db/migrate"
	"github.com/f1stats/f1stats-go/pkg/utils"
)

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "performs database migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startMigration()
		},
	}
	option.AddLogFlags(cmd)
	return cmd
}

func startMigration() error {
	option.SetupLogger()

	// wait for database
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	postgresAddr := utils.ExtractFromDBURL(config.DB)
	if err = utils.WaitForTCP(postgresAddr, timeout); err != nil {
		log.Error("database not ready", log.ErrorField(err))
		return err
	}

	if err := migrate.MigrateDb(config.DB); err != nil {
		log.Error("Could not perform migration", log.ErrorField(err))
		return err
	}
	log.Info("Database migration done")
	return nil
}
