package export

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/f1stats/f1stats-go/log"
	"github.com/f1stats/f1stats-go/pkg/cmd/option"
	"github.com/f1stats/f1stats-go/pkg/config"
	"github.com/f1stats/f1stats-go/pkg/db/postgres"
	"github.com/f1stats/f1stats-go/pkg/export"
)

var (
	outFile      string
	sessionNames []string
)

func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "exports the cleaned lap dataset as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startExport(cmd)
		},
	}
	cmd.Flags().StringVarP(&outFile,
		"out",
		"o",
		"laps.csv",
		"output file (- for stdout)")
	cmd.Flags().StringSliceVar(&sessionNames,
		"session-names",
		nil,
		"restrict export to these session names")
	option.AddLogFlags(cmd)
	return cmd
}

func startExport(cmd *cobra.Command) error {
	option.SetupLogger()
	pool, err := postgres.InitWithURL(config.DB)
	if err != nil {
		log.Error("could not connect to database", log.ErrorField(err))
		return err
	}
	defer pool.Close()

	opts := []export.Option{}
	if len(sessionNames) > 0 {
		opts = append(opts, export.WithSessionNames(sessionNames...))
	}
	exporter := export.NewExporter(pool, opts...)

	out := os.Stdout
	if outFile != "-" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	num, err := exporter.WriteCSV(cmd.Context(), out)
	if err != nil {
		log.Error("export failed", log.ErrorField(err))
		return err
	}
	log.Info("export done", log.Int("rows", num), log.String("out", outFile))
	return nil
}
