package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agro/config"
	"agro/database"
	"agro/pkg/export"
	producerRepoImp "agro/pkg/producer/repositoryImp"
	producerSvcImp "agro/pkg/producer/serviceImp"
)

func NewExportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every producer to an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.OpenSQLite(cfg.DBPath, cfg.DBLogSQL)
			if err != nil {
				return err
			}
			defer func() {
				if sqlDB, err := db.DB(); err == nil {
					sqlDB.Close()
				}
			}()

			svc := producerSvcImp.NewProducerService(producerRepoImp.New(db), producerSvcImp.Paging{
				Default: cfg.DefaultPageSize,
				Max:     cfg.MaxPageSize,
			})
			all, err := export.CollectAll(cmd.Context(), svc, cfg.MaxPageSize)
			if err != nil {
				return err
			}

			fh, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := export.WriteProducers(fh, all); err != nil {
				fh.Close()
				return err
			}
			if err := fh.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d producers to %s\n", len(all), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "producers.xlsx", "output file")
	return cmd
}
