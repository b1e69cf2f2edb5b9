package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agro/config"
	"agro/database"
	producerRepoImp "agro/pkg/producer/repositoryImp"
	producerSvcImp "agro/pkg/producer/serviceImp"
	"agro/pkg/seed"
)

func NewSeedCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load producers from a YAML fixture",
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

			fh, err := os.Open(file)
			if err != nil {
				return err
			}
			defer fh.Close()
			fx, err := seed.Load(fh)
			if err != nil {
				return err
			}

			svc := producerSvcImp.NewProducerService(producerRepoImp.New(db), producerSvcImp.Paging{})
			res, err := seed.Apply(cmd.Context(), svc, fx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d, skipped %d\n", res.Created, res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "fixtures/producers.yaml", "YAML fixture to load")
	return cmd
}
