package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/repository"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Local PostgreSQL record store",
	}
	cmd.AddCommand(newDBMigrateCmd())
	return cmd
}

func newDBMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the restaurants table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, done, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			defer done()

			repo, db, err := repository.NewPostgresRestaurantRepositoryFromConfig(cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := repo.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "restaurants table is ready")
			return nil
		},
	}
}
