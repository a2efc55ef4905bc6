package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/config"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/repository"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/service/batch"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/yelp"
)

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load restaurants into the record store",
	}
	cmd.AddCommand(newIngestYelpCmd())
	return cmd
}

func newIngestYelpCmd() *cobra.Command {
	var (
		baseURL  string
		cuisines []string
	)

	c := &cobra.Command{
		Use:   "yelp",
		Short: "Fetch restaurants per city and cuisine from Yelp and store them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, done, err := loadConfig(cmd, (*config.Config).ValidateForIngest)
			if err != nil {
				return err
			}
			defer done()
			ctx := cmd.Context()

			awsCfg, err := loadAWSConfig(ctx, cfg)
			if err != nil {
				return err
			}
			restaurants, closeStore, err := repository.NewRestaurantRepositoryFromConfig(cfg, awsCfg)
			if err != nil {
				return err
			}
			defer closeStore()

			service := batch.NewIngestService(yelp.NewClient(baseURL, cfg.Yelp.APIKey), restaurants, batch.DefaultIngestCities, cuisines)
			saved, err := service.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d restaurants\n", saved)
			return nil
		},
	}

	c.Flags().StringVar(&baseURL, "base-url", yelp.DefaultBaseURL, "Yelp Fusion API base URL")
	c.Flags().StringSliceVar(&cuisines, "cuisine", batch.DefaultIngestCuisines, "Cuisines to ingest")
	return c
}
