package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/config"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/repository"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/service/batch"
)

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the restaurant search index",
	}
	cmd.AddCommand(newIndexCreateCmd())
	cmd.AddCommand(newIndexPopulateCmd())
	return cmd
}

func newSearchIndex(cfg *config.Config) (*repository.ElasticSearchIndex, error) {
	return repository.NewElasticSearchIndex(repository.SearchConfig{
		Endpoint:  cfg.Search.Endpoint,
		IndexName: cfg.Search.IndexName,
		Username:  cfg.Search.Username,
		Password:  cfg.Search.Password,
	})
}

func newIndexCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create the search index with keyword mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, done, err := loadConfig(cmd, (*config.Config).ValidateForIndexer)
			if err != nil {
				return err
			}
			defer done()
			index, err := newSearchIndex(cfg)
			if err != nil {
				return err
			}

			// インデックス作成にはレコードストアを使わない
			return batch.NewIndexPopulationService(nil, index).CreateIndex(cmd.Context())
		},
	}
}

func newIndexPopulateCmd() *cobra.Command {
	var city string

	c := &cobra.Command{
		Use:   "populate",
		Short: "Copy restaurants of a city from the record store into the search index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, done, err := loadConfig(cmd, (*config.Config).ValidateForIndexer)
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

			index, err := newSearchIndex(cfg)
			if err != nil {
				return err
			}

			result, err := batch.NewIndexPopulationService(restaurants, index).PopulateIndex(ctx, city)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d of %d restaurants in %s (%d failed)\n",
				result.Indexed, result.Total, result.City, result.Failed)
			return nil
		},
	}

	c.Flags().StringVar(&city, "city", "New York", "City whose restaurants are indexed")
	return c
}
