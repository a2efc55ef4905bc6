package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-xray-sdk-go/xray"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/awsclient"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/config"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/utils"
)

const (
	projectName = "dining-concierge-admin"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "dining-admin",
		Short:        "Operator tools for the dining concierge: search index, restaurant ingestion, queue and schema",
		SilenceUsage: true,
	}

	root.AddCommand(newIndexCmd())
	root.AddCommand(newIngestCmd())
	root.AddCommand(newQueueCmd())
	root.AddCommand(newDBCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig は設定を読み込み、validateで必要な項目を検証します
// トレースが有効な場合はコマンドのコンテキストにセグメントを設定し、終了時に閉じる関数を返します
func loadConfig(cmd *cobra.Command, validate func(*config.Config) error) (*config.Config, func(), error) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return nil, nil, err
	}
	if validate != nil {
		if err := validate(cfg); err != nil {
			return nil, nil, err
		}
	}

	if !cfg.EnableTracing {
		return cfg, func() {}, nil
	}

	utils.ConfigureXRay("1.0.0")
	ctx, seg := xray.BeginSegment(cmd.Context(), projectName+"-"+cmd.Name())
	cmd.SetContext(ctx)
	return cfg, func() { seg.Close(nil) }, nil
}

func loadAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsclient.Load(ctx, cfg.Region, cfg.EnableTracing)
}
