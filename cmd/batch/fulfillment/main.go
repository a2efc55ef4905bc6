package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/awsclient"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/config"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/utils"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/mailer"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/queue"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/repository"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/service/batch"
)

const (
	projectName = "dining-concierge-fulfillment"
)

func main() {
	// コマンドライン引数のパース
	timeout := flag.Duration("timeout", 5*time.Minute, "バッチ処理のタイムアウト時間")
	flag.Parse()

	// 最後の引数として渡されたタスクトークンを取得
	// ENV=LOCALの場合はタスクトークンを取得しない
	taskToken := ""
	if os.Getenv("ENV") != "LOCAL" && flag.NArg() > 0 {
		taskToken = flag.Arg(flag.NArg() - 1)
	}

	// 設定の読み込み
	cfg, err := config.LoadConfig(taskToken)
	if err != nil {
		log.Fatalf("Failed to load config: %v\nStack trace:\n%s", err, debug.Stack())
	}
	if err := cfg.ValidateForFulfillment(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// X-Ray設定
	if cfg.EnableTracing {
		utils.ConfigureXRay("1.0.0")
	}

	awsCfg, err := awsclient.Load(context.Background(), cfg.Region, cfg.EnableTracing)
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v\nStack trace:\n%s", err, debug.Stack())
	}

	// Step Functionsクライアントの初期化
	// タスクトークンなしで起動された場合は結果を通知しない
	var sfnClient batch.SFNAPI
	if !cfg.IsLocal() && taskToken != "" {
		sfnClient = sfn.NewFromConfig(awsCfg)
	}

	restaurants, closeStore, err := repository.NewRestaurantRepositoryFromConfig(cfg, awsCfg)
	if err != nil {
		log.Fatalf("Failed to create restaurant repository: %v\nStack trace:\n%s", err, debug.Stack())
	}
	defer closeStore()

	index, err := repository.NewElasticSearchIndex(repository.SearchConfig{
		Endpoint:  cfg.Search.Endpoint,
		IndexName: cfg.Search.IndexName,
		Username:  cfg.Search.Username,
		Password:  cfg.Search.Password,
	})
	if err != nil {
		log.Fatalf("Failed to create search index client: %v", err)
	}

	// サービスの初期化
	service := batch.NewFulfillmentBatchService(
		cfg,
		queue.NewSQSQueue(sqs.NewFromConfig(awsCfg), cfg.Queue.URL),
		index,
		restaurants,
		mailer.NewSESMailer(ses.NewFromConfig(awsCfg), cfg.Mail.Sender),
		sfnClient,
	)

	// コンテキストの作成
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// X-Rayセグメントの作成
	if cfg.EnableTracing {
		var seg *xray.Segment
		ctx, seg = xray.BeginSegment(ctx, projectName)
		defer seg.Close(nil)

		// セグメントにメタデータを追加
		if err := seg.AddMetadata("timeout", timeout.String()); err != nil {
			log.Printf("Failed to add timeout metadata: %v", err)
		}
	}

	// シグナルハンドリングの設定
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// バッチ処理の実行
	errChan := make(chan error, 1)
	go func() {
		errChan <- utils.RunWithTimeout(ctx, *timeout, service.Run)
	}()

	// シグナルまたはエラーの待機
	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
		cancel()
	case err := <-errChan:
		if err != nil {
			log.Printf("Batch process failed: %v", utils.GetStackWithError(err))

			// ローカル環境以外の場合のみStep Functionsのエラー通知を行う
			if failErr := batch.SendTaskFailure(context.Background(), sfnClient, cfg, err); failErr != nil {
				log.Printf("Failed to send task failure: %v", failErr)
			}

			closeStore()
			os.Exit(1)
		}
		log.Println("Batch process completed successfully")
	}
}
