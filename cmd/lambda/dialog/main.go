package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/awsclient"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/config"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/queue"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/service/dialog"
)

func main() {
	// 設定の読み込み
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateForDialog(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	awsCfg, err := awsclient.Load(context.Background(), cfg.Region, cfg.EnableTracing)
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	// Lambdaのトレースセグメントはランタイムが作成する
	dispatcher := dialog.NewDispatcher(queue.NewSQSQueue(sqs.NewFromConfig(awsCfg), cfg.Queue.URL))
	lambda.Start(dispatcher.Dispatch)
}
