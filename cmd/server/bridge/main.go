package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/lexruntimeservice"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/awsclient"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/config"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/utils"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/lex"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/service/bridge"
)

const (
	projectName = "dining-concierge-bridge"
)

func main() {
	// .envがあれば読み込む
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}

	// 設定の読み込み
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateForBridge(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// X-Ray設定
	if cfg.EnableTracing {
		utils.ConfigureXRay("1.0.0")
	}

	awsCfg, err := awsclient.Load(context.Background(), cfg.Region, cfg.EnableTracing)
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	if !cfg.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	bot := lex.NewClient(lexruntimeservice.NewFromConfig(awsCfg), cfg.Lex.BotName, cfg.Lex.BotAlias)
	router := bridge.NewRouter(bridge.NewHandler(bot, cfg.Lex.UserID), projectName)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Bridge.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Bridge server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// シグナルハンドリング
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Failed to shut down server: %v", err)
	}
}
