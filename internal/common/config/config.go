package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/database"
)

// ErrMissingConfig は必須の環境変数が設定されていないことを表します
var ErrMissingConfig = errors.New("missing required configuration")

const (
	// RecordStoreDynamoDB はDynamoDBをレストラン情報の参照先にします
	RecordStoreDynamoDB = "dynamodb"
	// RecordStorePostgres はローカル開発用のPostgreSQLを参照先にします
	RecordStorePostgres = "postgres"
)

type Config struct {
	Env    string
	Region string
	DB     database.Config
	Queue  struct {
		URL string
	}
	DynamoDB struct {
		TableName string
	}
	RecordStore string
	Search      struct {
		Endpoint  string
		IndexName string
		Username  string
		Password  string
	}
	Mail struct {
		Sender string
	}
	Lex struct {
		BotName  string
		BotAlias string
		UserID   string
	}
	Bridge struct {
		Port int
	}
	Yelp struct {
		APIKey string
	}
	SFN struct {
		TaskToken string
	}
	EnableTracing bool
}

// LoadConfig は設定を読み込みます
func LoadConfig(taskToken string) (*Config, error) {
	cfg := &Config{
		Env:    os.Getenv("ENV"),
		Region: getEnvOrDefault("AWS_REGION", "us-east-1"),
		DB: database.Config{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvAsIntOrDefault("DB_PORT", 5432),
			UserName: getEnvOrDefault("DB_USERNAME", "sbcntrapp"),
			Password: getEnvOrDefault("DB_PASSWORD", "password"),
			DBName:   getEnvOrDefault("DB_NAME", "sbcntrapp"),
		},
		RecordStore:   strings.ToLower(getEnvOrDefault("RECORD_STORE", RecordStoreDynamoDB)),
		EnableTracing: false,
	}
	cfg.Queue.URL = os.Getenv("SQS_QUEUE_URL")
	cfg.DynamoDB.TableName = getEnvOrDefault("DYNAMODB_TABLE", "yelp-restaurants")
	cfg.Search.Endpoint = os.Getenv("SEARCH_ENDPOINT")
	cfg.Search.IndexName = getEnvOrDefault("SEARCH_INDEX", "restaurants")
	cfg.Search.Username = os.Getenv("SEARCH_USERNAME")
	cfg.Search.Password = os.Getenv("SEARCH_PASSWORD")
	cfg.Mail.Sender = os.Getenv("SES_SENDER")
	cfg.Lex.BotName = getEnvOrDefault("LEX_BOT_NAME", "BookTrip")
	cfg.Lex.BotAlias = getEnvOrDefault("LEX_BOT_ALIAS", "DiningSuggestion")
	cfg.Lex.UserID = getEnvOrDefault("LEX_USER_ID", "user1")
	cfg.Bridge.Port = getEnvAsIntOrDefault("BRIDGE_PORT", 8080)
	cfg.Yelp.APIKey = os.Getenv("YELP_API_KEY")
	cfg.SFN.TaskToken = taskToken

	if cfg.RecordStore != RecordStoreDynamoDB && cfg.RecordStore != RecordStorePostgres {
		return nil, fmt.Errorf("unsupported RECORD_STORE %q", cfg.RecordStore)
	}

	// 環境変数[SBCNTR_ENABLE_TRACING]を見てトレースを有効にする。対応しているTracingはAWS_XRAYのみ。
	// 環境変数[AWS_XRAY_SDK_DISABLED]がtrueの場合は必ずトレースを無効にする。
	enableKey := os.Getenv("SBCNTR_ENABLE_TRACING")
	if !sdkDisabled() && (strings.ToLower(enableKey) == "true" || enableKey == "1") {
		os.Setenv("AWS_XRAY_SDK_DISABLED", "FALSE")
		cfg.EnableTracing = true
	} else {
		os.Setenv("AWS_XRAY_SDK_DISABLED", "TRUE")
		cfg.EnableTracing = false
	}

	return cfg, nil
}

// IsLocal はENV=LOCALで起動されているかを返します
func (c *Config) IsLocal() bool {
	return c.Env == "LOCAL"
}

// ValidateForFulfillment は提案送信バッチに必要な設定を検証します
func (c *Config) ValidateForFulfillment() error {
	return require(map[string]string{
		"SQS_QUEUE_URL":   c.Queue.URL,
		"SEARCH_ENDPOINT": c.Search.Endpoint,
		"SES_SENDER":      c.Mail.Sender,
	})
}

// ValidateForDialog は対話フックに必要な設定を検証します
func (c *Config) ValidateForDialog() error {
	return require(map[string]string{
		"SQS_QUEUE_URL": c.Queue.URL,
	})
}

// ValidateForBridge はチャットブリッジに必要な設定を検証します
func (c *Config) ValidateForBridge() error {
	return require(map[string]string{
		"LEX_BOT_NAME":  c.Lex.BotName,
		"LEX_BOT_ALIAS": c.Lex.BotAlias,
	})
}

// ValidateForIndexer は検索インデックス投入に必要な設定を検証します
func (c *Config) ValidateForIndexer() error {
	return require(map[string]string{
		"SEARCH_ENDPOINT": c.Search.Endpoint,
		"SEARCH_INDEX":    c.Search.IndexName,
	})
}

// ValidateForIngest はレストラン取り込みに必要な設定を検証します
func (c *Config) ValidateForIngest() error {
	return require(map[string]string{
		"YELP_API_KEY": c.Yelp.APIKey,
	})
}

func require(values map[string]string) error {
	var missing []string
	for key, value := range values {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	// 出力を安定させるためにソートする
	slices.Sort(missing)
	return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Printf("Environment variable %s is not set, using default value", key)
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Check if SDK is disabled
func sdkDisabled() bool {
	disableKey := os.Getenv("AWS_XRAY_SDK_DISABLED")
	return strings.ToLower(disableKey) == "true"
}
