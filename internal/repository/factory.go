package repository

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/config"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/database"
)

// NewRestaurantRepositoryFromConfig はRECORD_STOREに応じたリポジトリを作成します
// 返されたclose関数は使い終わった後に呼び出してください
func NewRestaurantRepositoryFromConfig(cfg *config.Config, awsCfg aws.Config) (RestaurantRepository, func() error, error) {
	switch cfg.RecordStore {
	case config.RecordStorePostgres:
		repo, db, err := NewPostgresRestaurantRepositoryFromConfig(cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return repo, db.Close, nil
	case config.RecordStoreDynamoDB:
		repo := NewDynamoRestaurantRepository(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDB.TableName)
		return repo, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported RECORD_STORE %q", cfg.RecordStore)
	}
}

// NewPostgresRestaurantRepositoryFromConfig はPostgreSQLに接続してリポジトリを作成します
func NewPostgresRestaurantRepositoryFromConfig(dbCfg database.Config) (*PostgresRestaurantRepository, *database.DB, error) {
	db, err := database.NewDB(dbCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewPostgresRestaurantRepository(&DB{DB: db.DB}), db, nil
}
