package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/model"
)

// DynamoDBAPI はDynamoDBクライアントのうち利用するメソッドです
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoRestaurantRepository はDynamoDBのテーブルをレコードストアとして使います
// パーティションキーはbusinessIdです
type DynamoRestaurantRepository struct {
	client    DynamoDBAPI
	tableName string
}

// NewDynamoRestaurantRepository は新しいDynamoRestaurantRepositoryを作成します
func NewDynamoRestaurantRepository(client DynamoDBAPI, tableName string) *DynamoRestaurantRepository {
	return &DynamoRestaurantRepository{client: client, tableName: tableName}
}

// GetByID は指定されたIDのレストランを取得します
func (r *DynamoRestaurantRepository) GetByID(ctx context.Context, id string) (*model.RestaurantRecord, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "DynamoRestaurantRepository.GetByID")
	defer seg.Close(nil)

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"businessId": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("failed to get restaurant %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRestaurantNotFound, id)
	}

	var record model.RestaurantRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("failed to unmarshal restaurant %s: %w", id, err)
	}

	return &record, nil
}

// ListByCity は指定された都市のレストランをすべて取得します
func (r *DynamoRestaurantRepository) ListByCity(ctx context.Context, city string) ([]model.RestaurantRecord, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "DynamoRestaurantRepository.ListByCity")
	defer seg.Close(nil)

	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("city").Equal(expression.Value(city))).
		Build()
	if err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("failed to build scan expression: %w", err)
	}

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	var records []model.RestaurantRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			seg.Close(err)
			return nil, fmt.Errorf("failed to scan restaurants in %s: %w", city, err)
		}

		var items []model.RestaurantRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			seg.Close(err)
			return nil, fmt.Errorf("failed to unmarshal restaurants: %w", err)
		}
		records = append(records, items...)
	}

	if err := seg.AddMetadata("restaurant_count", len(records)); err != nil {
		log.Printf("Failed to add restaurant_count metadata: %v", err)
	}

	return records, nil
}

// Put はレストランを保存します。同じIDのレコードは上書きされます
func (r *DynamoRestaurantRepository) Put(ctx context.Context, record model.RestaurantRecord) error {
	ctx, seg := xray.BeginSubsegment(ctx, "DynamoRestaurantRepository.Put")
	defer seg.Close(nil)

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to marshal restaurant %s: %w", record.ID, err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}); err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to put restaurant %s: %w", record.ID, err)
	}

	return nil
}
