package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/model"
)

// MockDynamoDBClient はテスト用のモックDynamoDBクライアントです
type MockDynamoDBClient struct {
	items    map[string]map[string]types.AttributeValue
	pages    [][]map[string]types.AttributeValue
	scanCall int
	scans    []*dynamodb.ScanInput
	err      error
}

func (m *MockDynamoDBClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	key := params.Key["businessId"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: m.items[key]}, nil
}

func (m *MockDynamoDBClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.items == nil {
		m.items = map[string]map[string]types.AttributeValue{}
	}
	key := params.Item["businessId"].(*types.AttributeValueMemberS).Value
	m.items[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *MockDynamoDBClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.scans = append(m.scans, params)
	out := &dynamodb.ScanOutput{Items: m.pages[m.scanCall]}
	m.scanCall++
	if m.scanCall < len(m.pages) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"businessId": &types.AttributeValueMemberS{Value: "cursor"},
		}
	}
	return out, nil
}

func mustMarshal(t *testing.T, record model.RestaurantRecord) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		t.Fatalf("MarshalMap() error = %v", err)
	}
	return item
}

func TestDynamoRestaurantRepository_PutAndGet(t *testing.T) {
	ctx, seg := xray.BeginSegment(context.Background(), "TestDynamoRestaurantRepository_PutAndGet")
	defer seg.Close(nil)

	client := &MockDynamoDBClient{}
	repo := NewDynamoRestaurantRepository(client, "yelp-restaurants")

	record := model.RestaurantRecord{
		ID:          "r1",
		Name:        "Joe's Shanghai",
		Address:     "46 Bowery, New York, NY 10013",
		Coordinates: model.Coordinates{Latitude: 40.71, Longitude: -73.99},
		Rating:      4.5,
		Cuisine:     "chinese",
		City:        "New York",
		State:       "NY",
	}
	if err := repo.Put(ctx, record); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, ok := client.items["r1"]["businessId"]; !ok {
		t.Fatalf("item should be keyed by businessId: %v", client.items["r1"])
	}

	got, err := repo.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != record.Name || got.Coordinates.Latitude != 40.71 || got.Rating != 4.5 {
		t.Errorf("GetByID() = %+v, want %+v", got, record)
	}
}

func TestDynamoRestaurantRepository_GetByID_Errors(t *testing.T) {
	ctx, seg := xray.BeginSegment(context.Background(), "TestDynamoRestaurantRepository_GetByID_Errors")
	defer seg.Close(nil)

	tests := []struct {
		name    string
		client  *MockDynamoDBClient
		wantErr error
	}{
		{name: "存在しないID", client: &MockDynamoDBClient{}, wantErr: ErrRestaurantNotFound},
		{name: "DynamoDBエラー", client: &MockDynamoDBClient{err: errors.New("throttled")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewDynamoRestaurantRepository(tt.client, "yelp-restaurants")
			_, err := repo.GetByID(ctx, "missing")
			if err == nil {
				t.Fatal("GetByID() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("GetByID() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDynamoRestaurantRepository_ListByCity(t *testing.T) {
	ctx, seg := xray.BeginSegment(context.Background(), "TestDynamoRestaurantRepository_ListByCity")
	defer seg.Close(nil)

	client := &MockDynamoDBClient{
		pages: [][]map[string]types.AttributeValue{
			{
				mustMarshal(t, model.RestaurantRecord{ID: "r1", Cuisine: "chinese", City: "New York"}),
				mustMarshal(t, model.RestaurantRecord{ID: "r2", Cuisine: "mexican", City: "New York"}),
			},
			{
				mustMarshal(t, model.RestaurantRecord{ID: "r3", Cuisine: "american", City: "New York"}),
			},
		},
	}
	repo := NewDynamoRestaurantRepository(client, "yelp-restaurants")

	got, err := repo.ListByCity(ctx, "New York")
	if err != nil {
		t.Fatalf("ListByCity() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListByCity() returned %d records, want 3", len(got))
	}
	if client.scanCall != 2 {
		t.Errorf("Scan called %d times, want 2", client.scanCall)
	}
	if aws.ToString(client.scans[0].TableName) != "yelp-restaurants" || client.scans[0].FilterExpression == nil {
		t.Errorf("unexpected scan input: %+v", client.scans[0])
	}
}
