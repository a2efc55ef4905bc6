package batch

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/model"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/yelp"
)

// MockRestaurantSource はテスト用のレストラン取得元です
type MockRestaurantSource struct {
	businesses map[string][]yelp.Business
	failFor    map[string]bool
	gotLimits  []int
}

func (m *MockRestaurantSource) SearchRestaurants(ctx context.Context, cuisine, location string, limit int) ([]yelp.Business, error) {
	m.gotLimits = append(m.gotLimits, limit)
	key := cuisine + "@" + location
	if m.failFor[key] {
		return nil, errMock
	}
	return m.businesses[key], nil
}

func newTestBusiness(id string) yelp.Business {
	b := yelp.Business{ID: id, Name: "Shop " + id, ReviewCount: 10, Rating: 4}
	b.Coordinates.Latitude = 40.7
	b.Coordinates.Longitude = -73.9
	b.Location.ZipCode = "10001"
	b.Location.DisplayAddress = []string{"1 Main St", "New York, NY 10001"}
	return b
}

func TestIngestService_Run(t *testing.T) {
	ctx, seg := xray.BeginSegment(context.Background(), "TestIngestService_Run")
	defer seg.Close(nil)

	cities := []IngestCity{{Location: "New York, NY", City: "New York", State: "NY"}}
	cuisines := []string{"chinese", "mexican"}

	tests := []struct {
		name      string
		source    *MockRestaurantSource
		putFunc   func(record model.RestaurantRecord) error
		wantSaved int
	}{
		{
			name: "すべてのジャンルを保存",
			source: &MockRestaurantSource{businesses: map[string][]yelp.Business{
				"chinese@New York, NY": {newTestBusiness("c1"), newTestBusiness("c2")},
				"mexican@New York, NY": {newTestBusiness("m1")},
			}},
			wantSaved: 3,
		},
		{
			name: "取得に失敗したジャンルはスキップ",
			source: &MockRestaurantSource{
				businesses: map[string][]yelp.Business{
					"mexican@New York, NY": {newTestBusiness("m1")},
				},
				failFor: map[string]bool{"chinese@New York, NY": true},
			},
			wantSaved: 1,
		},
		{
			name: "保存に失敗したレコードはスキップ",
			source: &MockRestaurantSource{businesses: map[string][]yelp.Business{
				"chinese@New York, NY": {newTestBusiness("c1"), newTestBusiness("c2")},
			}},
			putFunc: func(record model.RestaurantRecord) error {
				if record.ID == "c1" {
					return errMock
				}
				return nil
			},
			wantSaved: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRestaurantRepository{putFunc: tt.putFunc}
			service := NewIngestService(tt.source, repo, cities, cuisines)

			saved, err := service.Run(ctx)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if saved != tt.wantSaved {
				t.Errorf("saved = %d, want %d", saved, tt.wantSaved)
			}
			if len(repo.put) != tt.wantSaved {
				t.Errorf("stored %d records, want %d", len(repo.put), tt.wantSaved)
			}
			for _, limit := range tt.source.gotLimits {
				if limit != IngestLimit {
					t.Errorf("limit = %d, want %d", limit, IngestLimit)
				}
			}
		})
	}
}

func TestNewRestaurantRecord(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 30, 45, 0, time.UTC)
	city := IngestCity{Location: "New York, NY", City: "New York", State: "NY"}

	got := newRestaurantRecord(newTestBusiness("c1"), "chinese", city, now)

	want := model.RestaurantRecord{
		ID:          "c1",
		Name:        "Shop c1",
		Address:     "1 Main St, New York, NY 10001",
		Coordinates: model.Coordinates{Latitude: 40.7, Longitude: -73.9},
		ReviewCount: 10,
		Rating:      4,
		ZipCode:     "10001",
		Cuisine:     "chinese",
		City:        "New York",
		State:       "NY",
		InsertedAt:  "2025-03-01T12:30:45",
	}
	if got != want {
		t.Errorf("newRestaurantRecord() = %+v, want %+v", got, want)
	}
}
