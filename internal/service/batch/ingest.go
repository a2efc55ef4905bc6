package batch

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/model"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/repository"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/yelp"
)

// IngestLimit は都市と料理ジャンルの組み合わせごとに取り込む最大件数です
const IngestLimit = 50

// IngestCity は取り込み対象の都市です
type IngestCity struct {
	Location string
	City     string
	State    string
}

// DefaultIngestCities は標準の取り込み対象都市です
var DefaultIngestCities = []IngestCity{
	{Location: "New York, NY", City: "New York", State: "NY"},
	{Location: "Los Angeles, CA", City: "Los Angeles", State: "CA"},
}

// DefaultIngestCuisines は標準の取り込み対象の料理ジャンルです
var DefaultIngestCuisines = []string{"chinese", "mexican", "american"}

// RestaurantSource はレストランの取得元です
type RestaurantSource interface {
	SearchRestaurants(ctx context.Context, cuisine, location string, limit int) ([]yelp.Business, error)
}

// IngestService は外部のレストラン情報をレコードストアに取り込むジョブです
type IngestService struct {
	source      RestaurantSource
	restaurants repository.RestaurantRepository
	cities      []IngestCity
	cuisines    []string
	now         func() time.Time
}

// NewIngestService は新しいIngestServiceを作成します
func NewIngestService(source RestaurantSource, restaurants repository.RestaurantRepository, cities []IngestCity, cuisines []string) *IngestService {
	return &IngestService{
		source:      source,
		restaurants: restaurants,
		cities:      cities,
		cuisines:    cuisines,
		now:         time.Now,
	}
}

// Run はすべての都市と料理ジャンルについて取り込みを行い、保存した件数を返します
// 取得や保存に失敗した分はログに残してスキップします
func (s *IngestService) Run(ctx context.Context) (int, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "IngestService.Run")
	defer seg.Close(nil)

	totalSaved := 0
	for _, city := range s.cities {
		for _, cuisine := range s.cuisines {
			if err := ctx.Err(); err != nil {
				seg.Close(err)
				return totalSaved, err
			}

			log.Printf("Fetching %s restaurants in %s", cuisine, city.Location)
			businesses, err := s.source.SearchRestaurants(ctx, cuisine, city.Location, IngestLimit)
			if err != nil {
				log.Printf("Error fetching %s restaurants in %s: %v", cuisine, city.Location, err)
				continue
			}

			saved := 0
			for _, business := range businesses {
				record := newRestaurantRecord(business, cuisine, city, s.now())
				if err := s.restaurants.Put(ctx, record); err != nil {
					log.Printf("Error storing %s: %v", record.ID, err)
					continue
				}
				saved++
			}
			log.Printf("Saved %d items for %s restaurants in %s", saved, cuisine, city.Location)
			totalSaved += saved
		}
	}

	if err := seg.AddMetadata("saved_count", totalSaved); err != nil {
		log.Printf("Failed to add saved_count metadata: %v", err)
	}

	log.Printf("Total saved across all cities and cuisines: %d", totalSaved)
	return totalSaved, nil
}

func newRestaurantRecord(business yelp.Business, cuisine string, city IngestCity, now time.Time) model.RestaurantRecord {
	return model.RestaurantRecord{
		ID:      business.ID,
		Name:    business.Name,
		Address: strings.Join(business.Location.DisplayAddress, ", "),
		Coordinates: model.Coordinates{
			Latitude:  business.Coordinates.Latitude,
			Longitude: business.Coordinates.Longitude,
		},
		ReviewCount: business.ReviewCount,
		Rating:      business.Rating,
		ZipCode:     business.Location.ZipCode,
		Cuisine:     cuisine,
		City:        city.City,
		State:       city.State,
		InsertedAt:  now.Format(model.InsertedAtLayout),
	}
}
