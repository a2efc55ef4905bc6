package batch

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/model"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/repository"
)

// CandidateIndex は検索インデックスへの書き込みインターフェースです
type CandidateIndex interface {
	EnsureIndex(ctx context.Context) (bool, error)
	Upsert(ctx context.Context, candidate model.RestaurantCandidate) error
}

// PopulateResult はインデックス投入の件数です
type PopulateResult struct {
	City    string
	Total   int
	Indexed int
	Failed  int
}

// IndexPopulationService はレコードストアから検索インデックスを作成するジョブです
type IndexPopulationService struct {
	restaurants repository.RestaurantRepository
	index       CandidateIndex
}

// NewIndexPopulationService は新しいIndexPopulationServiceを作成します
func NewIndexPopulationService(restaurants repository.RestaurantRepository, index CandidateIndex) *IndexPopulationService {
	return &IndexPopulationService{restaurants: restaurants, index: index}
}

// CreateIndex は検索インデックスを作成します。作成済みの場合は何もしません
func (s *IndexPopulationService) CreateIndex(ctx context.Context) error {
	ctx, seg := xray.BeginSubsegment(ctx, "IndexPopulationService.CreateIndex")
	defer seg.Close(nil)

	created, err := s.index.EnsureIndex(ctx)
	if err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to create index: %w", err)
	}
	if created {
		log.Println("Index created")
	} else {
		log.Println("Index already exists")
	}
	return nil
}

// PopulateIndex は指定した都市のレストランを検索インデックスに投入します
// IDをキーにした上書きのため、何度実行しても同じ結果になります
func (s *IndexPopulationService) PopulateIndex(ctx context.Context, city string) (*PopulateResult, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "IndexPopulationService.PopulateIndex")
	defer seg.Close(nil)

	records, err := s.restaurants.ListByCity(ctx, city)
	if err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("failed to list restaurants in %s: %w", city, err)
	}
	log.Printf("Found %d restaurants in %s", len(records), city)

	result := &PopulateResult{City: city, Total: len(records)}
	for _, record := range records {
		if err := s.index.Upsert(ctx, record.Candidate()); err != nil {
			log.Printf("Error indexing restaurant %s: %v", record.ID, err)
			result.Failed++
			continue
		}
		result.Indexed++
	}

	if err := seg.AddMetadata("indexed_count", result.Indexed); err != nil {
		log.Printf("Failed to add indexed_count metadata: %v", err)
	}

	log.Printf("Indexed %d of %d restaurants in %s (%d failed)", result.Indexed, result.Total, city, result.Failed)
	return result, nil
}
