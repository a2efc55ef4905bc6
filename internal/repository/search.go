package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/model"
)

// SearchConfig は検索インデックスへの接続設定です
type SearchConfig struct {
	Endpoint  string
	IndexName string
	Username  string
	Password  string
}

// ElasticSearchIndex は料理ジャンルでレストランIDを引く検索インデックスです
type ElasticSearchIndex struct {
	client    *elasticsearch.Client
	indexName string
}

// NewElasticSearchIndex は新しいElasticSearchIndexを作成します
func NewElasticSearchIndex(cfg SearchConfig) (*ElasticSearchIndex, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" || strings.TrimSpace(cfg.IndexName) == "" {
		return nil, fmt.Errorf("missing search endpoint or index name")
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.Endpoint},
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	return &ElasticSearchIndex{client: client, indexName: cfg.IndexName}, nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source model.RestaurantCandidate `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// EnsureIndex はインデックスがなければRestaurantIDとCuisineをkeywordとして作成します
func (s *ElasticSearchIndex) EnsureIndex(ctx context.Context) (bool, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "ElasticSearchIndex.EnsureIndex")
	defer seg.Close(nil)

	existsRes, err := s.client.Indices.Exists(
		[]string{s.indexName},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		seg.Close(err)
		return false, fmt.Errorf("check index existence: %w", err)
	}
	defer existsRes.Body.Close()

	if existsRes.StatusCode != http.StatusNotFound {
		return false, nil
	}

	mapping := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"RestaurantID": map[string]string{"type": "keyword"},
				"Cuisine":      map[string]string{"type": "keyword"},
			},
		},
	}
	body, err := json.Marshal(mapping)
	if err != nil {
		return false, fmt.Errorf("marshal index mapping: %w", err)
	}

	createRes, err := s.client.Indices.Create(
		s.indexName,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		seg.Close(err)
		return false, fmt.Errorf("create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		resp, _ := io.ReadAll(createRes.Body)
		err := fmt.Errorf("create index status %s: %s", createRes.Status(), strings.TrimSpace(string(resp)))
		seg.Close(err)
		return false, err
	}

	log.Printf("Search index %s created", s.indexName)
	return true, nil
}

// SearchByCuisine は料理ジャンルが一致する候補を最大size件返します
// 都市では絞り込みません
func (s *ElasticSearchIndex) SearchByCuisine(ctx context.Context, cuisine string, size int) ([]model.RestaurantCandidate, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "ElasticSearchIndex.SearchByCuisine")
	defer seg.Close(nil)

	query := map[string]any{
		"size": size,
		"query": map[string]any{
			"match": map[string]any{
				"Cuisine": cuisine,
			},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal search query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.indexName),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("search restaurants: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		resp, _ := io.ReadAll(res.Body)
		err := fmt.Errorf("search status %s: %s", res.Status(), strings.TrimSpace(string(resp)))
		seg.Close(err)
		return nil, err
	}

	var decoded searchResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	candidates := make([]model.RestaurantCandidate, 0, len(decoded.Hits.Hits))
	for _, hit := range decoded.Hits.Hits {
		if hit.Source.ID == "" {
			continue
		}
		candidates = append(candidates, hit.Source)
	}

	if err := seg.AddMetadata("hit_count", len(candidates)); err != nil {
		log.Printf("Failed to add hit_count metadata: %v", err)
	}

	return candidates, nil
}

// Upsert はIDをドキュメントIDとして候補を登録します。既存のドキュメントは上書きされます
func (s *ElasticSearchIndex) Upsert(ctx context.Context, candidate model.RestaurantCandidate) error {
	ctx, seg := xray.BeginSubsegment(ctx, "ElasticSearchIndex.Upsert")
	defer seg.Close(nil)

	body, err := json.Marshal(candidate)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", candidate.ID, err)
	}

	res, err := s.client.Index(
		s.indexName,
		bytes.NewReader(body),
		s.client.Index.WithDocumentID(candidate.ID),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		seg.Close(err)
		return fmt.Errorf("index document %s: %w", candidate.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		resp, _ := io.ReadAll(res.Body)
		err := fmt.Errorf("index document %s status %s: %s", candidate.ID, res.Status(), strings.TrimSpace(string(resp)))
		seg.Close(err)
		return err
	}

	return nil
}
