package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"slices"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/config"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/model"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/queue"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/repository"
)

const (
	// 検索インデックスから取得する候補の最大件数
	candidateSearchSize = 10
	// メールで提案するレストランの件数
	recommendationCount = 3
)

// WorkQueue は提案依頼を受け取るキューのインターフェースです
type WorkQueue interface {
	Receive(ctx context.Context) (*queue.Message, error)
	Delete(ctx context.Context, receiptHandle string) error
}

// SearchIndex は料理ジャンルで候補を検索するインターフェースです
type SearchIndex interface {
	SearchByCuisine(ctx context.Context, cuisine string, size int) ([]model.RestaurantCandidate, error)
}

// Mailer はメールを送信するインターフェースです
type Mailer interface {
	SendText(ctx context.Context, to, subject, body string) (string, error)
}

// FulfillmentBatchService は提案依頼を1件処理してメールを送るバッチです
type FulfillmentBatchService struct {
	queue       WorkQueue
	index       SearchIndex
	restaurants repository.RestaurantRepository
	mailer      Mailer
	sfnClient   SFNAPI
	cfg         *config.Config
}

// NewFulfillmentBatchService は新しいFulfillmentBatchServiceを作成します
// sfnClientがnilの場合はStep Functionsへの結果通知を行いません
func NewFulfillmentBatchService(
	cfg *config.Config,
	workQueue WorkQueue,
	index SearchIndex,
	restaurants repository.RestaurantRepository,
	mailer Mailer,
	sfnClient SFNAPI,
) *FulfillmentBatchService {
	return &FulfillmentBatchService{
		queue:       workQueue,
		index:       index,
		restaurants: restaurants,
		mailer:      mailer,
		sfnClient:   sfnClient,
		cfg:         cfg,
	}
}

// Run は提案依頼を1件処理し、Step Functionsから起動された場合は結果を通知します
func (s *FulfillmentBatchService) Run(ctx context.Context) error {
	// X-Rayセグメントの作成
	ctx, seg := xray.BeginSubsegment(ctx, "FulfillmentBatchService.Run")
	defer seg.Close(nil)

	startTime := time.Now()

	outcome, err := s.ProcessOne(ctx)
	if err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to process dining request: %w", err)
	}

	// Step Functionsに処理結果を通知
	if err := sendTaskSuccess(ctx, s.sfnClient, s.cfg, outcome); err != nil {
		seg.Close(err)
		return err
	}

	duration := time.Since(startTime)
	if err := seg.AddMetadata("duration", duration.String()); err != nil {
		log.Printf("Failed to add duration metadata: %v", err)
	}

	log.Printf("Fulfillment batch process completed. Status: %s, Duration: %v", outcome.Status, duration)
	return nil
}

// ProcessOne はキューからメッセージを1件受信して提案メールを送ります
//
// メッセージがない場合と検索結果が0件の場合はエラーにしません。
// 解釈できないメッセージは削除します。
// メール送信に失敗した場合はメッセージを削除せず、可視性タイムアウト後の再配信に任せます。
func (s *FulfillmentBatchService) ProcessOne(ctx context.Context) (*model.FulfillmentOutcome, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "FulfillmentBatchService.ProcessOne")
	defer seg.Close(nil)

	msg, err := s.queue.Receive(ctx)
	if err != nil {
		seg.Close(err)
		return errorOutcome("", false, err), err
	}
	if msg == nil {
		log.Println("No messages in queue")
		return &model.FulfillmentOutcome{Status: model.OutcomeNoWork}, nil
	}
	log.Printf("Received message. MessageId: %s", msg.ID)

	req, err := model.ParseDiningRequest(msg.Body)
	if err != nil {
		log.Printf("Failed to parse message %s, deleting: %v", msg.ID, err)
		deleted := s.deleteMessage(ctx, msg)
		seg.Close(err)
		return errorOutcome(msg.ID, deleted, err), err
	}

	candidates, err := s.index.SearchByCuisine(ctx, req.Cuisine, candidateSearchSize)
	if err != nil {
		// 検索の失敗はこのメッセージの処理を終了させる
		log.Printf("Failed to search restaurants for %s, deleting message %s: %v", req.Cuisine, msg.ID, err)
		deleted := s.deleteMessage(ctx, msg)
		seg.Close(err)
		return errorOutcome(msg.ID, deleted, err), err
	}

	if len(candidates) == 0 {
		log.Printf("No restaurants found for %s, deleting message %s", req.Cuisine, msg.ID)
		deleted := s.deleteMessage(ctx, msg)
		return &model.FulfillmentOutcome{Status: model.OutcomeNoResults, MessageID: msg.ID, Deleted: deleted}, nil
	}

	selectedIDs := sampleIDs(candidateIDs(candidates), recommendationCount)
	log.Printf("Selected restaurant IDs: %v", selectedIDs)

	records := s.hydrate(ctx, selectedIDs)

	email := model.NewRecommendationEmail(*req, records)
	emailMessageID, err := s.mailer.SendText(ctx, email.To, email.Subject, email.Body)
	if err != nil {
		log.Printf("Failed to send email for message %s, leaving it for redelivery: %v", msg.ID, err)
		seg.Close(err)
		return errorOutcome(msg.ID, false, err), err
	}
	log.Printf("Email sent. MessageId: %s", emailMessageID)

	deleted := s.deleteMessage(ctx, msg)

	if err := seg.AddMetadata("recommendation_count", len(records)); err != nil {
		log.Printf("Failed to add recommendation_count metadata: %v", err)
	}

	return &model.FulfillmentOutcome{
		Status:          model.OutcomeSuccess,
		MessageID:       msg.ID,
		Deleted:         deleted,
		Recommendations: records,
		EmailMessageID:  emailMessageID,
	}, nil
}

// hydrate はレストランの詳細を取得します
// 取得に失敗したレストランはログに残してスキップします
func (s *FulfillmentBatchService) hydrate(ctx context.Context, ids []string) []model.RestaurantRecord {
	ctx, seg := xray.BeginSubsegment(ctx, "FulfillmentBatchService.hydrate")
	defer seg.Close(nil)

	records := make([]model.RestaurantRecord, 0, len(ids))
	for _, id := range ids {
		record, err := s.restaurants.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRestaurantNotFound) {
				log.Printf("Restaurant %s is not in the record store, skipping", id)
			} else {
				log.Printf("Error retrieving restaurant %s, skipping: %v", id, err)
			}
			continue
		}
		records = append(records, *record)
	}

	if err := seg.AddMetadata("hydrated_count", len(records)); err != nil {
		log.Printf("Failed to add hydrated_count metadata: %v", err)
	}

	return records
}

// deleteMessage はメッセージを削除し、削除できたかを返します
func (s *FulfillmentBatchService) deleteMessage(ctx context.Context, msg *queue.Message) bool {
	if err := s.queue.Delete(ctx, msg.ReceiptHandle); err != nil {
		log.Printf("Failed to delete message %s: %v", msg.ID, err)
		return false
	}
	return true
}

func errorOutcome(messageID string, deleted bool, err error) *model.FulfillmentOutcome {
	return &model.FulfillmentOutcome{
		Status:    model.OutcomeError,
		MessageID: messageID,
		Deleted:   deleted,
		Error:     err.Error(),
	}
}

// candidateIDs は重複を除いた候補IDを返します
func candidateIDs(candidates []model.RestaurantCandidate) []string {
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == "" || slices.Contains(ids, c.ID) {
			continue
		}
		ids = append(ids, c.ID)
	}
	return ids
}

// sampleIDs はidsからn件を重複なく無作為に選びます
// n件に満たない場合はすべて返します
func sampleIDs(ids []string, n int) []string {
	if len(ids) <= n {
		return slices.Clone(ids)
	}
	shuffled := slices.Clone(ids)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
