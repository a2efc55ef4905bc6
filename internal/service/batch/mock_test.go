package batch

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/model"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/queue"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/repository"
)

// MockWorkQueue はテスト用のモックキューです
type MockWorkQueue struct {
	message        *queue.Message
	receiveError   error
	deleteError    error
	deletedHandles []string
}

func (m *MockWorkQueue) Receive(ctx context.Context) (*queue.Message, error) {
	return m.message, m.receiveError
}

func (m *MockWorkQueue) Delete(ctx context.Context, receiptHandle string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	m.deletedHandles = append(m.deletedHandles, receiptHandle)
	return nil
}

// MockSearchIndex はテスト用のモック検索インデックスです
type MockSearchIndex struct {
	candidates  []model.RestaurantCandidate
	searchError error
	gotCuisine  string
	gotSize     int

	ensureCreated bool
	ensureError   error
	failIDs       map[string]bool
	upserted      []model.RestaurantCandidate
}

func (m *MockSearchIndex) SearchByCuisine(ctx context.Context, cuisine string, size int) ([]model.RestaurantCandidate, error) {
	m.gotCuisine = cuisine
	m.gotSize = size
	return m.candidates, m.searchError
}

func (m *MockSearchIndex) EnsureIndex(ctx context.Context) (bool, error) {
	return m.ensureCreated, m.ensureError
}

func (m *MockSearchIndex) Upsert(ctx context.Context, candidate model.RestaurantCandidate) error {
	if m.failIDs[candidate.ID] {
		return errMock
	}
	m.upserted = append(m.upserted, candidate)
	return nil
}

// MockRestaurantRepository はテスト用のモックリポジトリです
type MockRestaurantRepository struct {
	records      map[string]model.RestaurantRecord
	getByIDError error
	requested    []string

	cityRecords []model.RestaurantRecord
	listError   error
	gotCity     string

	putError error
	putFunc  func(record model.RestaurantRecord) error
	put      []model.RestaurantRecord
}

func (m *MockRestaurantRepository) GetByID(ctx context.Context, id string) (*model.RestaurantRecord, error) {
	m.requested = append(m.requested, id)
	if m.getByIDError != nil {
		return nil, m.getByIDError
	}
	record, ok := m.records[id]
	if !ok {
		return nil, repository.ErrRestaurantNotFound
	}
	return &record, nil
}

func (m *MockRestaurantRepository) ListByCity(ctx context.Context, city string) ([]model.RestaurantRecord, error) {
	m.gotCity = city
	return m.cityRecords, m.listError
}

func (m *MockRestaurantRepository) Put(ctx context.Context, record model.RestaurantRecord) error {
	if m.putFunc != nil {
		if err := m.putFunc(record); err != nil {
			return err
		}
	} else if m.putError != nil {
		return m.putError
	}
	m.put = append(m.put, record)
	return nil
}

// sentMail は送信されたメールです
type sentMail struct {
	to      string
	subject string
	body    string
}

// MockMailer はテスト用のモックメーラーです
type MockMailer struct {
	sendError error
	sent      []sentMail
}

func (m *MockMailer) SendText(ctx context.Context, to, subject, body string) (string, error) {
	if m.sendError != nil {
		return "", m.sendError
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return "email-1", nil
}

// MockSFNClient はテスト用のStep Functionsクライアントです
type MockSFNClient struct {
	successInputs []*sfn.SendTaskSuccessInput
	failureInputs []*sfn.SendTaskFailureInput
	sendError     error
}

func (m *MockSFNClient) SendTaskSuccess(ctx context.Context, params *sfn.SendTaskSuccessInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskSuccessOutput, error) {
	if m.sendError != nil {
		return nil, m.sendError
	}
	m.successInputs = append(m.successInputs, params)
	return &sfn.SendTaskSuccessOutput{}, nil
}

func (m *MockSFNClient) SendTaskFailure(ctx context.Context, params *sfn.SendTaskFailureInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskFailureOutput, error) {
	if m.sendError != nil {
		return nil, m.sendError
	}
	m.failureInputs = append(m.failureInputs, params)
	return &sfn.SendTaskFailureOutput{}, nil
}

var errMock = errors.New("mock error")
