package lex

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimeservice"
	"github.com/aws/aws-xray-sdk-go/xray"
)

// MockLexAPI はテスト用のモックLexクライアントです
type MockLexAPI struct {
	input  *lexruntimeservice.PostTextInput
	output *lexruntimeservice.PostTextOutput
	err    error
}

func (m *MockLexAPI) PostText(ctx context.Context, params *lexruntimeservice.PostTextInput, optFns ...func(*lexruntimeservice.Options)) (*lexruntimeservice.PostTextOutput, error) {
	m.input = params
	return m.output, m.err
}

func TestClient_PostText(t *testing.T) {
	ctx, seg := xray.BeginSegment(context.Background(), "TestClient_PostText")
	defer seg.Close(nil)

	tests := []struct {
		name    string
		output  *lexruntimeservice.PostTextOutput
		err     error
		want    string
		wantErr bool
	}{
		{name: "返答あり", output: &lexruntimeservice.PostTextOutput{Message: aws.String("What city?")}, want: "What city?"},
		{name: "返答なし", output: &lexruntimeservice.PostTextOutput{}, want: ""},
		{name: "呼び出し失敗", err: errors.New("bot not found"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &MockLexAPI{output: tt.output, err: tt.err}
			c := NewClient(api, "BookTrip", "DiningSuggestion")

			got, err := c.PostText(ctx, "user1", "I need a restaurant")
			if (err != nil) != tt.wantErr {
				t.Fatalf("PostText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("PostText() = %v, want %v", got, tt.want)
			}
			if aws.ToString(api.input.BotAlias) != "DiningSuggestion" || aws.ToString(api.input.UserId) != "user1" {
				t.Errorf("unexpected input: %+v", api.input)
			}
		})
	}
}
