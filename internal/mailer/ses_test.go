package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-xray-sdk-go/xray"
)

// MockSESClient はテスト用のモックSESクライアントです
type MockSESClient struct {
	input *ses.SendEmailInput
	err   error
}

func (m *MockSESClient) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("ses-1")}, nil
}

func TestSESMailer_SendText(t *testing.T) {
	ctx, seg := xray.BeginSegment(context.Background(), "TestSESMailer_SendText")
	defer seg.Close(nil)

	tests := []struct {
		name    string
		err     error
		wantID  string
		wantErr bool
	}{
		{name: "送信成功", wantID: "ses-1"},
		{name: "送信失敗", err: errors.New("message rejected"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockSESClient{err: tt.err}
			m := NewSESMailer(client, "bot@example.com")

			id, err := m.SendText(ctx, "a@b.com", "Your chinese Restaurant Recommendations", "Hello")
			if (err != nil) != tt.wantErr {
				t.Fatalf("SendText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if id != tt.wantID {
				t.Errorf("SendText() id = %v, want %v", id, tt.wantID)
			}
			if aws.ToString(client.input.Source) != "bot@example.com" {
				t.Errorf("Source = %v", aws.ToString(client.input.Source))
			}
			if got := client.input.Destination.ToAddresses; len(got) != 1 || got[0] != "a@b.com" {
				t.Errorf("ToAddresses = %v", got)
			}
			if aws.ToString(client.input.Message.Body.Text.Data) != "Hello" {
				t.Errorf("Body = %v", aws.ToString(client.input.Message.Body.Text.Data))
			}
		})
	}
}
