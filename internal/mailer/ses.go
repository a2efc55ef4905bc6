package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-xray-sdk-go/xray"
)

const charsetUTF8 = "UTF-8"

// API はSESクライアントのうち利用するメソッドです
type API interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer はプレーンテキストのメールを送信します
type SESMailer struct {
	client API
	sender string
}

// NewSESMailer は新しいSESMailerを作成します
// senderはSESで検証済みのアドレスである必要があります
func NewSESMailer(client API, sender string) *SESMailer {
	return &SESMailer{client: client, sender: sender}
}

// SendText はメールを送信し、SESのメッセージIDを返します
func (m *SESMailer) SendText(ctx context.Context, to, subject, body string) (string, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "SESMailer.SendText")
	defer seg.Close(nil)

	out, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(m.sender),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject), Charset: aws.String(charsetUTF8)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body), Charset: aws.String(charsetUTF8)},
			},
		},
	})
	if err != nil {
		seg.Close(err)
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return aws.ToString(out.MessageId), nil
}
