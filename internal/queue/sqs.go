package queue

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-xray-sdk-go/xray"
)

// API はSQSクライアントのうち利用するメソッドです
type API interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Message は受信したキューメッセージです
type Message struct {
	ID            string
	Body          string
	ReceiptHandle string
}

// SQSQueue は提案依頼を受け渡す作業キューです
// 標準キューのため順序は保証されず、削除されなかったメッセージは可視性タイムアウト後に再配信されます
type SQSQueue struct {
	client   API
	queueURL string
}

// NewSQSQueue は新しいSQSQueueを作成します
func NewSQSQueue(client API, queueURL string) *SQSQueue {
	return &SQSQueue{client: client, queueURL: queueURL}
}

// Send はメッセージを送信し、メッセージIDを返します
func (q *SQSQueue) Send(ctx context.Context, body string) (string, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "SQSQueue.Send")
	defer seg.Close(nil)

	out, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.queueURL),
		MessageBody: aws.String(body),
	})
	if err != nil {
		seg.Close(err)
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	return aws.ToString(out.MessageId), nil
}

// Receive はメッセージを最大1件受信します。メッセージがない場合はnilを返します
func (q *SQSQueue) Receive(ctx context.Context) (*Message, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "SQSQueue.Receive")
	defer seg.Close(nil)

	out, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.queueURL),
		MaxNumberOfMessages: 1,
		WaitTimeSeconds:     0,
	})
	if err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("failed to receive message: %w", err)
	}

	if len(out.Messages) == 0 {
		return nil, nil
	}

	m := out.Messages[0]
	return &Message{
		ID:            aws.ToString(m.MessageId),
		Body:          aws.ToString(m.Body),
		ReceiptHandle: aws.ToString(m.ReceiptHandle),
	}, nil
}

// Delete は受信済みのメッセージを削除します
func (q *SQSQueue) Delete(ctx context.Context, receiptHandle string) error {
	ctx, seg := xray.BeginSubsegment(ctx, "SQSQueue.Delete")
	defer seg.Close(nil)

	_, err := q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.queueURL),
		ReceiptHandle: aws.String(receiptHandle),
	})
	if err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}
