package lex

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimeservice"
	"github.com/aws/aws-xray-sdk-go/xray"
)

// API はLexランタイムクライアントのうち利用するメソッドです
type API interface {
	PostText(ctx context.Context, params *lexruntimeservice.PostTextInput, optFns ...func(*lexruntimeservice.Options)) (*lexruntimeservice.PostTextOutput, error)
}

// Client は自由入力のテキストをボットに渡します
type Client struct {
	api      API
	botName  string
	botAlias string
}

// NewClient は新しいClientを作成します
func NewClient(api API, botName, botAlias string) *Client {
	return &Client{api: api, botName: botName, botAlias: botAlias}
}

// PostText はユーザーの発話をボットに送り、返答のテキストを返します
// 返答が空の場合は空文字を返します
func (c *Client) PostText(ctx context.Context, userID, text string) (string, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "LexClient.PostText")
	defer seg.Close(nil)

	out, err := c.api.PostText(ctx, &lexruntimeservice.PostTextInput{
		BotName:   aws.String(c.botName),
		BotAlias:  aws.String(c.botAlias),
		UserId:    aws.String(userID),
		InputText: aws.String(text),
	})
	if err != nil {
		seg.Close(err)
		return "", fmt.Errorf("failed to post text to bot %s: %w", c.botName, err)
	}

	return aws.ToString(out.Message), nil
}
