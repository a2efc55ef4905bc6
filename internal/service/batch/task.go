package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/common/config"
)

// SFNAPI はStep Functionsクライアントのうち利用するメソッドです
type SFNAPI interface {
	SendTaskSuccess(ctx context.Context, params *sfn.SendTaskSuccessInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskSuccessOutput, error)
	SendTaskFailure(ctx context.Context, params *sfn.SendTaskFailureInput, optFns ...func(*sfn.Options)) (*sfn.SendTaskFailureOutput, error)
}

// sendTaskSuccess は処理結果をタスクの出力として通知します
// ENV=LOCALの場合とクライアントがない場合は何もしません
func sendTaskSuccess(ctx context.Context, client SFNAPI, cfg *config.Config, result any) error {
	if cfg.IsLocal() || client == nil {
		return nil
	}

	taskToken := cfg.SFN.TaskToken
	if taskToken == "" {
		return fmt.Errorf("SFN_TASK_TOKEN is not set in config")
	}

	output, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal task output: %w", err)
	}

	// SendTaskSuccess APIを呼び出す
	input := &sfn.SendTaskSuccessInput{
		TaskToken: aws.String(taskToken),
		Output:    aws.String(string(output)),
	}

	if _, err := client.SendTaskSuccess(ctx, input); err != nil {
		return fmt.Errorf("failed to send task success: %w", err)
	}

	log.Printf("Successfully sent task success: %s", string(output))
	return nil
}

// SendTaskFailure はバッチの失敗をStep Functionsに通知します
// ENV=LOCALの場合とクライアントがない場合は何もしません
func SendTaskFailure(ctx context.Context, client SFNAPI, cfg *config.Config, cause error) error {
	if cfg.IsLocal() || client == nil || cfg.SFN.TaskToken == "" {
		return nil
	}

	input := &sfn.SendTaskFailureInput{
		TaskToken: aws.String(cfg.SFN.TaskToken),
		Error:     aws.String("Batch process failed"),
		Cause:     aws.String(cause.Error()),
	}

	if _, err := client.SendTaskFailure(ctx, input); err != nil {
		return fmt.Errorf("failed to send task failure: %w", err)
	}
	return nil
}
