package dialog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/model"
)

// ErrUnsupportedIntent は対応していないインテントを受け取ったことを表します
// ボットの設定ミスなので再試行しません
var ErrUnsupportedIntent = errors.New("intent not supported")

const (
	IntentGreeting         = "GreetingIntent"
	IntentThankYou         = "ThankYouIntent"
	IntentDiningSuggestion = "DiningSuggestionIntent"
)

const (
	greetingMessage  = "Hello! I am the Dining Concierge Bot, how can I help?"
	thankYouMessage  = "You are welcome! Please be sure to check your email shortly for your personalized dining suggestions!"
	fulfilledMessage = "Thank you! The request is currently being processed. Please check your email shortly for personalized dining suggestions!"
)

// WorkQueue は提案依頼をキューに積むためのインターフェースです
type WorkQueue interface {
	Send(ctx context.Context, body string) (string, error)
}

// Dispatcher はインテントごとにハンドラを振り分けます
type Dispatcher struct {
	queue WorkQueue
}

// NewDispatcher は新しいDispatcherを作成します
func NewDispatcher(queue WorkQueue) *Dispatcher {
	return &Dispatcher{queue: queue}
}

// Dispatch はインテント名を見て応答を作成します
func (d *Dispatcher) Dispatch(ctx context.Context, req model.IntentRequest) (*model.DialogResponse, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "Dispatcher.Dispatch")
	defer seg.Close(nil)

	intentName := req.CurrentIntent.Name
	if err := seg.AddAnnotation("intent", intentName); err != nil {
		log.Printf("Failed to add intent annotation: %v", err)
	}

	session := req.SessionAttributes
	if session == nil {
		session = model.SessionAttributes{}
	}

	switch intentName {
	case IntentGreeting:
		log.Printf("%s triggered", intentName)
		resp := Close(session, model.FulfillmentStateFulfilled, greetingMessage)
		return &resp, nil
	case IntentThankYou:
		log.Printf("%s triggered", intentName)
		resp := Close(session, model.FulfillmentStateFulfilled, thankYouMessage)
		return &resp, nil
	case IntentDiningSuggestion:
		log.Printf("%s triggered", intentName)
		return d.suggestDining(ctx, req, session)
	}

	err := fmt.Errorf("%w: %q", ErrUnsupportedIntent, intentName)
	seg.Close(err)
	return nil, err
}

// suggestDining はスロットを検証し、入力が揃っていれば提案依頼をキューに積みます
func (d *Dispatcher) suggestDining(ctx context.Context, req model.IntentRequest, session model.SessionAttributes) (*model.DialogResponse, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "Dispatcher.suggestDining")
	defer seg.Close(nil)

	slots := req.CurrentIntent.Slots
	result := ValidateDiningParameters(
		slots.Value(model.SlotCity),
		slots.Value(model.SlotCuisine),
		slots.Value(model.SlotPartySize),
		slots.Value(model.SlotTime),
	)
	if !result.IsValid {
		log.Printf("Slot %s is invalid, eliciting again", result.ViolatedSlot)
		resp := ElicitSlot(session, req.CurrentIntent.Name, slots, result.ViolatedSlot, result.Message.Content)
		return &resp, nil
	}

	// スロット入力中はチャット基盤に任せる
	if req.InvocationSource == model.InvocationSourceDialogCodeHook {
		resp := Delegate(session, slots)
		return &resp, nil
	}

	diningReq := model.NewDiningRequestFromSlots(slots)
	body, err := diningReq.Marshal()
	if err != nil {
		seg.Close(err)
		return nil, err
	}

	messageID, err := d.queue.Send(ctx, body)
	if err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("failed to enqueue dining request: %w", err)
	}
	log.Printf("Dining request enqueued. MessageId: %s", messageID)

	if err := seg.AddMetadata("message_id", messageID); err != nil {
		log.Printf("Failed to add message_id metadata: %v", err)
	}

	resp := Close(session, model.FulfillmentStateFulfilled, fulfilledMessage)
	return &resp, nil
}
