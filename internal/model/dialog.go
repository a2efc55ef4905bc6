package model

import "strings"

// DialogActionType はチャット基盤に返す次の動作の種類です
type DialogActionType string

const (
	// DialogActionElicitSlot は指定したスロットの再入力を求めます
	DialogActionElicitSlot DialogActionType = "ElicitSlot"
	// DialogActionConfirmIntent はインテントの確認を求めます
	DialogActionConfirmIntent DialogActionType = "ConfirmIntent"
	// DialogActionClose は会話を終了します
	DialogActionClose DialogActionType = "Close"
	// DialogActionDelegate はチャット基盤に次の動作を任せます
	DialogActionDelegate DialogActionType = "Delegate"
)

// IsTerminal はユーザーの次の発話を待たない動作かを返します
func (t DialogActionType) IsTerminal() bool {
	return t == DialogActionClose || t == DialogActionDelegate
}

// FulfillmentState はインテントの処理状態です
type FulfillmentState string

const (
	FulfillmentStateFulfilled FulfillmentState = "Fulfilled"
	FulfillmentStateFailed    FulfillmentState = "Failed"
)

// InvocationSourceDialogCodeHook はスロット入力中の検証呼び出しを表します
const InvocationSourceDialogCodeHook = "DialogCodeHook"

// SessionAttributes は会話をまたいでそのまま受け渡す属性です
type SessionAttributes map[string]string

// Slots はスロット名と値の組です。未入力のスロットはnilです
type Slots map[string]*string

// Value はスロットの値を返します。未入力の場合は空文字です
func (s Slots) Value(name string) string {
	if s == nil {
		return ""
	}
	if v, ok := s[name]; ok && v != nil {
		return strings.TrimSpace(*v)
	}
	return ""
}

// Message はチャット基盤に表示するメッセージです
type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// PlainText はプレーンテキストのメッセージを作成します
func PlainText(content string) *Message {
	return &Message{ContentType: "PlainText", Content: content}
}

// DialogAction はチャット基盤への指示です
type DialogAction struct {
	Type             DialogActionType `json:"type"`
	IntentName       string           `json:"intentName,omitempty"`
	Slots            Slots            `json:"slots,omitempty"`
	SlotToElicit     string           `json:"slotToElicit,omitempty"`
	FulfillmentState FulfillmentState `json:"fulfillmentState,omitempty"`
	Message          *Message         `json:"message,omitempty"`
}

// DialogResponse はコードフックの応答です
type DialogResponse struct {
	SessionAttributes SessionAttributes `json:"sessionAttributes"`
	DialogAction      DialogAction      `json:"dialogAction"`
}

// CurrentIntent はリクエスト中のインテントです
type CurrentIntent struct {
	Name               string `json:"name"`
	Slots              Slots  `json:"slots"`
	ConfirmationStatus string `json:"confirmationStatus,omitempty"`
}

// IntentRequest はチャット基盤から届くコードフックのリクエストです
type IntentRequest struct {
	CurrentIntent     CurrentIntent     `json:"currentIntent"`
	SessionAttributes SessionAttributes `json:"sessionAttributes"`
	InvocationSource  string            `json:"invocationSource"`
	UserID            string            `json:"userId,omitempty"`
	InputTranscript   string            `json:"inputTranscript,omitempty"`
}
