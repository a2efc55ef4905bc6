package model

// OutcomeStatus は提案送信処理1回分の結果種別です
type OutcomeStatus string

const (
	// OutcomeNoWork はキューにメッセージがなかったことを表します。エラーではありません
	OutcomeNoWork OutcomeStatus = "no_work"
	// OutcomeNoResults は検索結果が0件だったことを表します。メッセージは削除済みです
	OutcomeNoResults OutcomeStatus = "no_results"
	// OutcomeError は処理に失敗したことを表します
	OutcomeError OutcomeStatus = "error"
	// OutcomeSuccess はメール送信まで完了したことを表します
	OutcomeSuccess OutcomeStatus = "success"
)

// FulfillmentOutcome は提案送信処理の結果です
type FulfillmentOutcome struct {
	Status          OutcomeStatus      `json:"status"`
	MessageID       string             `json:"messageId,omitempty"`
	Deleted         bool               `json:"deleted"`
	Error           string             `json:"error,omitempty"`
	Recommendations []RestaurantRecord `json:"recommendations,omitempty"`
	EmailMessageID  string             `json:"emailMessageId,omitempty"`
}
