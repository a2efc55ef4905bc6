package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDiningRequest はキューから受け取った依頼が解釈できないことを表します
// 再配信しても直らないため、受信側はメッセージを削除します
var ErrInvalidDiningRequest = errors.New("invalid dining request")

// スロット名
const (
	SlotCity      = "City"
	SlotCuisine   = "Cuisine"
	SlotPartySize = "PartySize"
	SlotTime      = "Time"
	SlotEmail     = "Email"
)

// PartySize は人数です
// チャット側からは文字列で届くため、JSONでは文字列と数値の両方を受け付けます
type PartySize string

func (p *PartySize) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = PartySize(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("partySize must be a string or number: %w", err)
	}
	*p = PartySize(n.String())
	return nil
}

// Int は人数を整数に変換します
func (p PartySize) Int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(p)))
}

// DiningRequest は提案依頼です
// 全スロットの検証が通った後に作成され、キューメッセージ1件の本文になります
type DiningRequest struct {
	City      string    `json:"city"`
	Cuisine   string    `json:"cuisine"`
	PartySize PartySize `json:"partySize"`
	Time      string    `json:"time"`
	Email     string    `json:"email"`
}

// NewDiningRequestFromSlots はスロットから提案依頼を作成します
func NewDiningRequestFromSlots(slots Slots) DiningRequest {
	return DiningRequest{
		City:      slots.Value(SlotCity),
		Cuisine:   slots.Value(SlotCuisine),
		PartySize: PartySize(slots.Value(SlotPartySize)),
		Time:      slots.Value(SlotTime),
		Email:     slots.Value(SlotEmail),
	}
}

// Marshal はキューメッセージの本文を返します
func (r DiningRequest) Marshal() (string, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal dining request: %w", err)
	}
	return string(body), nil
}

// ParseDiningRequest はキューメッセージの本文を解釈します
// city, cuisine, emailのいずれかが欠けている場合はErrInvalidDiningRequestを返します
func ParseDiningRequest(body string) (*DiningRequest, error) {
	var req DiningRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDiningRequest, err)
	}

	var missing []string
	if strings.TrimSpace(req.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(req.Cuisine) == "" {
		missing = append(missing, "cuisine")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidDiningRequest, strings.Join(missing, ", "))
	}

	return &req, nil
}

// ValidationResult はスロット検証の結果です
type ValidationResult struct {
	IsValid      bool     `json:"isValid"`
	ViolatedSlot string   `json:"violatedSlot,omitempty"`
	Message      *Message `json:"message,omitempty"`
}

// Valid は検証成功の結果を返します
func Valid() ValidationResult {
	return ValidationResult{IsValid: true}
}

// Invalid は違反したスロットとユーザー向けメッセージを持つ結果を返します
func Invalid(slot, content string) ValidationResult {
	return ValidationResult{
		IsValid:      false,
		ViolatedSlot: slot,
		Message:      PlainText(content),
	}
}
