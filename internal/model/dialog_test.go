package model

import (
	"encoding/json"
	"testing"
)

func TestDialogActionType_IsTerminal(t *testing.T) {
	tests := []struct {
		actionType DialogActionType
		want       bool
	}{
		{DialogActionElicitSlot, false},
		{DialogActionConfirmIntent, false},
		{DialogActionClose, true},
		{DialogActionDelegate, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.actionType), func(t *testing.T) {
			if got := tt.actionType.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntentRequest_Unmarshal(t *testing.T) {
	body := `{
		"currentIntent": {"name": "DiningSuggestionIntent", "slots": {"City": "New York", "Cuisine": null}},
		"sessionAttributes": {"k": "v"},
		"invocationSource": "DialogCodeHook"
	}`

	var req IntentRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if req.CurrentIntent.Slots.Value(SlotCity) != "New York" {
		t.Errorf("City = %v", req.CurrentIntent.Slots.Value(SlotCity))
	}
	if req.CurrentIntent.Slots.Value(SlotCuisine) != "" {
		t.Errorf("Cuisine should be empty")
	}
	if req.CurrentIntent.Slots.Value(SlotEmail) != "" {
		t.Errorf("absent Email should be empty")
	}
	if req.SessionAttributes["k"] != "v" {
		t.Errorf("SessionAttributes = %v", req.SessionAttributes)
	}
}
