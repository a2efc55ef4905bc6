package dialog

import (
	"strconv"
	"testing"

	"github.com/uma-arai/sbcntr-dining-concierge/internal/model"
)

func TestValidateDiningParameters(t *testing.T) {
	tests := []struct {
		name       string
		city       string
		cuisine    string
		partySize  string
		diningTime string
		wantValid  bool
		wantSlot   string
	}{
		{name: "全スロット正常", city: "New York", cuisine: "chinese", partySize: "6", diningTime: "13:00", wantValid: true},
		{name: "大文字小文字を区別しない", city: "LOS ANGELES", cuisine: "Mexican", partySize: "1", diningTime: "09:00", wantValid: true},
		{name: "未入力スロットは検証しない", wantValid: true},
		{name: "対応していない都市", city: "Chicago", cuisine: "chinese", wantValid: false, wantSlot: model.SlotCity},
		{name: "対応していない料理", city: "New York", cuisine: "thai", wantValid: false, wantSlot: model.SlotCuisine},
		{name: "最初の違反だけを返す", city: "Boston", cuisine: "thai", partySize: "20", diningTime: "23:00", wantValid: false, wantSlot: model.SlotCity},
		{name: "人数0", partySize: "0", wantValid: false, wantSlot: model.SlotPartySize},
		{name: "人数11", partySize: "11", wantValid: false, wantSlot: model.SlotPartySize},
		{name: "人数10は有効", partySize: "10", wantValid: true},
		{name: "人数が数値ではない", partySize: "six", wantValid: false, wantSlot: model.SlotPartySize},
		{name: "22:00は無効", diningTime: "22:00", wantValid: false, wantSlot: model.SlotTime},
		{name: "08:59は無効", diningTime: "08:59", wantValid: false, wantSlot: model.SlotTime},
		{name: "21:59は有効", diningTime: "21:59", wantValid: true},
		{name: "日付付きの時刻", diningTime: "2023-01-15T09:30", wantValid: true},
		{name: "日付付きの営業時間外", diningTime: "2023-01-15T07:00", wantValid: false, wantSlot: model.SlotTime},
		{name: "不正な時刻形式", diningTime: "noonish", wantValid: false, wantSlot: model.SlotTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateDiningParameters(tt.city, tt.cuisine, tt.partySize, tt.diningTime)
			if got.IsValid != tt.wantValid {
				t.Fatalf("IsValid = %v, want %v (%+v)", got.IsValid, tt.wantValid, got)
			}
			if tt.wantValid {
				if got.ViolatedSlot != "" || got.Message != nil {
					t.Errorf("valid result should not carry a slot or message: %+v", got)
				}
				return
			}
			if got.ViolatedSlot != tt.wantSlot {
				t.Errorf("ViolatedSlot = %v, want %v", got.ViolatedSlot, tt.wantSlot)
			}
			if got.Message == nil || got.Message.Content == "" {
				t.Error("invalid result should carry a message")
			}
		})
	}
}

func TestValidateDiningParameters_PartySizeRange(t *testing.T) {
	for n := -3; n <= 15; n++ {
		got := ValidateDiningParameters("", "", strconv.Itoa(n), "")
		want := n >= 1 && n <= 10
		if got.IsValid != want {
			t.Errorf("partySize %d: IsValid = %v, want %v", n, got.IsValid, want)
		}
		if !want && got.ViolatedSlot != model.SlotPartySize {
			t.Errorf("partySize %d: ViolatedSlot = %v", n, got.ViolatedSlot)
		}
	}
}

func TestValidateDiningParameters_TimeWindow(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 59} {
			value := strconv.Itoa(hour/10) + strconv.Itoa(hour%10) + ":" + strconv.Itoa(minute/10) + strconv.Itoa(minute%10)
			got := ValidateDiningParameters("", "", "", value)
			want := hour >= 9 && hour < 22
			if got.IsValid != want {
				t.Errorf("time %s: IsValid = %v, want %v", value, got.IsValid, want)
			}
		}
	}
}
