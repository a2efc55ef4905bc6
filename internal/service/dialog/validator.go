package dialog

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/uma-arai/sbcntr-dining-concierge/internal/model"
)

var (
	supportedCities   = []string{"new york", "los angeles"}
	supportedCuisines = []string{"american", "mexican", "chinese"}
)

const (
	minPartySize = 1
	maxPartySize = 10

	// 受付時間は09:00以上22:00未満
	openingMinute = 9 * 60
	closingMinute = 22 * 60
)

const timeFormatMessage = "Invalid time format. Please specify a time between 9:00 (09:00) and 22:00 (10 PM) in HH:MM (24-hour) format."

// ValidateDiningParameters はスロットの値を検証します
// City, Cuisine, PartySize, Timeの順に確認し、最初の違反だけを返します
// 未入力のスロットは検証しません
func ValidateDiningParameters(city, cuisine, partySize, diningTime string) model.ValidationResult {
	if city != "" && !slices.Contains(supportedCities, strings.ToLower(city)) {
		return model.Invalid(model.SlotCity,
			fmt.Sprintf("We do not support %s yet. Please choose from: New York, or Los Angeles.", city))
	}

	if cuisine != "" && !slices.Contains(supportedCuisines, strings.ToLower(cuisine)) {
		return model.Invalid(model.SlotCuisine,
			fmt.Sprintf("We do not support %s yet. Please choose from: American, Chinese, or Mexican.", cuisine))
	}

	if partySize != "" {
		if ok, message := validatePartySize(model.PartySize(partySize)); !ok {
			return model.Invalid(model.SlotPartySize, message)
		}
	}

	if diningTime != "" {
		if ok, message := validateTime(diningTime); !ok {
			return model.Invalid(model.SlotTime, message)
		}
	}

	return model.Valid()
}

func validatePartySize(partySize model.PartySize) (bool, string) {
	n, err := partySize.Int()
	if err != nil {
		return false, "Please tell me the party size as a number between 1 and 10."
	}
	if n < minPartySize {
		return false, "Party must have at least 1 person."
	}
	if n > maxPartySize {
		return false, "Party is too large. Please keep it 10 or fewer."
	}
	return true, ""
}

// validateTime は"HH:MM"または"2023-01-15T09:00"形式の時刻を検証します
func validateTime(value string) (bool, string) {
	timePart := value
	if i := strings.LastIndex(value, "T"); i >= 0 {
		timePart = value[i+1:]
	}

	t, err := time.Parse("15:04", timePart)
	if err != nil {
		return false, timeFormatMessage
	}

	minute := t.Hour()*60 + t.Minute()
	if minute < openingMinute || minute >= closingMinute {
		return false, "Time must be between 9:00 and 22:00."
	}
	return true, ""
}
