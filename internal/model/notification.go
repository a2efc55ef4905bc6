package model

import (
	"fmt"
	"strconv"
	"strings"
)

// RecommendationEmail は提案メールの件名と本文です
type RecommendationEmail struct {
	To      string
	Subject string
	Body    string
}

// NewRecommendationEmail は提案依頼と取得できたレストランからメールを作成します
// 1件も取得できなかった場合はお詫びの本文になります
func NewRecommendationEmail(req DiningRequest, records []RestaurantRecord) RecommendationEmail {
	var b strings.Builder
	if len(records) == 0 {
		fmt.Fprintf(&b, "Hello,\n\nWe couldn't find any restaurant recommendations for %s cuisine in %s.\n", req.Cuisine, req.City)
		b.WriteString("Please try again later.\n\nRegards,\nDining Concierge Bot")
	} else {
		fmt.Fprintf(&b, "Hello,\n\nHere are my %s %s restaurant recommendations for %s people, today, in %s:\n\n",
			countWord(len(records)), req.Cuisine, req.PartySize, req.City)
		for _, rec := range records {
			fmt.Fprintf(&b, "Name: %s\nAddress: %s\nRating: %s\n\n",
				orDefault(rec.Name, "Unknown"),
				orDefault(rec.Address, "Address not available"),
				formatRating(rec.Rating))
		}
		b.WriteString("Enjoy your meal!\n\nRegards,\nDining Concierge Bot")
	}

	return RecommendationEmail{
		To:      req.Email,
		Subject: fmt.Sprintf("Your %s Restaurant Recommendations", req.Cuisine),
		Body:    b.String(),
	}
}

func countWord(n int) string {
	switch n {
	case 1:
		return "one"
	case 2:
		return "two"
	case 3:
		return "three"
	}
	return strconv.Itoa(n)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func formatRating(rating float64) string {
	if rating <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(rating, 'f', -1, 64)
}
