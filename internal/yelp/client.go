package yelp

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL はYelp Fusion APIのURLです
const DefaultBaseURL = "https://api.yelp.com/v3"

// Business は検索APIが返す店舗情報のうち取り込みに使う項目です
type Business struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ReviewCount int     `json:"review_count"`
	Rating      float64 `json:"rating"`
	Coordinates struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`
	Location struct {
		ZipCode        string   `json:"zip_code"`
		DisplayAddress []string `json:"display_address"`
	} `json:"location"`
}

type searchResponse struct {
	Businesses []Business `json:"businesses"`
}

// Client はYelpの店舗検索APIクライアントです
type Client struct {
	http *resty.Client
}

// NewClient は新しいClientを作成します
func NewClient(baseURL, apiKey string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(30 * time.Second)
	return &Client{http: c}
}

// SearchRestaurants は指定した地域の料理ジャンルの店舗を最大limit件返します
func (c *Client) SearchRestaurants(ctx context.Context, cuisine, location string, limit int) ([]Business, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "YelpClient.SearchRestaurants")
	defer seg.Close(nil)

	var result searchResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"term":     cuisine + " restaurants",
			"location": location,
			"limit":    fmt.Sprint(limit),
		}).
		SetResult(&result).
		Get("/businesses/search")
	if err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("failed to search %s in %s: %w", cuisine, location, err)
	}
	if res.IsError() {
		err := fmt.Errorf("search %s in %s status %s: %s", cuisine, location, res.Status(), res.String())
		seg.Close(err)
		return nil, err
	}

	return result.Businesses, nil
}
