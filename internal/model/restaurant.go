package model

// RestaurantCandidate は検索インデックスに格納する最小限のドキュメントです
type RestaurantCandidate struct {
	ID      string `json:"RestaurantID"`
	Cuisine string `json:"Cuisine"`
}

// Coordinates は緯度経度です
type Coordinates struct {
	Latitude  float64 `json:"latitude" dynamodbav:"latitude"`
	Longitude float64 `json:"longitude" dynamodbav:"longitude"`
}

// RestaurantRecord はレコードストアに保存されるレストラン情報です
// businessIdをキーに取り込みジョブだけが書き込みます
type RestaurantRecord struct {
	ID          string      `json:"businessId" dynamodbav:"businessId"`
	Name        string      `json:"name" dynamodbav:"name"`
	Address     string      `json:"address" dynamodbav:"address"`
	Coordinates Coordinates `json:"coordinates" dynamodbav:"coordinates"`
	ReviewCount int         `json:"reviewCount" dynamodbav:"reviewCount"`
	Rating      float64     `json:"rating" dynamodbav:"rating"`
	ZipCode     string      `json:"zipCode" dynamodbav:"zipCode"`
	Cuisine     string      `json:"cuisine" dynamodbav:"cuisine"`
	City        string      `json:"city" dynamodbav:"city"`
	State       string      `json:"state" dynamodbav:"state"`
	InsertedAt  string      `json:"insertedAtTimestamp" dynamodbav:"insertedAtTimestamp"`
}

// InsertedAtLayout は取り込み時刻の書式です
const InsertedAtLayout = "2006-01-02T15:04:05"

// Candidate は検索インデックス用のドキュメントに変換します
func (r RestaurantRecord) Candidate() RestaurantCandidate {
	return RestaurantCandidate{ID: r.ID, Cuisine: r.Cuisine}
}
