package repository

import (
	"context"
	"errors"

	"github.com/uma-arai/sbcntr-dining-concierge/internal/model"
)

// ErrRestaurantNotFound は指定したIDのレストランが存在しないことを表します
var ErrRestaurantNotFound = errors.New("restaurant not found")

// RestaurantRepository はレストラン情報の永続化を担当するインターフェースです
type RestaurantRepository interface {
	GetByID(ctx context.Context, id string) (*model.RestaurantRecord, error)
	ListByCity(ctx context.Context, city string) ([]model.RestaurantRecord, error)
	Put(ctx context.Context, record model.RestaurantRecord) error
}
