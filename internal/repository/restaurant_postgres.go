package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/uma-arai/sbcntr-dining-concierge/internal/model"
)

// RestaurantSchema はローカル開発用のrestaurantsテーブル定義です
const RestaurantSchema = `
	CREATE TABLE IF NOT EXISTS restaurants (
		business_id  TEXT PRIMARY KEY,
		name         TEXT NOT NULL DEFAULT '',
		address      TEXT NOT NULL DEFAULT '',
		latitude     DOUBLE PRECISION NOT NULL DEFAULT 0,
		longitude    DOUBLE PRECISION NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
		zip_code     TEXT NOT NULL DEFAULT '',
		cuisine      TEXT NOT NULL DEFAULT '',
		city         TEXT NOT NULL DEFAULT '',
		state        TEXT NOT NULL DEFAULT '',
		inserted_at  TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS restaurants_city_idx ON restaurants (city);`

// restaurantRow はrestaurantsテーブルの1行です
type restaurantRow struct {
	BusinessID  string  `db:"business_id"`
	Name        string  `db:"name"`
	Address     string  `db:"address"`
	Latitude    float64 `db:"latitude"`
	Longitude   float64 `db:"longitude"`
	ReviewCount int     `db:"review_count"`
	Rating      float64 `db:"rating"`
	ZipCode     string  `db:"zip_code"`
	Cuisine     string  `db:"cuisine"`
	City        string  `db:"city"`
	State       string  `db:"state"`
	InsertedAt  string  `db:"inserted_at"`
}

func newRestaurantRow(r model.RestaurantRecord) restaurantRow {
	return restaurantRow{
		BusinessID:  r.ID,
		Name:        r.Name,
		Address:     r.Address,
		Latitude:    r.Coordinates.Latitude,
		Longitude:   r.Coordinates.Longitude,
		ReviewCount: r.ReviewCount,
		Rating:      r.Rating,
		ZipCode:     r.ZipCode,
		Cuisine:     r.Cuisine,
		City:        r.City,
		State:       r.State,
		InsertedAt:  r.InsertedAt,
	}
}

func (row restaurantRow) toRecord() model.RestaurantRecord {
	return model.RestaurantRecord{
		ID:          row.BusinessID,
		Name:        row.Name,
		Address:     row.Address,
		Coordinates: model.Coordinates{Latitude: row.Latitude, Longitude: row.Longitude},
		ReviewCount: row.ReviewCount,
		Rating:      row.Rating,
		ZipCode:     row.ZipCode,
		Cuisine:     row.Cuisine,
		City:        row.City,
		State:       row.State,
		InsertedAt:  row.InsertedAt,
	}
}

// PostgresRestaurantRepository はPostgreSQLをレコードストアとして使います
type PostgresRestaurantRepository struct {
	db *DB
}

// NewPostgresRestaurantRepository は新しいPostgresRestaurantRepositoryを作成します
func NewPostgresRestaurantRepository(db *DB) *PostgresRestaurantRepository {
	return &PostgresRestaurantRepository{db: db}
}

// Migrate はrestaurantsテーブルを作成します
func (r *PostgresRestaurantRepository) Migrate(ctx context.Context) error {
	ctx, seg := xray.BeginSubsegment(ctx, "PostgresRestaurantRepository.Migrate")
	defer seg.Close(nil)

	if _, err := r.db.ExecContext(ctx, RestaurantSchema); err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to migrate restaurants table: %w", err)
	}
	return nil
}

// GetByID は指定されたIDのレストランを取得します
func (r *PostgresRestaurantRepository) GetByID(ctx context.Context, id string) (*model.RestaurantRecord, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "PostgresRestaurantRepository.GetByID")
	defer seg.Close(nil)

	query := `
		SELECT business_id, name, address, latitude, longitude, review_count,
			rating, zip_code, cuisine, city, state, inserted_at
		FROM restaurants
		WHERE business_id = $1`

	var row restaurantRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrRestaurantNotFound, id)
		}
		seg.Close(err)
		return nil, fmt.Errorf("failed to get restaurant %s: %w", id, err)
	}

	record := row.toRecord()
	return &record, nil
}

// ListByCity は指定された都市のレストランをすべて取得します
func (r *PostgresRestaurantRepository) ListByCity(ctx context.Context, city string) ([]model.RestaurantRecord, error) {
	ctx, seg := xray.BeginSubsegment(ctx, "PostgresRestaurantRepository.ListByCity")
	defer seg.Close(nil)

	query := `
		SELECT business_id, name, address, latitude, longitude, review_count,
			rating, zip_code, cuisine, city, state, inserted_at
		FROM restaurants
		WHERE city = $1
		ORDER BY business_id`

	var rows []restaurantRow
	if err := r.db.SelectContext(ctx, &rows, query, city); err != nil {
		seg.Close(err)
		return nil, fmt.Errorf("failed to list restaurants in %s: %w", city, err)
	}

	records := make([]model.RestaurantRecord, len(rows))
	for i, row := range rows {
		records[i] = row.toRecord()
	}
	return records, nil
}

// Put はレストランを保存します。同じIDのレコードは上書きされます
func (r *PostgresRestaurantRepository) Put(ctx context.Context, record model.RestaurantRecord) error {
	ctx, seg := xray.BeginSubsegment(ctx, "PostgresRestaurantRepository.Put")
	defer seg.Close(nil)

	query := `
		INSERT INTO restaurants (
			business_id, name, address, latitude, longitude, review_count,
			rating, zip_code, cuisine, city, state, inserted_at
		) VALUES (
			:business_id, :name, :address, :latitude, :longitude, :review_count,
			:rating, :zip_code, :cuisine, :city, :state, :inserted_at
		)
		ON CONFLICT (business_id) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			review_count = EXCLUDED.review_count,
			rating = EXCLUDED.rating,
			zip_code = EXCLUDED.zip_code,
			cuisine = EXCLUDED.cuisine,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			inserted_at = EXCLUDED.inserted_at`

	if _, err := r.db.NamedExecContext(ctx, query, newRestaurantRow(record)); err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to put restaurant %s: %w", record.ID, err)
	}
	return nil
}
