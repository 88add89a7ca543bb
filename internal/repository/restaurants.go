package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mmeshcher/restomanage/internal/model"
)

// CreateRestaurant создаёт новый ресторан.
func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest model.Restaurant) error {
	hours, err := json.Marshal(rest.OpeningHours)
	if err != nil {
		return fmt.Errorf("marshal opening hours: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO restaurants (id, owner_id, manager_id, name, description, address, cuisine, price_level,
		                          opening_hours, contact_phone, contact_email, rating, rating_count,
		                          image_url, cover_image_url, is_open, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		rest.ID, rest.OwnerID, rest.ManagerID, rest.Name, rest.Description, rest.Address, rest.Cuisine,
		rest.PriceLevel, hours, rest.ContactPhone, rest.ContactEmail, rest.Rating, rest.RatingCount,
		rest.ImageURL, rest.CoverImageURL, rest.IsOpen, rest.CreatedAt, rest.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create restaurant: %w", err)
	}
	return nil
}

const restaurantColumns = `id, owner_id, manager_id, name, description, address, cuisine, price_level,
	opening_hours, contact_phone, contact_email, rating, rating_count, image_url, cover_image_url,
	is_open, created_at, updated_at`

func scanRestaurant(row pgx.Row) (*model.Restaurant, error) {
	var (
		rest  model.Restaurant
		hours []byte
	)
	err := row.Scan(&rest.ID, &rest.OwnerID, &rest.ManagerID, &rest.Name, &rest.Description, &rest.Address,
		&rest.Cuisine, &rest.PriceLevel, &hours, &rest.ContactPhone, &rest.ContactEmail,
		&rest.Rating, &rest.RatingCount, &rest.ImageURL, &rest.CoverImageURL,
		&rest.IsOpen, &rest.CreatedAt, &rest.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("scan restaurant: %w", err)
	}

	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &rest.OpeningHours); err != nil {
			return nil, fmt.Errorf("unmarshal opening hours: %w", err)
		}
	}

	return &rest, nil
}

// GetRestaurantByID возвращает ресторан по идентификатору.
func (r *PostgresRepository) GetRestaurantByID(ctx context.Context, id string) (*model.Restaurant, error) {
	return scanRestaurant(r.pool.QueryRow(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id))
}

// ListRestaurants возвращает все рестораны в порядке создания.
func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	return r.listRestaurants(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants ORDER BY created_at`)
}

// ListRestaurantsByOwner возвращает рестораны указанного владельца.
func (r *PostgresRepository) ListRestaurantsByOwner(ctx context.Context, ownerID string) ([]model.Restaurant, error) {
	return r.listRestaurants(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE owner_id = $1 ORDER BY created_at`, ownerID)
}

func (r *PostgresRepository) listRestaurants(ctx context.Context, query string, args ...any) ([]model.Restaurant, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select restaurants: %w", err)
	}
	defer rows.Close()

	var res []model.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *rest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// AddMenuItem добавляет позицию меню ресторана.
func (r *PostgresRepository) AddMenuItem(ctx context.Context, item model.MenuItem) error {
	var nutrition []byte
	if item.NutritionalInfo != nil {
		var err error
		nutrition, err = json.Marshal(item.NutritionalInfo)
		if err != nil {
			return fmt.Errorf("marshal nutritional info: %w", err)
		}
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO menu_items (id, restaurant_id, name, description, price_cents, category, image_url,
		                         is_available, preparation_time, ingredients, allergens, nutritional_info,
		                         created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		item.ID, item.RestaurantID, item.Name, item.Description, toCents(item.Price), item.Category,
		item.ImageURL, item.IsAvailable, item.PreparationTime, item.Ingredients, item.Allergens,
		nutrition, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("add menu item: %w", err)
	}
	return nil
}

// GetMenu возвращает меню ресторана в порядке добавления позиций.
func (r *PostgresRepository) GetMenu(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, restaurant_id, name, description, price_cents, category, image_url,
		        is_available, preparation_time, ingredients, allergens, nutritional_info,
		        created_at, updated_at
		 FROM menu_items
		 WHERE restaurant_id = $1
		 ORDER BY created_at`,
		restaurantID,
	)
	if err != nil {
		return nil, fmt.Errorf("select menu items: %w", err)
	}
	defer rows.Close()

	var res []model.MenuItem
	for rows.Next() {
		var (
			item       model.MenuItem
			priceCents int64
			nutrition  []byte
		)
		err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &priceCents,
			&item.Category, &item.ImageURL, &item.IsAvailable, &item.PreparationTime,
			&item.Ingredients, &item.Allergens, &nutrition, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}

		item.Price = fromCents(priceCents)
		if len(nutrition) > 0 {
			if err := json.Unmarshal(nutrition, &item.NutritionalInfo); err != nil {
				return nil, fmt.Errorf("unmarshal nutritional info: %w", err)
			}
		}

		res = append(res, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}
