package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mmeshcher/restomanage/internal/model"
)

// CreateOrder сохраняет заказ вместе с позициями в одной транзакции.
func (r *PostgresRepository) CreateOrder(ctx context.Context, o model.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, user_id, restaurant_id, status, total_amount_cents, payment_method,
		                     payment_status, service_type, delivery_address, delivery_fee_cents,
		                     table_number, pickup_time, special_instructions, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		o.ID, o.UserID, o.RestaurantID, string(o.Status), toCents(o.TotalAmount), o.PaymentMethod,
		o.PaymentStatus, o.ServiceType, o.DeliveryAddress, toCentsPtr(o.DeliveryFee),
		o.TableNumber, o.PickupTime, o.SpecialInstructions, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, item := range o.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, position, menu_item_id, name, price_cents, quantity, special_instructions)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.ID, o.ID, i, item.MenuItemID, item.Name, toCents(item.Price), item.Quantity, item.SpecialInstructions,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

const orderColumns = `id, user_id, restaurant_id, status, total_amount_cents, payment_method,
	payment_status, service_type, delivery_address, delivery_fee_cents, table_number,
	pickup_time, special_instructions, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o             model.Order
		status        string
		totalCents    int64
		deliveryCents *int64
	)
	err := row.Scan(&o.ID, &o.UserID, &o.RestaurantID, &status, &totalCents, &o.PaymentMethod,
		&o.PaymentStatus, &o.ServiceType, &o.DeliveryAddress, &deliveryCents, &o.TableNumber,
		&o.PickupTime, &o.SpecialInstructions, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	o.Status = model.OrderStatus(status)
	o.TotalAmount = fromCents(totalCents)
	o.DeliveryFee = fromCentsPtr(deliveryCents)

	return &o, nil
}

// GetOrdersByUser возвращает заказы пользователя в порядке создания.
func (r *PostgresRepository) GetOrdersByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return r.listOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at`, userID)
}

// GetOrdersByRestaurant возвращает заказы ресторана в порядке создания.
func (r *PostgresRepository) GetOrdersByRestaurant(ctx context.Context, restaurantID string) ([]model.Order, error) {
	return r.listOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE restaurant_id = $1 ORDER BY created_at`, restaurantID)
}

func (r *PostgresRepository) listOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var res []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if len(res) == 0 {
		return res, nil
	}

	ids := make([]string, 0, len(res))
	for _, o := range res {
		ids = append(ids, o.ID)
	}

	items, err := r.loadOrderItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range res {
		res[i].Items = items[res[i].ID]
	}

	return res, nil
}

func (r *PostgresRepository) loadOrderItems(ctx context.Context, orderIDs []string) (map[string][]model.OrderItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT order_id, id, menu_item_id, name, price_cents, quantity, special_instructions
		 FROM order_items
		 WHERE order_id = ANY($1)
		 ORDER BY order_id, position`,
		orderIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	res := make(map[string][]model.OrderItem, len(orderIDs))
	for rows.Next() {
		var (
			orderID    string
			item       model.OrderItem
			priceCents int64
		)
		if err := rows.Scan(&orderID, &item.ID, &item.MenuItemID, &item.Name, &priceCents, &item.Quantity, &item.SpecialInstructions); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		item.Price = fromCents(priceCents)
		res[orderID] = append(res[orderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// UpdateOrderStatus обновляет статус заказа одной строкой, не затрагивая остальные поля.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus, at time.Time) (*model.Order, error) {
	var updated *model.Order

	err := r.withRetry(ctx, func() error {
		o, err := scanOrder(r.pool.QueryRow(ctx,
			`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1 RETURNING `+orderColumns,
			id, string(status), at))
		if err != nil {
			return err
		}

		items, err := r.loadOrderItems(ctx, []string{o.ID})
		if err != nil {
			return err
		}
		o.Items = items[o.ID]

		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
