package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lucsky/cuid"
	"github.com/mmeshcher/restomanage/internal/model"
)

// OrderItemInput содержит данные одной позиции создаваемого заказа.
type OrderItemInput struct {
	MenuItemID          string
	Name                string
	Price               float64
	Quantity            int
	SpecialInstructions *string
}

// CreateOrderInput содержит данные создаваемого заказа. Цены и сумма
// принимаются как есть, без сверки с меню ресторана.
type CreateOrderInput struct {
	UserID              string
	RestaurantID        string
	Items               []OrderItemInput
	TotalAmount         float64
	PaymentMethod       string
	PaymentStatus       string
	ServiceType         string
	DeliveryAddress     *string
	DeliveryFee         *float64
	TableNumber         *string
	PickupTime          *string
	SpecialInstructions *string
}

// CreateOrder создаёт заказ: присваивает идентификатор, принудительно
// устанавливает статус pending и проставляет одинаковые временные метки.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*model.Order, error) {
	if in.UserID == "" || in.RestaurantID == "" {
		return nil, fmt.Errorf("%w: userId and restaurantId are required", ErrInvalidArgument)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrInvalidArgument)
	}
	if in.TotalAmount < 0 {
		return nil, fmt.Errorf("%w: totalAmount must be non-negative", ErrInvalidArgument)
	}
	if !model.ValidServiceType(in.ServiceType) {
		return nil, fmt.Errorf("%w: service type %q, must be one of: %s",
			ErrInvalidArgument, in.ServiceType, strings.Join(model.ServiceTypes, ", "))
	}
	for _, item := range in.Items {
		if item.MenuItemID == "" || item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: each item requires menuItemId and positive quantity", ErrInvalidArgument)
		}
	}

	now := time.Now()
	o := model.Order{
		ID:                  cuid.New(),
		UserID:              in.UserID,
		RestaurantID:        in.RestaurantID,
		Status:              model.OrderStatusPending,
		TotalAmount:         in.TotalAmount,
		PaymentMethod:       in.PaymentMethod,
		PaymentStatus:       in.PaymentStatus,
		ServiceType:         in.ServiceType,
		DeliveryAddress:     in.DeliveryAddress,
		DeliveryFee:         in.DeliveryFee,
		TableNumber:         in.TableNumber,
		PickupTime:          in.PickupTime,
		SpecialInstructions: in.SpecialInstructions,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	o.Items = make([]model.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		o.Items = append(o.Items, model.OrderItem{
			ID:                  cuid.New(),
			MenuItemID:          item.MenuItemID,
			Name:                item.Name,
			Price:               item.Price,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		})
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	return &o, nil
}

// GetOrdersByUser возвращает заказы пользователя.
func (s *Service) GetOrdersByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return s.repo.GetOrdersByUser(ctx, userID)
}

// GetOrdersByRestaurant возвращает заказы ресторана.
func (s *Service) GetOrdersByRestaurant(ctx context.Context, restaurantID string) ([]model.Order, error) {
	return s.repo.GetOrdersByRestaurant(ctx, restaurantID)
}

// UpdateOrderStatus переводит заказ в новый статус. Проверяется только
// принадлежность статуса множеству допустимых значений: граф переходов
// не ограничен, конечных состояний нет.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w %q, must be one of: %s", ErrInvalidStatus, status, validStatusList())
	}
	return s.repo.UpdateOrderStatus(ctx, orderID, status, time.Now())
}

func validStatusList() string {
	names := make([]string, 0, len(model.OrderStatuses))
	for _, st := range model.OrderStatuses {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}
