package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/restomanage/internal/model"
	"github.com/mmeshcher/restomanage/internal/service"
)

type orderItemRequest struct {
	MenuItemID          string  `json:"menuItemId"`
	Name                string  `json:"name"`
	Price               float64 `json:"price"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions *string `json:"specialInstructions"`
}

type createOrderRequest struct {
	UserID              string             `json:"userId"`
	RestaurantID        string             `json:"restaurantId"`
	Items               []orderItemRequest `json:"items"`
	TotalAmount         float64            `json:"totalAmount"`
	PaymentMethod       string             `json:"paymentMethod"`
	PaymentStatus       string             `json:"paymentStatus"`
	ServiceType         string             `json:"serviceType"`
	DeliveryAddress     *string            `json:"deliveryAddress"`
	DeliveryFee         *float64           `json:"deliveryFee"`
	TableNumber         *string            `json:"tableNumber"`
	PickupTime          *string            `json:"pickupTime"`
	SpecialInstructions *string            `json:"specialInstructions"`
}

// CreateOrder оформляет новый заказ. Статус создаваемого заказа всегда pending.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.OrderItemInput{
			MenuItemID:          it.MenuItemID,
			Name:                it.Name,
			Price:               it.Price,
			Quantity:            it.Quantity,
			SpecialInstructions: it.SpecialInstructions,
		})
	}

	order, err := h.service.CreateOrder(r.Context(), service.CreateOrderInput{
		UserID:              req.UserID,
		RestaurantID:        req.RestaurantID,
		Items:               items,
		TotalAmount:         req.TotalAmount,
		PaymentMethod:       req.PaymentMethod,
		PaymentStatus:       req.PaymentStatus,
		ServiceType:         req.ServiceType,
		DeliveryAddress:     req.DeliveryAddress,
		DeliveryFee:         req.DeliveryFee,
		TableNumber:         req.TableNumber,
		PickupTime:          req.PickupTime,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// GetOrdersByUser возвращает заказы пользователя в порядке создания.
func (h *Handler) GetOrdersByUser(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetOrdersByUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

// GetOrdersByRestaurant возвращает заказы ресторана в порядке создания.
func (h *Handler) GetOrdersByRestaurant(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetOrdersByRestaurant(r.Context(), chi.URLParam(r, "restaurantId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus переводит заказ в новый статус.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), model.OrderStatus(req.Status))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toOrderResponse(order))
}
