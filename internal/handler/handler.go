// Package handler содержит HTTP-обработчики API сервиса управления ресторанами.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmeshcher/restomanage/internal/model"
	"github.com/mmeshcher/restomanage/internal/repository"
	"github.com/mmeshcher/restomanage/internal/service"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	RegisterUser(ctx context.Context, in service.RegisterInput) (*model.User, string, error)
	VerifyOTP(ctx context.Context, phone, code string) (*model.User, error)
	ResendOTP(ctx context.Context, phone string) (string, error)
	Login(ctx context.Context, email, password string) (*model.User, error)

	CreateRestaurant(ctx context.Context, in service.CreateRestaurantInput) (*model.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*model.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
	ListRestaurantsByOwner(ctx context.Context, ownerID string) ([]model.Restaurant, error)
	AddMenuItem(ctx context.Context, restaurantID string, in service.AddMenuItemInput) (*model.MenuItem, error)
	GetMenu(ctx context.Context, restaurantID string) ([]model.MenuItem, error)

	CreateOrder(ctx context.Context, in service.CreateOrderInput) (*model.Order, error)
	GetOrdersByUser(ctx context.Context, userID string) ([]model.Order, error)
	GetOrdersByRestaurant(ctx context.Context, restaurantID string) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error)

	CreateRecipe(ctx context.Context, in service.CreateRecipeInput) (*model.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	ListRecipes(ctx context.Context) ([]model.Recipe, error)
	AddRecipeComment(ctx context.Context, recipeID string, in service.AddCommentInput) (*model.Recipe, error)

	RestaurantAnalytics(ctx context.Context, restaurantID, period string) (*model.AnalyticsData, error)
}

// Handler реализует HTTP-обработчики API сервиса управления ресторанами.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: s,
		logger:  logger,
	}
}

// Root возвращает приветственное сообщение API.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Restaurant Management API"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

// writeError переводит доменные ошибки в HTTP-статусы. Клиентские ошибки
// возвращаются с текстом причины, внутренние — только со статусом.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrRestaurantNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrRecipeNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidPeriod),
		errors.Is(err, service.ErrOTPExpired),
		errors.Is(err, service.ErrOTPMismatch),
		errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrPhoneExists):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrNotVerified):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		h.logger.Error("internal error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}
