package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/restomanage/internal/model"
	"github.com/mmeshcher/restomanage/internal/repository"
	"github.com/mmeshcher/restomanage/internal/service"
)

type stubService struct {
	userResp    *model.User
	otpResp     string
	registerErr error
	verifyErr   error
	resendErr   error
	loginErr    error

	restaurantResp  *model.Restaurant
	restaurantsResp []model.Restaurant
	restaurantErr   error

	menuItemResp *model.MenuItem
	menuResp     []model.MenuItem
	menuErr      error

	orderResp  *model.Order
	ordersResp []model.Order
	orderErr   error

	recipeResp  *model.Recipe
	recipesResp []model.Recipe
	recipeErr   error

	analyticsResp *model.AnalyticsData
	analyticsErr  error
	gotPeriod     string
	gotRestaurant string
}

func (s *stubService) RegisterUser(ctx context.Context, in service.RegisterInput) (*model.User, string, error) {
	return s.userResp, s.otpResp, s.registerErr
}

func (s *stubService) VerifyOTP(ctx context.Context, phone, code string) (*model.User, error) {
	return s.userResp, s.verifyErr
}

func (s *stubService) ResendOTP(ctx context.Context, phone string) (string, error) {
	return s.otpResp, s.resendErr
}

func (s *stubService) Login(ctx context.Context, email, password string) (*model.User, error) {
	return s.userResp, s.loginErr
}

func (s *stubService) CreateRestaurant(ctx context.Context, in service.CreateRestaurantInput) (*model.Restaurant, error) {
	return s.restaurantResp, s.restaurantErr
}

func (s *stubService) GetRestaurant(ctx context.Context, id string) (*model.Restaurant, error) {
	return s.restaurantResp, s.restaurantErr
}

func (s *stubService) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	return s.restaurantsResp, s.restaurantErr
}

func (s *stubService) ListRestaurantsByOwner(ctx context.Context, ownerID string) ([]model.Restaurant, error) {
	return s.restaurantsResp, s.restaurantErr
}

func (s *stubService) AddMenuItem(ctx context.Context, restaurantID string, in service.AddMenuItemInput) (*model.MenuItem, error) {
	return s.menuItemResp, s.menuErr
}

func (s *stubService) GetMenu(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	return s.menuResp, s.menuErr
}

func (s *stubService) CreateOrder(ctx context.Context, in service.CreateOrderInput) (*model.Order, error) {
	return s.orderResp, s.orderErr
}

func (s *stubService) GetOrdersByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return s.ordersResp, s.orderErr
}

func (s *stubService) GetOrdersByRestaurant(ctx context.Context, restaurantID string) ([]model.Order, error) {
	return s.ordersResp, s.orderErr
}

func (s *stubService) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	return s.orderResp, s.orderErr
}

func (s *stubService) CreateRecipe(ctx context.Context, in service.CreateRecipeInput) (*model.Recipe, error) {
	return s.recipeResp, s.recipeErr
}

func (s *stubService) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	return s.recipeResp, s.recipeErr
}

func (s *stubService) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	return s.recipesResp, s.recipeErr
}

func (s *stubService) AddRecipeComment(ctx context.Context, recipeID string, in service.AddCommentInput) (*model.Recipe, error) {
	return s.recipeResp, s.recipeErr
}

func (s *stubService) RestaurantAnalytics(ctx context.Context, restaurantID, period string) (*model.AnalyticsData, error) {
	s.gotRestaurant = restaurantID
	s.gotPeriod = period
	return s.analyticsResp, s.analyticsErr
}

func newTestHandler(t *testing.T, svc Service) *Handler {
	t.Helper()

	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	return NewHandler(svc, logger)
}

func testUser() *model.User {
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	return &model.User{
		ID:           "u1",
		Name:         "Ana",
		Email:        "ana@example.com",
		Phone:        "+79001234567",
		PasswordHash: []byte("secret"),
		Role:         model.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestRoot(t *testing.T) {
	h := newTestHandler(t, &stubService{})
	r := h.SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
}

func TestRegisterUser_ReturnsUserAndOTP(t *testing.T) {
	svc := &stubService{userResp: testUser(), otpResp: "123456"}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	body, _ := json.Marshal(registerRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Phone:    "+79001234567",
		Password: "secret",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var resp struct {
		User userResponse `json:"user"`
		OTP  string       `json:"otp"`
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OTP != "123456" {
		t.Errorf("otp = %q, want 123456", resp.OTP)
	}
	if resp.User.ID != "u1" {
		t.Errorf("user id = %q, want u1", resp.User.ID)
	}
}

func TestRegisterUser_PasswordHashNotExposed(t *testing.T) {
	svc := &stubService{userResp: testUser(), otpResp: "123456"}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	body, _ := json.Marshal(registerRequest{Name: "Ana", Email: "ana@example.com", Phone: "+79001234567", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	raw := rec.Body.String()
	if strings.Contains(raw, "secret") || strings.Contains(raw, "password") {
		t.Fatalf("response leaks password material: %s", raw)
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	svc := &stubService{registerErr: repository.ErrEmailExists}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	body, _ := json.Marshal(registerRequest{Name: "Ana", Email: "ana@example.com", Phone: "+79001234567", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := &stubService{loginErr: service.ErrInvalidCredentials}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	body, _ := json.Marshal(loginRequest{Email: "ana@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusUnauthorized)
	}
}

func TestLogin_NotVerified(t *testing.T) {
	svc := &stubService{loginErr: service.ErrNotVerified}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	body, _ := json.Marshal(loginRequest{Email: "ana@example.com", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusForbidden)
	}
}

func TestVerifyOTP_Expired(t *testing.T) {
	svc := &stubService{verifyErr: service.ErrOTPExpired}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	body, _ := json.Marshal(verifyOTPRequest{Phone: "+79001234567", OTP: "000000"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-otp", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestGetRestaurant_NotFound(t *testing.T) {
	svc := &stubService{restaurantErr: repository.ErrRestaurantNotFound}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants/missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusNotFound)
	}
}

func TestListRestaurants_EmptyArray(t *testing.T) {
	svc := &stubService{restaurantsResp: []model.Restaurant{}}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want []", got)
	}
}

func TestCreateOrder_InvalidArgument(t *testing.T) {
	svc := &stubService{orderErr: service.ErrInvalidArgument}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	body, _ := json.Marshal(createOrderRequest{UserID: "u1"})
	req := httptest.NewRequest(http.MethodPost, "/api/orders/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestUpdateOrderStatus_Success(t *testing.T) {
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	svc := &stubService{orderResp: &model.Order{
		ID:           "o1",
		UserID:       "u1",
		RestaurantID: "r1",
		Status:       model.OrderStatusConfirmed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	body, _ := json.Marshal(updateOrderStatusRequest{Status: "confirmed"})
	req := httptest.NewRequest(http.MethodPut, "/api/orders/o1/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}

	var resp orderResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "confirmed" {
		t.Errorf("status = %q, want confirmed", resp.Status)
	}
	if resp.CreatedAt != "2025-03-12T10:00:00" {
		t.Errorf("createdAt = %q, want 2025-03-12T10:00:00", resp.CreatedAt)
	}
}

func TestUpdateOrderStatus_InvalidStatus(t *testing.T) {
	svc := &stubService{orderErr: service.ErrInvalidStatus}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	body, _ := json.Marshal(updateOrderStatusRequest{Status: "shipped"})
	req := httptest.NewRequest(http.MethodPut, "/api/orders/o1/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	svc := &stubService{orderErr: repository.ErrOrderNotFound}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	body, _ := json.Marshal(updateOrderStatusRequest{Status: "confirmed"})
	req := httptest.NewRequest(http.MethodPut, "/api/orders/missing/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusNotFound)
	}
}

func TestRestaurantAnalytics_DefaultPeriod(t *testing.T) {
	svc := &stubService{analyticsResp: &model.AnalyticsData{}}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/restaurant/r1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusOK)
	}
	if svc.gotPeriod != service.PeriodWeek {
		t.Errorf("period = %q, want %q", svc.gotPeriod, service.PeriodWeek)
	}
	if svc.gotRestaurant != "r1" {
		t.Errorf("restaurant = %q, want r1", svc.gotRestaurant)
	}
}

func TestRestaurantAnalytics_ExplicitPeriod(t *testing.T) {
	svc := &stubService{analyticsResp: &model.AnalyticsData{}}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/restaurant/r1?period=day", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if svc.gotPeriod != service.PeriodDay {
		t.Errorf("period = %q, want %q", svc.gotPeriod, service.PeriodDay)
	}
}

func TestRestaurantAnalytics_InvalidPeriod(t *testing.T) {
	svc := &stubService{analyticsErr: service.ErrInvalidPeriod}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/restaurant/r1?period=decade", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestInternalErrorHidesDetails(t *testing.T) {
	svc := &stubService{recipeErr: errors.New("pq: connection reset")}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/r1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Fatalf("response leaks internal error: %s", rec.Body.String())
	}
}

func TestGetOrdersByUser_JSONResponse(t *testing.T) {
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	svc := &stubService{ordersResp: []model.Order{
		{
			ID:           "o1",
			UserID:       "u1",
			RestaurantID: "r1",
			Status:       model.OrderStatusPending,
			TotalAmount:  19.99,
			ServiceType:  model.ServiceTypeDelivery,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}}
	h := newTestHandler(t, svc)
	r := h.SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/orders/user/u1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type = %q, want application/json", ct)
	}

	var resp []orderResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].TotalAmount != 19.99 {
		t.Fatalf("unexpected orders payload: %+v", resp)
	}
}
