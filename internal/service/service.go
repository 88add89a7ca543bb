// Package service реализует бизнес-логику сервиса управления ресторанами.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/lucsky/cuid"
	"github.com/mmeshcher/restomanage/internal/model"
	"github.com/mmeshcher/restomanage/internal/repository"
	"github.com/mmeshcher/restomanage/internal/validation"
)

// ErrInvalidArgument возвращается при нарушении контракта входных данных.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidStatus возвращается для статуса вне множества допустимых значений.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidPeriod возвращается для периода вне множества допустимых значений.
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrInvalidCredentials возвращается при неверной паре email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotVerified возвращается при входе в неподтверждённый аккаунт.
	ErrNotVerified = errors.New("account not verified")
	// ErrOTPExpired возвращается для отсутствующего или истёкшего кода подтверждения.
	ErrOTPExpired = errors.New("invalid or expired OTP")
	// ErrOTPMismatch возвращается при несовпадении кода подтверждения.
	ErrOTPMismatch = errors.New("incorrect OTP")
)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error

	CreateUser(ctx context.Context, u model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*model.User, error)
	MarkUserVerified(ctx context.Context, phone string, at time.Time) (*model.User, error)

	CreateRestaurant(ctx context.Context, rest model.Restaurant) error
	GetRestaurantByID(ctx context.Context, id string) (*model.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
	ListRestaurantsByOwner(ctx context.Context, ownerID string) ([]model.Restaurant, error)
	AddMenuItem(ctx context.Context, item model.MenuItem) error
	GetMenu(ctx context.Context, restaurantID string) ([]model.MenuItem, error)

	CreateOrder(ctx context.Context, o model.Order) error
	GetOrdersByUser(ctx context.Context, userID string) ([]model.Order, error)
	GetOrdersByRestaurant(ctx context.Context, restaurantID string) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus, at time.Time) (*model.Order, error)

	CreateRecipe(ctx context.Context, rec model.Recipe) error
	GetRecipeByID(ctx context.Context, id string) (*model.Recipe, error)
	ListRecipes(ctx context.Context) ([]model.Recipe, error)
	AddRecipeComment(ctx context.Context, recipeID string, c model.RecipeComment) (*model.Recipe, error)
}

// Service содержит бизнес-логику сервиса управления ресторанами.
type Service struct {
	repo Repository
	otps *otpStore
}

// NewService создаёт новый сервис с указанным репозиторием.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		otps: newOTPStore(otpTTL),
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// RegisterInput содержит данные регистрации нового пользователя.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
}

// RegisterUser регистрирует пользователя и выдаёт код подтверждения телефона.
// Код возвращается в ответе: доставка SMS вне зоны ответственности сервиса.
func (s *Service) RegisterUser(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	if in.Name == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: name and password are required", ErrInvalidArgument)
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, "", fmt.Errorf("%w: malformed email", ErrInvalidArgument)
	}
	if !validation.IsValidPhone(in.Phone) {
		return nil, "", fmt.Errorf("%w: malformed phone", ErrInvalidArgument)
	}
	if in.Role == "" {
		in.Role = model.RoleCustomer
	}
	if !validation.IsValidRole(in.Role) {
		return nil, "", fmt.Errorf("%w: unknown role %q", ErrInvalidArgument, in.Role)
	}

	now := time.Now()
	u := model.User{
		ID:           cuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hashPassword(in.Email, in.Password),
		Role:         in.Role,
		Avatar:       defaultAvatar(in.Name),
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}

	code := s.otps.issue(u.Phone)

	return &u, code, nil
}

// VerifyOTP проверяет код подтверждения и помечает пользователя как подтверждённого.
func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (*model.User, error) {
	if err := s.otps.verify(phone, code); err != nil {
		return nil, err
	}
	return s.repo.MarkUserVerified(ctx, phone, time.Now())
}

// ResendOTP выдаёт новый код подтверждения для уже зарегистрированного телефона.
func (s *Service) ResendOTP(ctx context.Context, phone string) (string, error) {
	if _, err := s.repo.GetUserByPhone(ctx, phone); err != nil {
		return "", err
	}
	return s.otps.issue(phone), nil
}

// Login проверяет учётные данные и возвращает пользователя.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	hashed := hashPassword(email, password)
	if hex.EncodeToString(hashed) != hex.EncodeToString(u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !u.Verified {
		return nil, ErrNotVerified
	}

	return u, nil
}

func hashPassword(email, password string) []byte {
	sum := sha256.Sum256([]byte(email + ":" + password))
	return sum[:]
}

func defaultAvatar(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}
