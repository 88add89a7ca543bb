package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lucsky/cuid"
	"github.com/mmeshcher/restomanage/internal/model"
)

// Заглушки изображений повторяют значения исходного API.
const (
	defaultRestaurantImage = "https://images.unsplash.com/photo-1555396273-367ea4eb4db5?q=80&w=500"
	defaultRestaurantCover = "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?q=80&w=500"
)

// CreateRestaurantInput содержит данные создания ресторана.
type CreateRestaurantInput struct {
	OwnerID      string
	Name         string
	Description  *string
	Address      string
	Cuisine      []string
	PriceLevel   string
	OpeningHours map[string]model.DayHours
	ContactPhone string
	ContactEmail string
}

// CreateRestaurant создаёт ресторан, предварительно проверяя существование владельца.
func (s *Service) CreateRestaurant(ctx context.Context, in CreateRestaurantInput) (*model.Restaurant, error) {
	if in.Name == "" || in.Address == "" {
		return nil, fmt.Errorf("%w: name and address are required", ErrInvalidArgument)
	}

	if _, err := s.repo.GetUserByID(ctx, in.OwnerID); err != nil {
		return nil, err
	}

	now := time.Now()
	cover := defaultRestaurantCover
	rest := model.Restaurant{
		ID:            cuid.New(),
		OwnerID:       in.OwnerID,
		Name:          in.Name,
		Description:   in.Description,
		Address:       in.Address,
		Cuisine:       in.Cuisine,
		PriceLevel:    in.PriceLevel,
		OpeningHours:  in.OpeningHours,
		ContactPhone:  in.ContactPhone,
		ContactEmail:  in.ContactEmail,
		Rating:        0,
		RatingCount:   0,
		ImageURL:      defaultRestaurantImage,
		CoverImageURL: &cover,
		IsOpen:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateRestaurant(ctx, rest); err != nil {
		return nil, err
	}

	return &rest, nil
}

// GetRestaurant возвращает ресторан по идентификатору.
func (s *Service) GetRestaurant(ctx context.Context, id string) (*model.Restaurant, error) {
	return s.repo.GetRestaurantByID(ctx, id)
}

// ListRestaurants возвращает все рестораны.
func (s *Service) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	return s.repo.ListRestaurants(ctx)
}

// ListRestaurantsByOwner возвращает рестораны указанного владельца.
func (s *Service) ListRestaurantsByOwner(ctx context.Context, ownerID string) ([]model.Restaurant, error) {
	return s.repo.ListRestaurantsByOwner(ctx, ownerID)
}

// AddMenuItemInput содержит данные новой позиции меню.
type AddMenuItemInput struct {
	Name            string
	Description     *string
	Price           float64
	Category        string
	ImageURL        *string
	IsAvailable     *bool
	PreparationTime *int
	Ingredients     []string
	Allergens       []string
	NutritionalInfo map[string]any
}

// AddMenuItem добавляет позицию в меню существующего ресторана.
func (s *Service) AddMenuItem(ctx context.Context, restaurantID string, in AddMenuItemInput) (*model.MenuItem, error) {
	if in.Name == "" || in.Category == "" {
		return nil, fmt.Errorf("%w: name and category are required", ErrInvalidArgument)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", ErrInvalidArgument)
	}

	if _, err := s.repo.GetRestaurantByID(ctx, restaurantID); err != nil {
		return nil, err
	}

	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	now := time.Now()
	item := model.MenuItem{
		ID:              cuid.New(),
		RestaurantID:    restaurantID,
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		Category:        in.Category,
		ImageURL:        in.ImageURL,
		IsAvailable:     available,
		PreparationTime: in.PreparationTime,
		Ingredients:     in.Ingredients,
		Allergens:       in.Allergens,
		NutritionalInfo: in.NutritionalInfo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.AddMenuItem(ctx, item); err != nil {
		return nil, err
	}

	return &item, nil
}

// GetMenu возвращает меню существующего ресторана.
func (s *Service) GetMenu(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	if _, err := s.repo.GetRestaurantByID(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.repo.GetMenu(ctx, restaurantID)
}

// CreateRecipeInput содержит данные создания рецепта.
type CreateRecipeInput struct {
	UserID       string
	Title        string
	Description  string
	PrepTime     int
	CookTime     int
	Servings     int
	Difficulty   string
	Ingredients  []model.Ingredient
	Instructions []string
	Tags         []string
	Cuisine      string
	MealType     string
	Calories     *int
	ImageURL     string
}

// CreateRecipe создаёт новый рецепт с нулевым рейтингом и без комментариев.
func (s *Service) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*model.Recipe, error) {
	if in.UserID == "" || in.Title == "" {
		return nil, fmt.Errorf("%w: userId and title are required", ErrInvalidArgument)
	}

	now := time.Now()
	rec := model.Recipe{
		ID:           cuid.New(),
		UserID:       in.UserID,
		Title:        in.Title,
		Description:  in.Description,
		PrepTime:     in.PrepTime,
		CookTime:     in.CookTime,
		Servings:     in.Servings,
		Difficulty:   in.Difficulty,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		Tags:         in.Tags,
		Cuisine:      in.Cuisine,
		MealType:     in.MealType,
		Calories:     in.Calories,
		ImageURL:     in.ImageURL,
		Rating:       0,
		RatingCount:  0,
		IsFavorite:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateRecipe(ctx, rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

// GetRecipe возвращает рецепт по идентификатору.
func (s *Service) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	return s.repo.GetRecipeByID(ctx, id)
}

// ListRecipes возвращает все рецепты.
func (s *Service) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	return s.repo.ListRecipes(ctx)
}

// AddCommentInput содержит данные комментария к рецепту.
type AddCommentInput struct {
	UserID string
	Text   string
	Rating *int
}

// AddRecipeComment добавляет комментарий к рецепту. Оценка, если она есть,
// инкрементально пересчитывает средний рейтинг; без оценки рейтинг не меняется.
func (s *Service) AddRecipeComment(ctx context.Context, recipeID string, in AddCommentInput) (*model.Recipe, error) {
	if in.UserID == "" || in.Text == "" {
		return nil, fmt.Errorf("%w: userId and text are required", ErrInvalidArgument)
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidArgument)
	}

	c := model.RecipeComment{
		ID:        cuid.New(),
		UserID:    in.UserID,
		Text:      in.Text,
		Rating:    in.Rating,
		CreatedAt: time.Now(),
	}

	return s.repo.AddRecipeComment(ctx, recipeID, c)
}
