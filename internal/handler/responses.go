package handler

import (
	"github.com/mmeshcher/restomanage/internal/model"
)

// userResponse — представление пользователя в ответах API, без хеша пароля.
type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar"`
	Verified  bool   `json:"verified"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		Avatar:    u.Avatar,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt.Format(model.TimeLayout),
		UpdatedAt: u.UpdatedAt.Format(model.TimeLayout),
	}
}

type restaurantResponse struct {
	ID            string                    `json:"id"`
	OwnerID       string                    `json:"ownerId"`
	ManagerID     *string                   `json:"managerId"`
	Name          string                    `json:"name"`
	Description   *string                   `json:"description"`
	Address       string                    `json:"address"`
	Cuisine       []string                  `json:"cuisine"`
	PriceLevel    string                    `json:"priceLevel"`
	OpeningHours  map[string]model.DayHours `json:"openingHours"`
	ContactPhone  string                    `json:"contactPhone"`
	ContactEmail  string                    `json:"contactEmail"`
	Rating        float64                   `json:"rating"`
	RatingCount   int                       `json:"ratingCount"`
	ImageURL      string                    `json:"imageUrl"`
	CoverImageURL *string                   `json:"coverImageUrl"`
	IsOpen        bool                      `json:"isOpen"`
	CreatedAt     string                    `json:"createdAt"`
	UpdatedAt     string                    `json:"updatedAt"`
}

func toRestaurantResponse(r *model.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		ManagerID:     r.ManagerID,
		Name:          r.Name,
		Description:   r.Description,
		Address:       r.Address,
		Cuisine:       r.Cuisine,
		PriceLevel:    r.PriceLevel,
		OpeningHours:  r.OpeningHours,
		ContactPhone:  r.ContactPhone,
		ContactEmail:  r.ContactEmail,
		Rating:        r.Rating,
		RatingCount:   r.RatingCount,
		ImageURL:      r.ImageURL,
		CoverImageURL: r.CoverImageURL,
		IsOpen:        r.IsOpen,
		CreatedAt:     r.CreatedAt.Format(model.TimeLayout),
		UpdatedAt:     r.UpdatedAt.Format(model.TimeLayout),
	}
}

func toRestaurantResponses(rs []model.Restaurant) []restaurantResponse {
	out := make([]restaurantResponse, 0, len(rs))
	for i := range rs {
		out = append(out, toRestaurantResponse(&rs[i]))
	}
	return out
}

type menuItemResponse struct {
	ID              string         `json:"id"`
	RestaurantID    string         `json:"restaurantId"`
	Name            string         `json:"name"`
	Description     *string        `json:"description"`
	Price           float64        `json:"price"`
	Category        string         `json:"category"`
	ImageURL        *string        `json:"imageUrl"`
	IsAvailable     bool           `json:"isAvailable"`
	PreparationTime *int           `json:"preparationTime"`
	Ingredients     []string       `json:"ingredients"`
	Allergens       []string       `json:"allergens"`
	NutritionalInfo map[string]any `json:"nutritionalInfo"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
}

func toMenuItemResponse(m *model.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:              m.ID,
		RestaurantID:    m.RestaurantID,
		Name:            m.Name,
		Description:     m.Description,
		Price:           m.Price,
		Category:        m.Category,
		ImageURL:        m.ImageURL,
		IsAvailable:     m.IsAvailable,
		PreparationTime: m.PreparationTime,
		Ingredients:     m.Ingredients,
		Allergens:       m.Allergens,
		NutritionalInfo: m.NutritionalInfo,
		CreatedAt:       m.CreatedAt.Format(model.TimeLayout),
		UpdatedAt:       m.UpdatedAt.Format(model.TimeLayout),
	}
}

func toMenuItemResponses(ms []model.MenuItem) []menuItemResponse {
	out := make([]menuItemResponse, 0, len(ms))
	for i := range ms {
		out = append(out, toMenuItemResponse(&ms[i]))
	}
	return out
}

type orderItemResponse struct {
	ID                  string  `json:"id"`
	MenuItemID          string  `json:"menuItemId"`
	Name                string  `json:"name"`
	Price               float64 `json:"price"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions *string `json:"specialInstructions"`
}

type orderResponse struct {
	ID                  string              `json:"id"`
	UserID              string              `json:"userId"`
	RestaurantID        string              `json:"restaurantId"`
	Items               []orderItemResponse `json:"items"`
	Status              string              `json:"status"`
	TotalAmount         float64             `json:"totalAmount"`
	PaymentMethod       string              `json:"paymentMethod"`
	PaymentStatus       string              `json:"paymentStatus"`
	ServiceType         string              `json:"serviceType"`
	DeliveryAddress     *string             `json:"deliveryAddress"`
	DeliveryFee         *float64            `json:"deliveryFee"`
	TableNumber         *string             `json:"tableNumber"`
	PickupTime          *string             `json:"pickupTime"`
	SpecialInstructions *string             `json:"specialInstructions"`
	CreatedAt           string              `json:"createdAt"`
	UpdatedAt           string              `json:"updatedAt"`
}

func toOrderResponse(o *model.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResponse{
			ID:                  it.ID,
			MenuItemID:          it.MenuItemID,
			Name:                it.Name,
			Price:               it.Price,
			Quantity:            it.Quantity,
			SpecialInstructions: it.SpecialInstructions,
		})
	}
	return orderResponse{
		ID:                  o.ID,
		UserID:              o.UserID,
		RestaurantID:        o.RestaurantID,
		Items:               items,
		Status:              string(o.Status),
		TotalAmount:         o.TotalAmount,
		PaymentMethod:       o.PaymentMethod,
		PaymentStatus:       o.PaymentStatus,
		ServiceType:         o.ServiceType,
		DeliveryAddress:     o.DeliveryAddress,
		DeliveryFee:         o.DeliveryFee,
		TableNumber:         o.TableNumber,
		PickupTime:          o.PickupTime,
		SpecialInstructions: o.SpecialInstructions,
		CreatedAt:           o.CreatedAt.Format(model.TimeLayout),
		UpdatedAt:           o.UpdatedAt.Format(model.TimeLayout),
	}
}

func toOrderResponses(os []model.Order) []orderResponse {
	out := make([]orderResponse, 0, len(os))
	for i := range os {
		out = append(out, toOrderResponse(&os[i]))
	}
	return out
}

type commentResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Text      string `json:"text"`
	Rating    *int   `json:"rating"`
	CreatedAt string `json:"createdAt"`
}

type recipeResponse struct {
	ID           string             `json:"id"`
	UserID       string             `json:"userId"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	PrepTime     int                `json:"prepTime"`
	CookTime     int                `json:"cookTime"`
	Servings     int                `json:"servings"`
	Difficulty   string             `json:"difficulty"`
	Ingredients  []model.Ingredient `json:"ingredients"`
	Instructions []string           `json:"instructions"`
	Tags         []string           `json:"tags"`
	Cuisine      string             `json:"cuisine"`
	MealType     string             `json:"mealType"`
	Calories     *int               `json:"calories"`
	ImageURL     string             `json:"imageUrl"`
	Rating       float64            `json:"rating"`
	RatingCount  int                `json:"ratingCount"`
	Comments     []commentResponse  `json:"comments"`
	IsFavorite   bool               `json:"isFavorite"`
	CreatedAt    string             `json:"createdAt"`
	UpdatedAt    string             `json:"updatedAt"`
}

func toRecipeResponse(rec *model.Recipe) recipeResponse {
	comments := make([]commentResponse, 0, len(rec.Comments))
	for _, c := range rec.Comments {
		comments = append(comments, commentResponse{
			ID:        c.ID,
			UserID:    c.UserID,
			Text:      c.Text,
			Rating:    c.Rating,
			CreatedAt: c.CreatedAt.Format(model.TimeLayout),
		})
	}
	return recipeResponse{
		ID:           rec.ID,
		UserID:       rec.UserID,
		Title:        rec.Title,
		Description:  rec.Description,
		PrepTime:     rec.PrepTime,
		CookTime:     rec.CookTime,
		Servings:     rec.Servings,
		Difficulty:   rec.Difficulty,
		Ingredients:  rec.Ingredients,
		Instructions: rec.Instructions,
		Tags:         rec.Tags,
		Cuisine:      rec.Cuisine,
		MealType:     rec.MealType,
		Calories:     rec.Calories,
		ImageURL:     rec.ImageURL,
		Rating:       rec.Rating,
		RatingCount:  rec.RatingCount,
		Comments:     comments,
		IsFavorite:   rec.IsFavorite,
		CreatedAt:    rec.CreatedAt.Format(model.TimeLayout),
		UpdatedAt:    rec.UpdatedAt.Format(model.TimeLayout),
	}
}

func toRecipeResponses(rs []model.Recipe) []recipeResponse {
	out := make([]recipeResponse, 0, len(rs))
	for i := range rs {
		out = append(out, toRecipeResponse(&rs[i]))
	}
	return out
}
