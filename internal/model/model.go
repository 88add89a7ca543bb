// Package model содержит доменные сущности сервиса управления ресторанами.
package model

import "time"

// TimeLayout — формат временных меток API: ISO-8601 без смещения часового пояса.
// Все сравнения дат выполняются в наивном локальном времени.
const TimeLayout = "2006-01-02T15:04:05"

// Role описывает роль пользователя в системе.
const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleManager  = "manager"
)

// User представляет зарегистрированного пользователя.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash []byte
	Role         string
	Avatar       string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Restaurant описывает ресторан и его агрегированный рейтинг.
type Restaurant struct {
	ID            string
	OwnerID       string
	ManagerID     *string
	Name          string
	Description   *string
	Address       string
	Cuisine       []string
	PriceLevel    string
	OpeningHours  map[string]DayHours
	ContactPhone  string
	ContactEmail  string
	Rating        float64
	RatingCount   int
	ImageURL      string
	CoverImageURL *string
	IsOpen        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DayHours задаёт время открытия и закрытия в пределах одного дня недели.
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// MenuItem описывает позицию меню ресторана.
type MenuItem struct {
	ID              string
	RestaurantID    string
	Name            string
	Description     *string
	Price           float64
	Category        string
	ImageURL        *string
	IsAvailable     bool
	PreparationTime *int
	Ingredients     []string
	Allergens       []string
	NutritionalInfo map[string]any
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderStatus описывает статус обработки заказа.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusInDelivery OrderStatus = "in-delivery"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses перечисляет все допустимые статусы заказа.
// Переходы между статусами не ограничены: любой допустимый статус
// принимается из любого текущего.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusInDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Valid сообщает, входит ли статус в множество допустимых значений.
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ServiceType описывает способ получения заказа.
const (
	ServiceTypeDelivery = "delivery"
	ServiceTypePickup   = "pickup"
	ServiceTypeDineIn   = "dine-in"
)

// ServiceTypes перечисляет все допустимые способы получения заказа.
var ServiceTypes = []string{ServiceTypeDelivery, ServiceTypePickup, ServiceTypeDineIn}

// ValidServiceType сообщает, входит ли способ получения в множество допустимых.
func ValidServiceType(st string) bool {
	for _, v := range ServiceTypes {
		if st == v {
			return true
		}
	}
	return false
}

// OrderItem описывает одну позицию заказа со снимком цены на момент оформления.
type OrderItem struct {
	ID                  string
	MenuItemID          string
	Name                string
	Price               float64
	Quantity            int
	SpecialInstructions *string
}

// Order описывает заказ пользователя в ресторане.
type Order struct {
	ID                  string
	UserID              string
	RestaurantID        string
	Items               []OrderItem
	Status              OrderStatus
	TotalAmount         float64
	PaymentMethod       string
	PaymentStatus       string
	ServiceType         string
	DeliveryAddress     *string
	DeliveryFee         *float64
	TableNumber         *string
	PickupTime          *string
	SpecialInstructions *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Ingredient описывает ингредиент рецепта.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Recipe описывает пользовательский рецепт с комментариями и рейтингом.
type Recipe struct {
	ID           string
	UserID       string
	Title        string
	Description  string
	PrepTime     int
	CookTime     int
	Servings     int
	Difficulty   string
	Ingredients  []Ingredient
	Instructions []string
	Tags         []string
	Cuisine      string
	MealType     string
	Calories     *int
	ImageURL     string
	Rating       float64
	RatingCount  int
	Comments     []RecipeComment
	IsFavorite   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecipeComment описывает комментарий к рецепту с необязательной оценкой.
type RecipeComment struct {
	ID        string
	UserID    string
	Text      string
	Rating    *int
	CreatedAt time.Time
}

// PopularItem описывает позицию меню в рейтинге продаж.
type PopularItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CustomerBreakdown содержит разбивку клиентов на новых и вернувшихся.
// Поле New считается в пределах периода, Returning — разница с числом
// клиентов за всё время. Смешение областей унаследовано от исходного
// поведения и сохраняется намеренно.
type CustomerBreakdown struct {
	New       int `json:"new"`
	Returning int `json:"returning"`
}

// AnalyticsData содержит агрегированную аналитику ресторана за период.
// Не хранится: полностью пересчитывается при каждом запросе.
type AnalyticsData struct {
	TotalSales        float64            `json:"totalSales"`
	TotalOrders       int                `json:"totalOrders"`
	NewCustomers      int                `json:"newCustomers"`
	AvgOrderValue     float64            `json:"avgOrderValue"`
	SalesByDay        map[string]float64 `json:"salesByDay"`
	OrdersByDay       map[string]int     `json:"ordersByDay"`
	PopularItems      []PopularItem      `json:"popularItems"`
	CustomerBreakdown CustomerBreakdown  `json:"customerBreakdown"`
}
