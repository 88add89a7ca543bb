// Package main наполняет базу данных тестовыми пользователями, рестораном,
// меню, рецептами и заказами за прошедшие дни.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"go.uber.org/zap"

	"github.com/mmeshcher/restomanage/internal/model"
	"github.com/mmeshcher/restomanage/internal/repository"
	"github.com/mmeshcher/restomanage/internal/service"
)

type dish struct {
	name     string
	price    float64
	category string
}

var menu = []dish{
	{"Margherita Pizza", 12.50, "pizza"},
	{"Pepperoni Pizza", 14.00, "pizza"},
	{"Caesar Salad", 9.50, "salad"},
	{"Tomato Soup", 6.00, "soup"},
	{"Grilled Salmon", 18.50, "main"},
	{"Tiramisu", 7.50, "dessert"},
}

func main() {
	var (
		dsn    string
		users  int
		orders int
		days   int
	)

	flag.StringVar(&dsn, "d", os.Getenv("DATABASE_URI"), "database connection string")
	flag.IntVar(&users, "users", 5, "number of customers to create")
	flag.IntVar(&orders, "orders", 40, "number of orders to create")
	flag.IntVar(&days, "days", 30, "spread orders over the past N days")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	if dsn == "" {
		sugar.Fatal("database connection string is required (-d or DATABASE_URI)")
	}

	repo, err := repository.NewPostgresRepository(dsn)
	if err != nil {
		sugar.Fatalw("database initialization error", "error", err.Error())
	}
	defer repo.Close()

	svc := service.NewService(repo)
	defer svc.Close()

	ctx := context.Background()
	fake := faker.New()

	owner, err := registerVerified(ctx, svc, fake, model.RoleOwner)
	if err != nil {
		sugar.Fatalw("seed owner", "error", err.Error())
	}

	customers := make([]*model.User, 0, users)
	for i := 0; i < users; i++ {
		u, err := registerVerified(ctx, svc, fake, model.RoleCustomer)
		if err != nil {
			sugar.Fatalw("seed customer", "error", err.Error())
		}
		customers = append(customers, u)
	}
	sugar.Infow("users created", "customers", len(customers), "owner", owner.ID)

	desc := fake.Lorem().Sentence(8)
	rest, err := svc.CreateRestaurant(ctx, service.CreateRestaurantInput{
		OwnerID:     owner.ID,
		Name:        fake.Company().Name(),
		Description: &desc,
		Address:     fake.Address().Address(),
		Cuisine:     []string{"italian", "european"},
		PriceLevel:  "$$",
		OpeningHours: map[string]model.DayHours{
			"monday": {Open: "10:00", Close: "22:00"},
			"friday": {Open: "10:00", Close: "23:00"},
		},
		ContactPhone: fake.Phone().E164Number(),
		ContactEmail: fake.Internet().Email(),
	})
	if err != nil {
		sugar.Fatalw("seed restaurant", "error", err.Error())
	}

	items := make([]*model.MenuItem, 0, len(menu))
	for _, d := range menu {
		descr := fake.Lorem().Sentence(6)
		item, err := svc.AddMenuItem(ctx, rest.ID, service.AddMenuItemInput{
			Name:        d.name,
			Description: &descr,
			Price:       d.price,
			Category:    d.category,
			Ingredients: []string{fake.Lorem().Word(), fake.Lorem().Word()},
		})
		if err != nil {
			sugar.Fatalw("seed menu item", "error", err.Error())
		}
		items = append(items, item)
	}
	sugar.Infow("restaurant created", "id", rest.ID, "menu", len(items))

	if err := seedRecipes(ctx, svc, fake, customers); err != nil {
		sugar.Fatalw("seed recipes", "error", err.Error())
	}

	if err := seedOrders(ctx, repo, fake, customers, rest.ID, items, orders, days); err != nil {
		sugar.Fatalw("seed orders", "error", err.Error())
	}
	sugar.Infow("orders created", "count", orders, "days", days)
}

var userSeq int

// registerVerified регистрирует пользователя и сразу подтверждает телефон
// выданным кодом. Почта и телефон дополняются счётчиком, чтобы не
// столкнуться с ограничениями уникальности при повторных запусках.
func registerVerified(ctx context.Context, svc *service.Service, fake faker.Faker, role string) (*model.User, error) {
	userSeq++
	suffix := fmt.Sprintf("%d%04d", time.Now().Unix()%100000, userSeq)
	u, otp, err := svc.RegisterUser(ctx, service.RegisterInput{
		Name:     fake.Person().Name(),
		Email:    fmt.Sprintf("%s.%s@example.com", fake.Internet().User(), suffix),
		Phone:    fmt.Sprintf("+790%s", suffix),
		Password: fake.Internet().Password(),
		Role:     role,
	})
	if err != nil {
		return nil, err
	}
	return svc.VerifyOTP(ctx, u.Phone, otp)
}

func seedRecipes(ctx context.Context, svc *service.Service, fake faker.Faker, customers []*model.User) error {
	titles := []string{"Homemade Margherita", "Quick Tomato Soup", "Weekend Tiramisu"}
	for i, title := range titles {
		author := customers[i%len(customers)]
		rec, err := svc.CreateRecipe(ctx, service.CreateRecipeInput{
			UserID:      author.ID,
			Title:       title,
			Description: fake.Lorem().Sentence(10),
			PrepTime:    fake.IntBetween(10, 30),
			CookTime:    fake.IntBetween(15, 60),
			Servings:    fake.IntBetween(2, 6),
			Difficulty:  "medium",
			Ingredients: []model.Ingredient{
				{Name: fake.Lorem().Word(), Quantity: "200g"},
				{Name: fake.Lorem().Word(), Quantity: "2 pcs"},
			},
			Instructions: []string{fake.Lorem().Sentence(6), fake.Lorem().Sentence(6)},
			Tags:         []string{"homemade"},
			Cuisine:      "italian",
			MealType:     "dinner",
		})
		if err != nil {
			return err
		}

		for j := 0; j < fake.IntBetween(1, 3); j++ {
			rating := fake.IntBetween(3, 5)
			commenter := customers[(i+j+1)%len(customers)]
			if _, err := svc.AddRecipeComment(ctx, rec.ID, service.AddCommentInput{
				UserID: commenter.ID,
				Text:   fake.Lorem().Sentence(8),
				Rating: &rating,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedOrders пишет заказы напрямую через репозиторий: временные метки
// распределяются по прошедшим дням, что недоступно через сервисный слой.
func seedOrders(ctx context.Context, repo *repository.PostgresRepository, fake faker.Faker, customers []*model.User, restaurantID string, items []*model.MenuItem, count, days int) error {
	now := time.Now()
	for i := 0; i < count; i++ {
		createdAt := now.AddDate(0, 0, -fake.IntBetween(0, days-1)).
			Add(-time.Duration(fake.IntBetween(0, 12)) * time.Hour)

		lines := make([]model.OrderItem, 0, 2)
		total := 0.0
		for j := 0; j < fake.IntBetween(1, 3); j++ {
			it := items[fake.IntBetween(0, len(items)-1)]
			qty := fake.IntBetween(1, 3)
			total += it.Price * float64(qty)
			lines = append(lines, model.OrderItem{
				ID:         cuid.New(),
				MenuItemID: it.ID,
				Name:       it.Name,
				Price:      it.Price,
				Quantity:   qty,
			})
		}

		statuses := model.OrderStatuses
		order := model.Order{
			ID:            cuid.New(),
			UserID:        customers[fake.IntBetween(0, len(customers)-1)].ID,
			RestaurantID:  restaurantID,
			Items:         lines,
			Status:        statuses[fake.IntBetween(0, len(statuses)-1)],
			TotalAmount:   total,
			PaymentMethod: "card",
			PaymentStatus: "paid",
			ServiceType:   model.ServiceTypes[fake.IntBetween(0, len(model.ServiceTypes)-1)],
			CreatedAt:     createdAt,
			UpdatedAt:     createdAt,
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("order %d: %w", i, err)
		}
	}
	return nil
}
