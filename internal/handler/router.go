package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/mmeshcher/restomanage/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса управления ресторанами.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Get("/", h.Root)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", h.RegisterUser)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/verify-otp", h.VerifyOTP)
			r.Post("/resend-otp", h.ResendOTP)
			r.Post("/login", h.Login)
		})

		r.Route("/restaurants", func(r chi.Router) {
			r.Post("/", h.CreateRestaurant)
			r.Get("/", h.ListRestaurants)
			r.Get("/owner/{ownerId}", h.ListRestaurantsByOwner)
			r.Get("/{id}", h.GetRestaurant)
			r.Get("/{id}/menu", h.GetMenu)
			r.Post("/{id}/menu", h.AddMenuItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.CreateOrder)
			r.Get("/user/{userId}", h.GetOrdersByUser)
			r.Get("/restaurant/{restaurantId}", h.GetOrdersByRestaurant)
			r.Put("/{id}/status", h.UpdateOrderStatus)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Post("/", h.CreateRecipe)
			r.Get("/", h.ListRecipes)
			r.Get("/{id}", h.GetRecipe)
			r.Post("/{id}/comments", h.AddRecipeComment)
		})

		r.Get("/analytics/restaurant/{id}", h.RestaurantAnalytics)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
