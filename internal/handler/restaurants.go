package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/restomanage/internal/model"
	"github.com/mmeshcher/restomanage/internal/service"
)

type createRestaurantRequest struct {
	OwnerID      string                    `json:"ownerId"`
	Name         string                    `json:"name"`
	Description  *string                   `json:"description"`
	Address      string                    `json:"address"`
	Cuisine      []string                  `json:"cuisine"`
	PriceLevel   string                    `json:"priceLevel"`
	OpeningHours map[string]model.DayHours `json:"openingHours"`
	ContactPhone string                    `json:"contactPhone"`
	ContactEmail string                    `json:"contactEmail"`
}

// CreateRestaurant создаёт новый ресторан.
func (h *Handler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req createRestaurantRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rest, err := h.service.CreateRestaurant(r.Context(), service.CreateRestaurantInput{
		OwnerID:      req.OwnerID,
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		Cuisine:      req.Cuisine,
		PriceLevel:   req.PriceLevel,
		OpeningHours: req.OpeningHours,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toRestaurantResponse(rest))
}

// GetRestaurant возвращает ресторан по идентификатору.
func (h *Handler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.service.GetRestaurant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toRestaurantResponse(rest))
}

// ListRestaurants возвращает все рестораны.
func (h *Handler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	rests, err := h.service.ListRestaurants(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toRestaurantResponses(rests))
}

// ListRestaurantsByOwner возвращает рестораны указанного владельца.
func (h *Handler) ListRestaurantsByOwner(w http.ResponseWriter, r *http.Request) {
	rests, err := h.service.ListRestaurantsByOwner(r.Context(), chi.URLParam(r, "ownerId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toRestaurantResponses(rests))
}

type addMenuItemRequest struct {
	Name            string         `json:"name"`
	Description     *string        `json:"description"`
	Price           float64        `json:"price"`
	Category        string         `json:"category"`
	ImageURL        *string        `json:"imageUrl"`
	IsAvailable     *bool          `json:"isAvailable"`
	PreparationTime *int           `json:"preparationTime"`
	Ingredients     []string       `json:"ingredients"`
	Allergens       []string       `json:"allergens"`
	NutritionalInfo map[string]any `json:"nutritionalInfo"`
}

// AddMenuItem добавляет позицию в меню ресторана.
func (h *Handler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	var req addMenuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.service.AddMenuItem(r.Context(), chi.URLParam(r, "id"), service.AddMenuItemInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		IsAvailable:     req.IsAvailable,
		PreparationTime: req.PreparationTime,
		Ingredients:     req.Ingredients,
		Allergens:       req.Allergens,
		NutritionalInfo: req.NutritionalInfo,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

// GetMenu возвращает меню ресторана.
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetMenu(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toMenuItemResponses(items))
}
