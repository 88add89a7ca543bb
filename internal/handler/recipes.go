package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/restomanage/internal/model"
	"github.com/mmeshcher/restomanage/internal/service"
)

type createRecipeRequest struct {
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
}

// CreateRecipe создаёт новый рецепт.
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req createRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.service.CreateRecipe(r.Context(), service.CreateRecipeInput{
		UserID:       req.UserID,
		Title:        req.Title,
		Description:  req.Description,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Tags:         req.Tags,
		Cuisine:      req.Cuisine,
		MealType:     req.MealType,
		Calories:     req.Calories,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toRecipeResponse(rec))
}

// GetRecipe возвращает рецепт по идентификатору вместе с комментариями.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.GetRecipe(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toRecipeResponse(rec))
}

// ListRecipes возвращает все рецепты.
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	recs, err := h.service.ListRecipes(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toRecipeResponses(recs))
}

type addCommentRequest struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
	Rating *int   `json:"rating"`
}

// AddRecipeComment добавляет комментарий к рецепту и возвращает обновлённый рецепт.
func (h *Handler) AddRecipeComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.service.AddRecipeComment(r.Context(), chi.URLParam(r, "id"), service.AddCommentInput{
		UserID: req.UserID,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toRecipeResponse(rec))
}
