package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/restomanage/internal/service"
)

// RestaurantAnalytics возвращает аналитику ресторана за период из параметра
// period (day, week, month, year). По умолчанию используется week.
func (h *Handler) RestaurantAnalytics(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = service.PeriodWeek
	}

	data, err := h.service.RestaurantAnalytics(r.Context(), chi.URLParam(r, "id"), period)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, data)
}
