package rating

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmkabwe/zubasolar/internal/middleware"
	"github.com/dmkabwe/zubasolar/internal/types/rating"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.SubmitRating)
	return r
}

func (h *Handler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	var req SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.SubmitRating(r.Context(), req)
	switch {
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrRatingOutOfRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrAlreadyRated):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rec)
}

type installerRatingsResponse struct {
	Average float64         `json:"average"`
	Count   int             `json:"count"`
	Ratings []rating.Rating `json:"ratings"`
}

// ListInstallerRatings serves the signed-in installer's reviews plus the
// average; mounted under the authenticated group.
func (h *Handler) ListInstallerRatings(w http.ResponseWriter, r *http.Request) {
	installerID := middleware.InstallerIDFromContext(r.Context())

	ratings, err := h.svc.ListRatings(r.Context(), installerID)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	avg, count, err := h.svc.AverageRating(r.Context(), installerID)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(installerRatingsResponse{
		Average: avg,
		Count:   count,
		Ratings: ratings,
	})
}
