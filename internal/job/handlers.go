package job

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmkabwe/zubasolar/internal/middleware"
	"github.com/dmkabwe/zubasolar/internal/types/job"
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
	r.Get("/", h.ListJobs)
	r.Post("/", h.ScheduleJob)
	r.Post("/{id}/status", h.UpdateStatus)
	return r
}

type listResponse struct {
	Upcoming  []job.Job `json:"upcoming"`
	Completed []job.Job `json:"completed"`
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	installerID := middleware.InstallerIDFromContext(r.Context())

	jobs, err := h.svc.ListJobs(r.Context(), installerID)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	upcoming, completed := Partition(jobs)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listResponse{Upcoming: upcoming, Completed: completed})
}

func (h *Handler) ScheduleJob(w http.ResponseWriter, r *http.Request) {
	installerID := middleware.InstallerIDFromContext(r.Context())

	var req ScheduleJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	j, err := h.svc.ScheduleJob(r.Context(), installerID, req)
	switch {
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(j)
}

type statusRequest struct {
	Status job.JobStatus `json:"status"`
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	installerID := middleware.InstallerIDFromContext(r.Context())
	jobID := chi.URLParam(r, "id")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	j, err := h.svc.UpdateStatus(r.Context(), installerID, jobID, req.Status)
	switch {
	case errors.Is(err, ErrJobNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, ErrNotJobOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(j)
}
