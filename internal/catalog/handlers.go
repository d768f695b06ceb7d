package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPackages)
	r.Get("/{id}", h.GetPackage)
	return r
}

type packageView struct {
	SolarPackage
	DisplayPrice string      `json:"display_price"`
	Group        GroupStatus `json:"group"`
}

func view(p SolarPackage) packageView {
	return packageView{
		SolarPackage: p,
		DisplayPrice: FormatPrice(p.GroupPrice),
		Group:        GroupProgress(p.CurrentParticipants, p.ParticipantsNeeded),
	}
}

func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	pkgs := Packages()
	out := make([]packageView, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, view(p))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (h *Handler) GetPackage(w http.ResponseWriter, r *http.Request) {
	p, ok := FindPackage(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "package not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view(p))
}

type savingsRequest struct {
	MonthlyFuelCost int64  `json:"monthly_fuel_cost"`
	PackageID       string `json:"package_id"`
	PackagePrice    int64  `json:"package_price"`
}

// ComputeSavingsHandler accepts either a catalogue package id or an explicit
// price; the id wins when both are present.
func (h *Handler) ComputeSavingsHandler(w http.ResponseWriter, r *http.Request) {
	var req savingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	price := req.PackagePrice
	if req.PackageID != "" {
		p, ok := FindPackage(req.PackageID)
		if !ok {
			http.Error(w, "package not found", http.StatusNotFound)
			return
		}
		price = p.GroupPrice
	}
	if price <= 0 || req.MonthlyFuelCost < 0 {
		http.Error(w, "monthly_fuel_cost and a package are required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ComputeSavings(req.MonthlyFuelCost, price))
}

func (h *Handler) ListFinancing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(FinancingOptions())
}
