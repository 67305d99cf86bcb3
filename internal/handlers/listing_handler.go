package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"chavecerta-backend/internal/cache"
	"chavecerta-backend/internal/middleware"
	"chavecerta-backend/internal/models"
	"chavecerta-backend/internal/services"
	"chavecerta-backend/pkg/utils"

	"github.com/gorilla/mux"
)

const availableCacheTTL = 60 * time.Second

type ListingHandler struct {
	Service *services.ListingService
}

func NewListingHandler(s *services.ListingService) *ListingHandler {
	return &ListingHandler{Service: s}
}

func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	var req models.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	listing, err := h.Service.CreateListing(r.Context(), p, &req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, listing)
}

func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	listing, err := h.Service.GetListing(r.Context(), id)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, listing)
}

// parseListingFilter reads the supported query parameters. Unknown values
// for category and ordering surface as empty result sets or defaults, not
// errors, matching list endpoint conventions.
func parseListingFilter(r *http.Request) *models.ListingFilter {
	q := r.URL.Query()
	filter := &models.ListingFilter{
		Category: q.Get("category"),
		Search:   q.Get("q"),
		Ordering: q.Get("ordering"),
	}

	if v := q.Get("available"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.Available = &b
		}
	}
	if v := q.Get("room_count"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.RoomCount = &n
		}
	}

	return filter
}

func (h *ListingHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.Service.ListListings(r.Context(), parseListingFilter(r))
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, listings)
}

// ListAvailable serves the available-only view, cached in Redis because it
// is the landing-page query.
func (h *ListingHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCached(r.Context(), cache.AvailableListingsKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	listings, err := h.Service.ListAvailable(r.Context())
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	if data, err := json.Marshal(listings); err == nil {
		cache.SetCached(r.Context(), cache.AvailableListingsKey, data, availableCacheTTL)
	}

	utils.WriteJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	listing, err := h.Service.UpdateListing(r.Context(), p, id, &req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteListing(r.Context(), p, id); err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
