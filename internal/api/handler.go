package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexivanou/padel-spots-api/internal/model"
	"github.com/alexivanou/padel-spots-api/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler handles HTTP requests
type Handler struct {
	service service.ServiceInterface
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// ListSpots handles GET /api/v1/spots
func (h *Handler) ListSpots(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSpotFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	spots, err := h.service.FindSpots(r.Context(), filter)
	if err != nil {
		h.serviceError(w, r, "Error finding spots", err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newSpotsResponse(spots))
}

// NearbySpots handles GET /api/v1/spots/nearby
func (h *Handler) NearbySpots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("lat") == "" || query.Get("lng") == "" {
		http.Error(w, "parameters 'lat' and 'lng' are required", http.StatusBadRequest)
		return
	}

	location, err := parseLocation(query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var radius float64
	if radiusStr := query.Get("radius_km"); radiusStr != "" {
		radius, err = parseFinite(radiusStr)
		if err != nil || radius <= 0 {
			http.Error(w, "invalid radius_km parameter", http.StatusBadRequest)
			return
		}
	}

	spots, err := h.service.FindNearbySpots(r.Context(), location.Lat, location.Lng, radius)
	if err != nil {
		h.serviceError(w, r, "Error finding nearby spots", err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newSpotsResponse(spots))
}

// GetSpot handles GET /api/v1/spots/{id}
func (h *Handler) GetSpot(w http.ResponseWriter, r *http.Request) {
	id, ok := spotID(w, r)
	if !ok {
		return
	}

	spot, err := h.service.GetSpotByID(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, "Error getting spot", err)
		return
	}

	if spot == nil {
		http.Error(w, "spot not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, r, http.StatusOK, spot)
}

// CreateSpot handles POST /api/v1/spots
func (h *Handler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSpotRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	spot, err := h.service.CreateSpot(r.Context(), req)
	if err != nil {
		h.serviceError(w, r, "Error creating spot", err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, spot)
}

// UpdateSpot handles PATCH /api/v1/spots/{id}
func (h *Handler) UpdateSpot(w http.ResponseWriter, r *http.Request) {
	id, ok := spotID(w, r)
	if !ok {
		return
	}

	var req model.UpdateSpotRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	spot, err := h.service.UpdateSpot(r.Context(), id, req)
	if err != nil {
		h.serviceError(w, r, "Error updating spot", err)
		return
	}

	if spot == nil {
		http.Error(w, "spot not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, r, http.StatusOK, spot)
}

// DeleteSpot handles DELETE /api/v1/spots/{id}
func (h *Handler) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	id, ok := spotID(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.DeleteSpot(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, "Error deleting spot", err)
		return
	}

	if !deleted {
		http.Error(w, "spot not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func newSpotsResponse(spots []model.SpotWithDistance) model.SpotsResponse {
	if spots == nil {
		spots = []model.SpotWithDistance{}
	}
	return model.SpotsResponse{Spots: spots, Total: len(spots)}
}

func spotID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid spot id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Error(msg, zap.Error(err), zap.String("request_id", RequestIDFromContext(r.Context())))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.logger.Error("Error encoding response", zap.Error(err), zap.String("request_id", RequestIDFromContext(r.Context())))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("Error writing response", zap.Error(err), zap.String("request_id", RequestIDFromContext(r.Context())))
	}
}
