package api

import (
	"github.com/alexivanou/padel-spots-api/internal/service"
	"github.com/alexivanou/padel-spots-api/internal/stats"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router
func NewRouter(service service.ServiceInterface, statsCollector *stats.Collector, logger *zap.Logger) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := NewHandler(service, logger)
	statsHandler := NewStatsHandler(statsCollector, logger)

	router := mux.NewRouter()
	router.Use(requestID, accessLog(logger))

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/spots", handler.ListSpots).Methods("GET")
	v1.HandleFunc("/spots", handler.CreateSpot).Methods("POST")
	v1.HandleFunc("/spots/nearby", handler.NearbySpots).Methods("GET")
	v1.HandleFunc("/spots/{id:[0-9]+}", handler.GetSpot).Methods("GET")
	v1.HandleFunc("/spots/{id:[0-9]+}", handler.UpdateSpot).Methods("PATCH")
	v1.HandleFunc("/spots/{id:[0-9]+}", handler.DeleteSpot).Methods("DELETE")
	if statsCollector != nil {
		v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")
	}

	return router
}
