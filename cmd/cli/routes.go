package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sguter90/ambientweather/pkg/ambient"
	"github.com/sguter90/ambientweather/pkg/config"
)

// AmbientAPI is the part of the Ambient Weather client the relay needs
type AmbientAPI interface {
	ListDevices(ctx context.Context) ([]ambient.Device, error)
	QueryDeviceDataUntil(ctx context.Context, macAddress string, limit int, endDate string) ([]ambient.DataRecord, error)
}

// RouteManager handles all API routes
type RouteManager struct {
	api    AmbientAPI
	cfg    config.Config
	logger *slog.Logger
	Router *mux.Router
}

// NewRouteManager creates a new RouteManager instance
func NewRouteManager(api AmbientAPI, cfg config.Config, logger *slog.Logger) *RouteManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &RouteManager{
		api:    api,
		cfg:    cfg,
		logger: logger,
		Router: mux.NewRouter(),
	}
}

// Setup configures all API routes
func (rm *RouteManager) Setup() {
	r := rm.Router
	r.Use(rm.corsMiddleware)
	r.Use(rm.requestLogMiddleware)

	// Global OPTIONS handler - catches all preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.HandleFunc("/health", rm.healthHandler).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	rm.setupAPIRoutes(api)
}

// setupAPIRoutes configures all API v1 routes
func (rm *RouteManager) setupAPIRoutes(api *mux.Router) {
	if rm.cfg.JWTSecret != "" {
		api.Use(rm.JWTAuthMiddleware)
	} else {
		rm.logger.Warn("JWT_SECRET not set, /api/v1 is unauthenticated")
	}

	api.HandleFunc("/devices", rm.getDevicesHandler).Methods("GET")
	api.HandleFunc("/devices/{mac}/data", rm.getDeviceDataHandler).Methods("GET")
}
