package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sguter90/ambientweather/pkg/ambient"
)

// getDevicesHandler relays the account's device list
func (rm *RouteManager) getDevicesHandler(w http.ResponseWriter, r *http.Request) {
	devices, err := rm.api.ListDevices(r.Context())
	if err != nil {
		rm.writeUpstreamError(w, r, "list devices", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(devices)
}

// getDeviceDataHandler relays historical records for one device
func (rm *RouteManager) getDeviceDataHandler(w http.ResponseWriter, r *http.Request) {
	mac := mux.Vars(r)["mac"]
	query := r.URL.Query()

	limit := ambient.MaxRecords
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > ambient.MaxRecords {
			http.Error(w, "limit must be an integer between 1 and 288", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := rm.api.QueryDeviceDataUntil(r.Context(), mac, limit, query.Get("endDate"))
	if err != nil {
		rm.writeUpstreamError(w, r, "query device data", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// writeUpstreamError passes API status errors through unchanged and maps
// everything else to 502.
func (rm *RouteManager) writeUpstreamError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if statusErr, ok := ambient.AsHTTPStatusError(err); ok {
		rm.logger.Warn("upstream rejected request",
			"op", op,
			"status", statusErr.StatusCode,
			"request_id", requestIDFrom(r.Context()),
		)
		contentType := "text/plain; charset=utf-8"
		if json.Valid([]byte(statusErr.Body)) {
			contentType = "application/json"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(statusErr.StatusCode)
		w.Write([]byte(statusErr.Body))
		return
	}

	rm.logger.Error("upstream request failed",
		"op", op,
		"error", err,
		"request_id", requestIDFrom(r.Context()),
	)
	http.Error(w, "Failed to reach Ambient Weather API", http.StatusBadGateway)
}
