// Copyright 2026 The Plantstein Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plantstein/plantstein/internal/monitor"
	"github.com/plantstein/plantstein/internal/plant"
)

// CheckConditions runs the tenant's condition scan on demand. The result
// equals what the scheduled tick would publish for this tenant at this
// instant, given the same underlying data.
// @Summary Check if any plant is outside its perfect conditions
// @Tags Monitor
// @Produce json
// @Param X-Client-ID header string true "Client ID"
// @Success 200 {array} monitor.Alert
// @Router /plants/check-conditions [get]
func (h *Handler) CheckConditions(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.scanner.CheckTenant(r.Context(), GetTenantID(r.Context()))
	if err != nil {
		slog.ErrorContext(r.Context(), "condition check failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to check conditions")
		return
	}
	if alerts == nil {
		alerts = []monitor.Alert{}
	}
	respondJSON(w, http.StatusOK, alerts)
}

// GetPlantCondition returns the current ambient reading of a plant's room
// @Summary Get condition
// @Tags Plant
// @Produce json
// @Param plantID path string true "Plant ID"
// @Success 200 {object} plant.AmbientReading
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /plants/{plantID}/condition [get]
func (h *Handler) GetPlantCondition(w http.ResponseWriter, r *http.Request) {
	reading, err := h.readings.AmbientReading(r.Context(), chi.URLParam(r, "plantID"))
	if err != nil {
		switch {
		case errors.Is(err, plant.ErrPlantNotFound):
			respondError(w, http.StatusNotFound, "plant does not exist")
		case errors.Is(err, monitor.ErrReadingUnavailable):
			respondError(w, http.StatusServiceUnavailable, "no current reading for this plant's room")
		default:
			respondError(w, http.StatusInternalServerError, "failed to get condition")
		}
		return
	}
	respondJSON(w, http.StatusOK, reading)
}

// GetPlantMoisture returns the recent moisture window for a plant
// @Summary Get recent moisture samples
// @Tags Plant
// @Produce json
// @Param plantID path string true "Plant ID"
// @Success 200 {array} plant.MoistureSample
// @Router /plants/{plantID}/moisture [get]
func (h *Handler) GetPlantMoisture(w http.ResponseWriter, r *http.Request) {
	samples, err := h.moisture.RecentByPlant(r.Context(), chi.URLParam(r, "plantID"), monitor.MoistureWindow)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to get moisture history", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to get moisture history")
		return
	}
	if samples == nil {
		samples = []*plant.MoistureSample{}
	}
	respondJSON(w, http.StatusOK, samples)
}
