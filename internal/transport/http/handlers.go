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

// @title Plantstein API
// @version 1.0.0
// @description Plant condition monitoring server

// @host localhost:8080
// @BasePath /api/v1

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/plantstein/plantstein/internal/monitor"
	"github.com/plantstein/plantstein/internal/plant"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handler holds HTTP handlers and dependencies
type Handler struct {
	plantService *plant.Service
	scanner      *monitor.Scanner
	readings     monitor.ReadingSource
	moisture     monitor.MoistureHistory
}

// NewHandler creates a new HTTP handler
func NewHandler(
	plantService *plant.Service,
	scanner *monitor.Scanner,
	readings monitor.ReadingSource,
	moisture monitor.MoistureHistory,
) *Handler {
	return &Handler{
		plantService: plantService,
		scanner:      scanner,
		readings:     readings,
		moisture:     moisture,
	}
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/health", h.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Species reference data is tenant-agnostic
		r.Get("/species", h.ListSpecies)
		r.Get("/species/{speciesID}", h.GetSpecies)

		// Tenant-scoped endpoints; the client installation identifies
		// itself with the X-Client-ID header
		r.Group(func(r chi.Router) {
			r.Use(ClientIDMiddleware)

			r.Route("/plants", func(r chi.Router) {
				r.Get("/", h.ListPlants)
				r.Post("/", h.AddPlant)
				r.Get("/check-conditions", h.CheckConditions)
				r.Get("/nickname/{nickname}", h.ListPlantsByNickname)

				r.Route("/{plantID}", func(r chi.Router) {
					r.Get("/", h.GetPlant)
					r.Delete("/", h.DeletePlant)
					r.Put("/rename", h.RenamePlant)
					r.Put("/room", h.ChangeRoom)
					r.Get("/condition", h.GetPlantCondition)
					r.Get("/moisture", h.GetPlantMoisture)
				})
			})

			r.Route("/rooms", func(r chi.Router) {
				r.Get("/", h.ListRooms)
				r.Post("/", h.CreateRoom)
				r.Delete("/{roomID}", h.DeleteRoom)
			})
		})
	})

	return r
}

// HealthCheck returns the health status
// @Summary Health Check
// @Description Checks if the service is up and running
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "plantstein",
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
