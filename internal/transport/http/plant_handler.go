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
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plantstein/plantstein/internal/plant"
)

// AddPlantRequest represents plant creation data
type AddPlantRequest struct {
	Nickname  string `json:"nickname" example:"Bert"`
	SpeciesID string `json:"species_id" example:"monstera-deliciosa"`
	RoomID    string `json:"room_id"`
}

// AddPlant handles plant creation
// @Summary Add plant
// @Description Add a plant to an existing room
// @Tags Plant
// @Accept json
// @Produce json
// @Param request body AddPlantRequest true "Plant Data"
// @Success 201 {object} plant.Plant
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /plants [post]
func (h *Handler) AddPlant(w http.ResponseWriter, r *http.Request) {
	var req AddPlantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.plantService.AddPlant(r.Context(), req.Nickname, req.SpeciesID, req.RoomID)
	if err != nil {
		if errors.Is(err, plant.ErrSpeciesNotFound) || errors.Is(err, plant.ErrRoomNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, p)
}

// ListPlants lists all plants of the requesting tenant
// @Summary Get all plants of client
// @Tags Plant
// @Produce json
// @Param X-Client-ID header string true "Client ID"
// @Success 200 {array} plant.Plant
// @Router /plants [get]
func (h *Handler) ListPlants(w http.ResponseWriter, r *http.Request) {
	plants, err := h.plantService.ListPlants(r.Context(), GetTenantID(r.Context()))
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list plants", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list plants")
		return
	}
	if plants == nil {
		plants = []*plant.Plant{}
	}
	respondJSON(w, http.StatusOK, plants)
}

// ListPlantsByNickname lists a tenant's plants with a given nickname
// @Summary Get plants of client by nickname
// @Tags Plant
// @Produce json
// @Param nickname path string true "Nickname"
// @Success 200 {array} plant.Plant
// @Router /plants/nickname/{nickname} [get]
func (h *Handler) ListPlantsByNickname(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")
	plants, err := h.plantService.ListPlantsByNickname(r.Context(), GetTenantID(r.Context()), nickname)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list plants by nickname", "error", err, "nickname", nickname)
		respondError(w, http.StatusInternalServerError, "failed to list plants")
		return
	}
	if plants == nil {
		plants = []*plant.Plant{}
	}
	respondJSON(w, http.StatusOK, plants)
}

// GetPlant retrieves one plant
// @Summary Get plant
// @Tags Plant
// @Produce json
// @Param plantID path string true "Plant ID"
// @Success 200 {object} plant.Plant
// @Failure 404 {object} map[string]string
// @Router /plants/{plantID} [get]
func (h *Handler) GetPlant(w http.ResponseWriter, r *http.Request) {
	p, err := h.plantService.GetPlant(r.Context(), chi.URLParam(r, "plantID"))
	if err != nil {
		if errors.Is(err, plant.ErrPlantNotFound) {
			respondError(w, http.StatusNotFound, "plant does not exist")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get plant")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// RenamePlantRequest carries the new nickname
type RenamePlantRequest struct {
	Nickname string `json:"nickname" example:"Bert II"`
}

// RenamePlant changes a plant's nickname
// @Summary Rename plant
// @Tags Plant
// @Accept json
// @Produce json
// @Param plantID path string true "Plant ID"
// @Param request body RenamePlantRequest true "New nickname"
// @Success 200 {object} plant.Plant
// @Failure 404 {object} map[string]string
// @Router /plants/{plantID}/rename [put]
func (h *Handler) RenamePlant(w http.ResponseWriter, r *http.Request) {
	var req RenamePlantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.plantService.RenamePlant(r.Context(), chi.URLParam(r, "plantID"), req.Nickname)
	if err != nil {
		if errors.Is(err, plant.ErrPlantNotFound) {
			respondError(w, http.StatusNotFound, "plant does not exist")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// ChangeRoomRequest carries the destination room
type ChangeRoomRequest struct {
	RoomID string `json:"room_id"`
}

// ChangeRoom moves a plant into another room
// @Summary Change room of plant
// @Tags Plant
// @Accept json
// @Produce json
// @Param plantID path string true "Plant ID"
// @Param request body ChangeRoomRequest true "Destination room"
// @Success 200 {object} plant.Plant
// @Failure 404 {object} map[string]string
// @Router /plants/{plantID}/room [put]
func (h *Handler) ChangeRoom(w http.ResponseWriter, r *http.Request) {
	var req ChangeRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.plantService.ChangeRoom(r.Context(), chi.URLParam(r, "plantID"), req.RoomID)
	if err != nil {
		if errors.Is(err, plant.ErrPlantNotFound) || errors.Is(err, plant.ErrRoomNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to move plant")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// DeletePlant removes a plant
// @Summary Delete plant
// @Tags Plant
// @Produce json
// @Param plantID path string true "Plant ID"
// @Success 200 {object} plant.Plant
// @Failure 404 {object} map[string]string
// @Router /plants/{plantID} [delete]
func (h *Handler) DeletePlant(w http.ResponseWriter, r *http.Request) {
	p, err := h.plantService.DeletePlant(r.Context(), chi.URLParam(r, "plantID"))
	if err != nil {
		if errors.Is(err, plant.ErrPlantNotFound) {
			respondError(w, http.StatusNotFound, "plant does not exist")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete plant")
		return
	}
	respondJSON(w, http.StatusOK, p)
}
