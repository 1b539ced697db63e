package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plantstein/plantstein/internal/plant"
)

// CreateRoomRequest represents room creation data
type CreateRoomRequest struct {
	Name string `json:"name" example:"Living Room"`
}

// CreateRoom handles room creation
// @Summary Add room
// @Tags Room
// @Accept json
// @Produce json
// @Param X-Client-ID header string true "Client ID"
// @Param request body CreateRoomRequest true "Room Data"
// @Success 201 {object} plant.Room
// @Failure 400 {object} map[string]string
// @Router /rooms [post]
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	room, err := h.plantService.CreateRoom(r.Context(), GetTenantID(r.Context()), req.Name)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, room)
}

// ListRooms lists the tenant's rooms
// @Summary Get all rooms of client
// @Tags Room
// @Produce json
// @Param X-Client-ID header string true "Client ID"
// @Success 200 {array} plant.Room
// @Router /rooms [get]
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.plantService.ListRooms(r.Context(), GetTenantID(r.Context()))
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list rooms", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list rooms")
		return
	}
	if rooms == nil {
		rooms = []*plant.Room{}
	}
	respondJSON(w, http.StatusOK, rooms)
}

// DeleteRoom removes an empty room
// @Summary Delete room
// @Tags Room
// @Produce json
// @Param roomID path string true "Room ID"
// @Success 204 "Room deleted"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rooms/{roomID} [delete]
func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	err := h.plantService.DeleteRoom(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		switch {
		case errors.Is(err, plant.ErrRoomNotFound):
			respondError(w, http.StatusNotFound, "room does not exist")
		case errors.Is(err, plant.ErrRoomNotEmpty):
			respondError(w, http.StatusConflict, "room still contains plants")
		default:
			respondError(w, http.StatusInternalServerError, "failed to delete room")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
