package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plantstein/plantstein/internal/plant"
)

// ListSpecies lists all known species
// @Summary Get all species
// @Tags Species
// @Produce json
// @Success 200 {array} plant.Species
// @Router /species [get]
func (h *Handler) ListSpecies(w http.ResponseWriter, r *http.Request) {
	species, err := h.plantService.ListSpecies(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list species", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list species")
		return
	}
	if species == nil {
		species = []*plant.Species{}
	}
	respondJSON(w, http.StatusOK, species)
}

// GetSpecies retrieves one species
// @Summary Get species
// @Tags Species
// @Produce json
// @Param speciesID path string true "Species ID"
// @Success 200 {object} plant.Species
// @Failure 404 {object} map[string]string
// @Router /species/{speciesID} [get]
func (h *Handler) GetSpecies(w http.ResponseWriter, r *http.Request) {
	s, err := h.plantService.GetSpecies(r.Context(), chi.URLParam(r, "speciesID"))
	if err != nil {
		if errors.Is(err, plant.ErrSpeciesNotFound) {
			respondError(w, http.StatusNotFound, "species does not exist")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get species")
		return
	}
	respondJSON(w, http.StatusOK, s)
}
