package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/plantstein/plantstein/internal/plant"
)

// SpeciesRepository implements plant.SpeciesRepository
type SpeciesRepository struct {
	db *DB
}

// NewSpeciesRepository creates a new species repository
func NewSpeciesRepository(db *DB) *SpeciesRepository {
	return &SpeciesRepository{db: db}
}

// GetByID retrieves one species
func (r *SpeciesRepository) GetByID(ctx context.Context, id string) (*plant.Species, error) {
	var s plant.Species
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, name, perfect_light, perfect_temperature, perfect_humidity
		FROM species WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.PerfectLight, &s.PerfectTemperature, &s.PerfectHumidity)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, plant.ErrSpeciesNotFound
		}
		return nil, fmt.Errorf("failed to get species: %w", err)
	}
	return &s, nil
}

// List retrieves all species reference data
func (r *SpeciesRepository) List(ctx context.Context) ([]*plant.Species, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, name, perfect_light, perfect_temperature, perfect_humidity
		FROM species ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list species: %w", err)
	}
	defer rows.Close()

	var species []*plant.Species
	for rows.Next() {
		var s plant.Species
		if err := rows.Scan(&s.ID, &s.Name, &s.PerfectLight, &s.PerfectTemperature, &s.PerfectHumidity); err != nil {
			return nil, fmt.Errorf("failed to scan species: %w", err)
		}
		species = append(species, &s)
	}
	return species, rows.Err()
}
