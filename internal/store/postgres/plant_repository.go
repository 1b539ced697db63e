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

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/plantstein/plantstein/internal/plant"
)

// plantColumns joins plants with their species and room so every returned
// plant carries fully resolved relations.
const plantColumns = `
	p.id, p.nickname, p.created_at,
	s.id, s.name, s.perfect_light, s.perfect_temperature, s.perfect_humidity,
	r.id, r.name, r.tenant_id
`

const plantJoins = `
	FROM plants p
	JOIN species s ON s.id = p.species_id
	JOIN rooms r ON r.id = p.room_id
`

// PlantRepository implements plant.Repository
type PlantRepository struct {
	db *DB
}

// NewPlantRepository creates a new plant repository
func NewPlantRepository(db *DB) *PlantRepository {
	return &PlantRepository{db: db}
}

// Create inserts a plant
func (r *PlantRepository) Create(ctx context.Context, p *plant.Plant) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO plants (id, nickname, species_id, room_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.Nickname, p.Species.ID, p.Room.ID, p.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create plant: %w", err)
	}
	return nil
}

// GetByID retrieves a plant with resolved species and room
func (r *PlantRepository) GetByID(ctx context.Context, id string) (*plant.Plant, error) {
	row := r.db.pool.QueryRow(ctx, `SELECT `+plantColumns+plantJoins+` WHERE p.id = $1`, id)

	p, err := scanPlant(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, plant.ErrPlantNotFound
		}
		return nil, fmt.Errorf("failed to get plant: %w", err)
	}
	return p, nil
}

// ListByTenant lists all plants whose room belongs to the tenant
func (r *PlantRepository) ListByTenant(ctx context.Context, tenantID string) ([]*plant.Plant, error) {
	rows, err := r.db.pool.Query(ctx, `SELECT `+plantColumns+plantJoins+` WHERE r.tenant_id = $1 ORDER BY p.created_at`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	defer rows.Close()

	return collectPlants(rows)
}

// ListByRoom lists all plants in one room
func (r *PlantRepository) ListByRoom(ctx context.Context, roomID string) ([]*plant.Plant, error) {
	rows, err := r.db.pool.Query(ctx, `SELECT `+plantColumns+plantJoins+` WHERE p.room_id = $1 ORDER BY p.created_at`, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants by room: %w", err)
	}
	defer rows.Close()

	return collectPlants(rows)
}

// ListByNickname lists a tenant's plants with the given nickname
func (r *PlantRepository) ListByNickname(ctx context.Context, tenantID, nickname string) ([]*plant.Plant, error) {
	rows, err := r.db.pool.Query(ctx, `SELECT `+plantColumns+plantJoins+` WHERE r.tenant_id = $1 AND p.nickname = $2 ORDER BY p.created_at`, tenantID, nickname)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants by nickname: %w", err)
	}
	defer rows.Close()

	return collectPlants(rows)
}

// UpdateNickname renames a plant
func (r *PlantRepository) UpdateNickname(ctx context.Context, id, nickname string) error {
	result, err := r.db.pool.Exec(ctx, `UPDATE plants SET nickname = $2 WHERE id = $1`, id, nickname)
	if err != nil {
		return fmt.Errorf("failed to update nickname: %w", err)
	}
	if result.RowsAffected() == 0 {
		return plant.ErrPlantNotFound
	}
	return nil
}

// UpdateRoom moves a plant to another room
func (r *PlantRepository) UpdateRoom(ctx context.Context, id, roomID string) error {
	result, err := r.db.pool.Exec(ctx, `UPDATE plants SET room_id = $2 WHERE id = $1`, id, roomID)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	if result.RowsAffected() == 0 {
		return plant.ErrPlantNotFound
	}
	return nil
}

// Delete removes a plant
func (r *PlantRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.pool.Exec(ctx, `DELETE FROM plants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return plant.ErrPlantNotFound
	}
	return nil
}

func scanPlant(row pgx.Row) (*plant.Plant, error) {
	var p plant.Plant
	err := row.Scan(
		&p.ID, &p.Nickname, &p.CreatedAt,
		&p.Species.ID, &p.Species.Name, &p.Species.PerfectLight, &p.Species.PerfectTemperature, &p.Species.PerfectHumidity,
		&p.Room.ID, &p.Room.Name, &p.Room.TenantID,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPlants(rows pgx.Rows) ([]*plant.Plant, error) {
	var plants []*plant.Plant
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plant: %w", err)
		}
		plants = append(plants, p)
	}
	return plants, rows.Err()
}
