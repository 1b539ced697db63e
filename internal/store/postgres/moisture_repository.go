package postgres

import (
	"context"
	"fmt"

	"github.com/plantstein/plantstein/internal/plant"
)

// MoistureRepository implements plant.MoistureRepository over the
// append-only plant_moisture series.
type MoistureRepository struct {
	db *DB
}

// NewMoistureRepository creates a new moisture repository
func NewMoistureRepository(db *DB) *MoistureRepository {
	return &MoistureRepository{db: db}
}

// Insert appends one sample
func (r *MoistureRepository) Insert(ctx context.Context, sample *plant.MoistureSample) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO plant_moisture (plant_id, moisture, ts)
		VALUES ($1, $2, $3)
	`, sample.PlantID, sample.Moisture, sample.Timestamp)

	if err != nil {
		return fmt.Errorf("failed to insert moisture sample: %w", err)
	}
	return nil
}

// RecentByPlant returns at most limit samples for a plant, newest first
func (r *MoistureRepository) RecentByPlant(ctx context.Context, plantID string, limit int) ([]*plant.MoistureSample, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT plant_id, moisture, ts
		FROM plant_moisture
		WHERE plant_id = $1
		ORDER BY ts DESC
		LIMIT $2
	`, plantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query moisture history: %w", err)
	}
	defer rows.Close()

	var samples []*plant.MoistureSample
	for rows.Next() {
		var s plant.MoistureSample
		if err := rows.Scan(&s.PlantID, &s.Moisture, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan moisture sample: %w", err)
		}
		samples = append(samples, &s)
	}
	return samples, rows.Err()
}
