package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/plantstein/plantstein/internal/plant"
)

// RoomRepository implements plant.RoomRepository
type RoomRepository struct {
	db *DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create inserts a room
func (r *RoomRepository) Create(ctx context.Context, room *plant.Room) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO rooms (id, name, tenant_id)
		VALUES ($1, $2, $3)
	`, room.ID, room.Name, room.TenantID)

	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// GetByID retrieves a room
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*plant.Room, error) {
	var room plant.Room
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, name, tenant_id FROM rooms WHERE id = $1
	`, id).Scan(&room.ID, &room.Name, &room.TenantID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, plant.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &room, nil
}

// ListByTenant lists a tenant's rooms
func (r *RoomRepository) ListByTenant(ctx context.Context, tenantID string) ([]*plant.Room, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, name, tenant_id FROM rooms WHERE tenant_id = $1 ORDER BY name
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*plant.Room
	for rows.Next() {
		var room plant.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.TenantID); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, &room)
	}
	return rooms, rows.Err()
}

// ListTenants returns the distinct tenant identifiers across all rooms.
// Tenancy is derived from room ownership; there is no tenants table.
func (r *RoomRepository) ListTenants(ctx context.Context) ([]string, error) {
	rows, err := r.db.pool.Query(ctx, `SELECT DISTINCT tenant_id FROM rooms ORDER BY tenant_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan tenant id: %w", err)
		}
		tenants = append(tenants, id)
	}
	return tenants, rows.Err()
}

// Delete removes an empty room. Rooms with plants are protected by the
// plants.room_id foreign key; the caller sees plant.ErrRoomNotEmpty.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	var count int
	if err := r.db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM plants WHERE room_id = $1`, id).Scan(&count); err != nil {
		return fmt.Errorf("failed to count plants in room: %w", err)
	}
	if count > 0 {
		return plant.ErrRoomNotEmpty
	}

	result, err := r.db.pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if result.RowsAffected() == 0 {
		return plant.ErrRoomNotFound
	}
	return nil
}
