package plant

import (
	"context"
	"errors"
)

var (
	ErrPlantNotFound   = errors.New("plant not found")
	ErrSpeciesNotFound = errors.New("species not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNotEmpty    = errors.New("room still contains plants")
)

// Repository defines the interface for plant storage. Returned plants carry
// their Species and Room fully resolved.
type Repository interface {
	Create(ctx context.Context, p *Plant) error
	GetByID(ctx context.Context, id string) (*Plant, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*Plant, error)
	ListByRoom(ctx context.Context, roomID string) ([]*Plant, error)
	ListByNickname(ctx context.Context, tenantID, nickname string) ([]*Plant, error)
	UpdateNickname(ctx context.Context, id, nickname string) error
	UpdateRoom(ctx context.Context, id, roomID string) error
	Delete(ctx context.Context, id string) error
}

// SpeciesRepository defines the interface for species reference data.
type SpeciesRepository interface {
	GetByID(ctx context.Context, id string) (*Species, error)
	List(ctx context.Context) ([]*Species, error)
}

// RoomRepository defines the interface for room storage. ListTenants returns
// the distinct tenant identifiers across all rooms; that set is the tenant
// population of the system.
type RoomRepository interface {
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*Room, error)
	ListTenants(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}

// MoistureRepository defines the interface for the append-only soil-moisture
// series. RecentByPlant returns at most limit samples, newest first.
type MoistureRepository interface {
	Insert(ctx context.Context, sample *MoistureSample) error
	RecentByPlant(ctx context.Context, plantID string, limit int) ([]*MoistureSample, error)
}
