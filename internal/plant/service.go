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

package plant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plantstein/plantstein/internal/audit"
)

// Service provides plant, room, and species management business logic
type Service struct {
	plants      Repository
	species     SpeciesRepository
	rooms       RoomRepository
	auditLogger audit.Logger
}

// NewService creates a new plant service
func NewService(plants Repository, species SpeciesRepository, rooms RoomRepository, auditLogger audit.Logger) *Service {
	return &Service{
		plants:      plants,
		species:     species,
		rooms:       rooms,
		auditLogger: auditLogger,
	}
}

// AddPlant creates a plant in an existing room with an existing species.
// The room determines the plant's tenant.
func (s *Service) AddPlant(ctx context.Context, nickname, speciesID, roomID string) (*Plant, error) {
	if nickname == "" {
		return nil, fmt.Errorf("plant nickname is required")
	}

	sp, err := s.species.GetByID(ctx, speciesID)
	if err != nil {
		return nil, fmt.Errorf("species %s: %w", speciesID, err)
	}
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", roomID, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate plant id: %w", err)
	}

	p := &Plant{
		ID:        id.String(),
		Nickname:  nickname,
		Species:   *sp,
		Room:      *room,
		CreatedAt: time.Now(),
	}

	if err := s.plants.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create plant: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypePlantCreated,
		TenantID: room.TenantID,
		Resource: p.ID,
		Metadata: map[string]any{"nickname": nickname, "species_id": speciesID, "room_id": roomID},
	})

	return p, nil
}

// GetPlant retrieves a plant by ID
func (s *Service) GetPlant(ctx context.Context, id string) (*Plant, error) {
	return s.plants.GetByID(ctx, id)
}

// ListPlants lists all plants owned by a tenant
func (s *Service) ListPlants(ctx context.Context, tenantID string) ([]*Plant, error) {
	return s.plants.ListByTenant(ctx, tenantID)
}

// ListPlantsByNickname lists a tenant's plants with the given nickname.
// The result may be empty; nicknames are not unique.
func (s *Service) ListPlantsByNickname(ctx context.Context, tenantID, nickname string) ([]*Plant, error) {
	return s.plants.ListByNickname(ctx, tenantID, nickname)
}

// RenamePlant changes a plant's nickname
func (s *Service) RenamePlant(ctx context.Context, id, nickname string) (*Plant, error) {
	if nickname == "" {
		return nil, fmt.Errorf("plant nickname is required")
	}

	p, err := s.plants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.plants.UpdateNickname(ctx, id, nickname); err != nil {
		return nil, fmt.Errorf("failed to rename plant: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypePlantRenamed,
		TenantID: p.Room.TenantID,
		Resource: id,
		Metadata: map[string]any{"old_nickname": p.Nickname, "new_nickname": nickname},
	})

	return s.plants.GetByID(ctx, id)
}

// ChangeRoom moves a plant into another room. Moving a plant across rooms
// may change its tenant; the room is the single source of ownership.
func (s *Service) ChangeRoom(ctx context.Context, id, roomID string) (*Plant, error) {
	p, err := s.plants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", roomID, err)
	}
	if err := s.plants.UpdateRoom(ctx, id, roomID); err != nil {
		return nil, fmt.Errorf("failed to move plant: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypePlantMoved,
		TenantID: room.TenantID,
		Resource: id,
		Metadata: map[string]any{"old_room_id": p.Room.ID, "new_room_id": roomID},
	})

	return s.plants.GetByID(ctx, id)
}

// DeletePlant removes a plant and returns its last state
func (s *Service) DeletePlant(ctx context.Context, id string) (*Plant, error) {
	p, err := s.plants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.plants.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete plant: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypePlantDeleted,
		TenantID: p.Room.TenantID,
		Resource: id,
		Metadata: map[string]any{"nickname": p.Nickname},
	})

	return p, nil
}

// CreateRoom creates a room for a tenant
func (s *Service) CreateRoom(ctx context.Context, tenantID, name string) (*Room, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant id is required")
	}
	if name == "" {
		return nil, fmt.Errorf("room name is required")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate room id: %w", err)
	}

	room := &Room{
		ID:       id.String(),
		Name:     name,
		TenantID: tenantID,
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRoomCreated,
		TenantID: tenantID,
		Resource: room.ID,
		Metadata: map[string]any{"name": name},
	})

	return room, nil
}

// ListRooms lists all rooms of a tenant
func (s *Service) ListRooms(ctx context.Context, tenantID string) ([]*Room, error) {
	return s.rooms.ListByTenant(ctx, tenantID)
}

// DeleteRoom removes an empty room
func (s *Service) DeleteRoom(ctx context.Context, id string) error {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		return err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRoomDeleted,
		TenantID: room.TenantID,
		Resource: id,
		Metadata: map[string]any{"name": room.Name},
	})

	return nil
}

// GetSpecies retrieves one species by ID
func (s *Service) GetSpecies(ctx context.Context, id string) (*Species, error) {
	return s.species.GetByID(ctx, id)
}

// ListSpecies lists all known species
func (s *Service) ListSpecies(ctx context.Context) ([]*Species, error) {
	return s.species.List(ctx)
}
