package plant

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/plantstein/plantstein/internal/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPlantRepository struct {
	mock.Mock
}

func (m *mockPlantRepository) Create(ctx context.Context, p *Plant) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPlantRepository) GetByID(ctx context.Context, id string) (*Plant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Plant), args.Error(1)
}

func (m *mockPlantRepository) ListByTenant(ctx context.Context, tenantID string) ([]*Plant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Plant), args.Error(1)
}

func (m *mockPlantRepository) ListByRoom(ctx context.Context, roomID string) ([]*Plant, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Plant), args.Error(1)
}

func (m *mockPlantRepository) ListByNickname(ctx context.Context, tenantID, nickname string) ([]*Plant, error) {
	args := m.Called(ctx, tenantID, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Plant), args.Error(1)
}

func (m *mockPlantRepository) UpdateNickname(ctx context.Context, id, nickname string) error {
	args := m.Called(ctx, id, nickname)
	return args.Error(0)
}

func (m *mockPlantRepository) UpdateRoom(ctx context.Context, id, roomID string) error {
	args := m.Called(ctx, id, roomID)
	return args.Error(0)
}

func (m *mockPlantRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockSpeciesRepository struct {
	mock.Mock
}

func (m *mockSpeciesRepository) GetByID(ctx context.Context, id string) (*Species, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Species), args.Error(1)
}

func (m *mockSpeciesRepository) List(ctx context.Context) ([]*Species, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Species), args.Error(1)
}

type mockRoomRepository struct {
	mock.Mock
}

func (m *mockRoomRepository) Create(ctx context.Context, r *Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockRoomRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Room), args.Error(1)
}

func (m *mockRoomRepository) ListByTenant(ctx context.Context, tenantID string) ([]*Room, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Room), args.Error(1)
}

func (m *mockRoomRepository) ListTenants(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockRoomRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService() (*Service, *mockPlantRepository, *mockSpeciesRepository, *mockRoomRepository) {
	plants := new(mockPlantRepository)
	species := new(mockSpeciesRepository)
	rooms := new(mockRoomRepository)
	svc := NewService(plants, species, rooms, audit.NewSlogLogger())
	return svc, plants, species, rooms
}

var (
	testSpecies = &Species{ID: "monstera-deliciosa", Name: "Monstera Deliciosa", PerfectLight: 500, PerfectTemperature: 22, PerfectHumidity: 60}
	testRoom    = &Room{ID: "room-1", Name: "Living Room", TenantID: "client-1"}
)

// TestPurpose: Validates plant creation resolves the species and room,
// assigns a UUIDv7, and persists the plant.
// Scope: Unit Test
// Expected: The returned plant carries the resolved species, the room's
// tenant, and a version-7 UUID.
// Test Case ID: PLT-01
func TestPlant_Service_AddPlant(t *testing.T) {
	svc, plants, species, rooms := newTestService()

	species.On("GetByID", mock.Anything, "monstera-deliciosa").Return(testSpecies, nil)
	rooms.On("GetByID", mock.Anything, "room-1").Return(testRoom, nil)
	plants.On("Create", mock.Anything, mock.AnythingOfType("*plant.Plant")).Return(nil)

	p, err := svc.AddPlant(context.Background(), "Bert", "monstera-deliciosa", "room-1")

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Bert", p.Nickname)
	assert.Equal(t, *testSpecies, p.Species)
	assert.Equal(t, "client-1", p.Room.TenantID)
	assert.False(t, p.CreatedAt.IsZero())

	id, err := uuid.Parse(p.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	plants.AssertExpectations(t)
}

// TestPurpose: Validates creation is rejected before any write when inputs
// are invalid or referenced resources do not exist.
// Scope: Unit Test
// Expected: Empty nickname, unknown species, and unknown room each fail
// with the matching error; the repository never sees a Create.
// Test Case ID: PLT-02
func TestPlant_Service_AddPlantValidation(t *testing.T) {
	t.Run("empty nickname", func(t *testing.T) {
		svc, plants, _, _ := newTestService()

		_, err := svc.AddPlant(context.Background(), "", "monstera-deliciosa", "room-1")

		assert.Error(t, err)
		plants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown species", func(t *testing.T) {
		svc, plants, species, _ := newTestService()
		species.On("GetByID", mock.Anything, "alocasia").Return(nil, ErrSpeciesNotFound)

		_, err := svc.AddPlant(context.Background(), "Bert", "alocasia", "room-1")

		assert.ErrorIs(t, err, ErrSpeciesNotFound)
		plants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, plants, species, rooms := newTestService()
		species.On("GetByID", mock.Anything, "monstera-deliciosa").Return(testSpecies, nil)
		rooms.On("GetByID", mock.Anything, "room-9").Return(nil, ErrRoomNotFound)

		_, err := svc.AddPlant(context.Background(), "Bert", "monstera-deliciosa", "room-9")

		assert.ErrorIs(t, err, ErrRoomNotFound)
		plants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

// TestPurpose: Validates renaming updates the nickname and returns the
// refreshed plant.
// Scope: Unit Test
// Expected: UpdateNickname is called with the new name; an empty name is
// rejected without touching storage.
// Test Case ID: PLT-03
func TestPlant_Service_RenamePlant(t *testing.T) {
	svc, plants, _, _ := newTestService()

	stored := &Plant{ID: "plant-1", Nickname: "Bert", Species: *testSpecies, Room: *testRoom}
	renamed := &Plant{ID: "plant-1", Nickname: "Ernie", Species: *testSpecies, Room: *testRoom}

	plants.On("GetByID", mock.Anything, "plant-1").Return(stored, nil).Once()
	plants.On("UpdateNickname", mock.Anything, "plant-1", "Ernie").Return(nil)
	plants.On("GetByID", mock.Anything, "plant-1").Return(renamed, nil).Once()

	p, err := svc.RenamePlant(context.Background(), "plant-1", "Ernie")

	require.NoError(t, err)
	assert.Equal(t, "Ernie", p.Nickname)

	_, err = svc.RenamePlant(context.Background(), "plant-1", "")
	assert.Error(t, err)
	plants.AssertExpectations(t)
}

// TestPurpose: Validates moving a plant verifies the target room first.
// Scope: Unit Test
// Expected: An unknown target room fails with ErrRoomNotFound and the
// plant stays put; a valid move calls UpdateRoom.
// Test Case ID: PLT-04
func TestPlant_Service_ChangeRoom(t *testing.T) {
	svc, plants, _, rooms := newTestService()

	stored := &Plant{ID: "plant-1", Nickname: "Bert", Species: *testSpecies, Room: *testRoom}
	newRoom := &Room{ID: "room-2", Name: "Kitchen", TenantID: "client-1"}
	moved := &Plant{ID: "plant-1", Nickname: "Bert", Species: *testSpecies, Room: *newRoom}

	plants.On("GetByID", mock.Anything, "plant-1").Return(stored, nil).Times(2)
	rooms.On("GetByID", mock.Anything, "room-9").Return(nil, ErrRoomNotFound)

	_, err := svc.ChangeRoom(context.Background(), "plant-1", "room-9")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	plants.AssertNotCalled(t, "UpdateRoom", mock.Anything, mock.Anything, mock.Anything)

	rooms.On("GetByID", mock.Anything, "room-2").Return(newRoom, nil)
	plants.On("UpdateRoom", mock.Anything, "plant-1", "room-2").Return(nil)
	plants.On("GetByID", mock.Anything, "plant-1").Return(moved, nil)

	p, err := svc.ChangeRoom(context.Background(), "plant-1", "room-2")
	require.NoError(t, err)
	assert.Equal(t, "room-2", p.Room.ID)
}

// TestPurpose: Validates deletion returns the plant's last state so the
// caller can echo what was removed.
// Scope: Unit Test
// Expected: Delete of a known plant returns it; an unknown plant fails
// with ErrPlantNotFound before Delete is attempted.
// Test Case ID: PLT-05
func TestPlant_Service_DeletePlant(t *testing.T) {
	svc, plants, _, _ := newTestService()

	stored := &Plant{ID: "plant-1", Nickname: "Bert", Species: *testSpecies, Room: *testRoom}
	plants.On("GetByID", mock.Anything, "plant-1").Return(stored, nil)
	plants.On("Delete", mock.Anything, "plant-1").Return(nil)
	plants.On("GetByID", mock.Anything, "plant-9").Return(nil, ErrPlantNotFound)

	p, err := svc.DeletePlant(context.Background(), "plant-1")
	require.NoError(t, err)
	assert.Equal(t, "Bert", p.Nickname)

	_, err = svc.DeletePlant(context.Background(), "plant-9")
	assert.ErrorIs(t, err, ErrPlantNotFound)
	plants.AssertNotCalled(t, "Delete", mock.Anything, "plant-9")
}

// TestPurpose: Validates room creation assigns a UUIDv7 and requires both
// a tenant and a name.
// Scope: Unit Test
// Expected: A valid room is persisted with a version-7 UUID; missing
// tenant or name is rejected without a write.
// Test Case ID: PLT-06
func TestPlant_Service_CreateRoom(t *testing.T) {
	svc, _, _, rooms := newTestService()

	rooms.On("Create", mock.Anything, mock.AnythingOfType("*plant.Room")).Return(nil)

	room, err := svc.CreateRoom(context.Background(), "client-1", "Bedroom")
	require.NoError(t, err)
	assert.Equal(t, "Bedroom", room.Name)
	assert.Equal(t, "client-1", room.TenantID)

	id, err := uuid.Parse(room.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	_, err = svc.CreateRoom(context.Background(), "", "Bedroom")
	assert.Error(t, err)
	_, err = svc.CreateRoom(context.Background(), "client-1", "")
	assert.Error(t, err)
	rooms.AssertNumberOfCalls(t, "Create", 1)
}

// TestPurpose: Validates room deletion propagates the non-empty guard.
// Scope: Unit Test
// Expected: ErrRoomNotEmpty surfaces unchanged so the transport layer can
// map it to a conflict.
// Test Case ID: PLT-07
func TestPlant_Service_DeleteRoomNotEmpty(t *testing.T) {
	svc, _, _, rooms := newTestService()

	rooms.On("GetByID", mock.Anything, "room-1").Return(testRoom, nil)
	rooms.On("Delete", mock.Anything, "room-1").Return(ErrRoomNotEmpty)

	err := svc.DeleteRoom(context.Background(), "room-1")
	assert.ErrorIs(t, err, ErrRoomNotEmpty)
}
