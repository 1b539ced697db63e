package sensor

import (
	"context"
	"testing"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/plantstein/plantstein/internal/monitor"
	"github.com/plantstein/plantstein/internal/plant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 1 }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 0 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

var _ pahomqtt.Message = (*fakeMessage)(nil)

type mockPlantRepository struct {
	mock.Mock
}

func (m *mockPlantRepository) Create(ctx context.Context, p *plant.Plant) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPlantRepository) GetByID(ctx context.Context, id string) (*plant.Plant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plant.Plant), args.Error(1)
}

func (m *mockPlantRepository) ListByTenant(ctx context.Context, tenantID string) ([]*plant.Plant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*plant.Plant), args.Error(1)
}

func (m *mockPlantRepository) ListByRoom(ctx context.Context, roomID string) ([]*plant.Plant, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*plant.Plant), args.Error(1)
}

func (m *mockPlantRepository) ListByNickname(ctx context.Context, tenantID, nickname string) ([]*plant.Plant, error) {
	args := m.Called(ctx, tenantID, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*plant.Plant), args.Error(1)
}

func (m *mockPlantRepository) UpdateNickname(ctx context.Context, id, nickname string) error {
	return m.Called(ctx, id, nickname).Error(0)
}

func (m *mockPlantRepository) UpdateRoom(ctx context.Context, id, roomID string) error {
	return m.Called(ctx, id, roomID).Error(0)
}

func (m *mockPlantRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockMoistureRepository struct {
	mock.Mock
}

func (m *mockMoistureRepository) Insert(ctx context.Context, sample *plant.MoistureSample) error {
	return m.Called(ctx, sample).Error(0)
}

func (m *mockMoistureRepository) RecentByPlant(ctx context.Context, plantID string, limit int) ([]*plant.MoistureSample, error) {
	args := m.Called(ctx, plantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*plant.MoistureSample), args.Error(1)
}

func roomPlant(id, roomID string) *plant.Plant {
	return &plant.Plant{
		ID:       id,
		Nickname: "Bert",
		Room:     plant.Room{ID: roomID, Name: "Living Room", TenantID: "client-1"},
	}
}

// TestPurpose: Validates the ingest-to-serve roundtrip: a sensor message for
// a room becomes the ambient reading returned for that room's plants.
// Scope: Unit Test
// Expected: AmbientReading returns the published values for a plant in the
// reporting room and ErrReadingUnavailable for a plant elsewhere.
// Test Case ID: SNS-01
func TestSensor_Bridge_IngestServesReading(t *testing.T) {
	plants := new(mockPlantRepository)
	moisture := new(mockMoistureRepository)
	bridge := NewBridge(plants, moisture, 5*time.Minute)

	plants.On("GetByID", mock.Anything, "plant-1").Return(roomPlant("plant-1", "room-1"), nil)
	plants.On("GetByID", mock.Anything, "plant-2").Return(roomPlant("plant-2", "room-2"), nil)

	bridge.HandleMessage(nil, &fakeMessage{
		topic:   "room-conditions/client-1/room-1",
		payload: []byte(`{"brightness":480,"temperature":21.5,"humidity":58}`),
	})

	r, err := bridge.AmbientReading(context.Background(), "plant-1")
	require.NoError(t, err)
	assert.Equal(t, 480.0, r.Brightness)
	assert.Equal(t, 21.5, r.Temperature)
	assert.Equal(t, 58.0, r.Humidity)
	assert.False(t, r.ObservedAt.IsZero())

	_, err = bridge.AmbientReading(context.Background(), "plant-2")
	assert.ErrorIs(t, err, monitor.ErrReadingUnavailable)
}

// TestPurpose: Validates the staleness window: a reading older than maxAge
// no longer satisfies the monitor.
// Scope: Unit Test
// Expected: The same cached reading flips to ErrReadingUnavailable once it
// ages past the configured maximum.
// Test Case ID: SNS-02
func TestSensor_Bridge_StaleReadingUnavailable(t *testing.T) {
	plants := new(mockPlantRepository)
	moisture := new(mockMoistureRepository)
	bridge := NewBridge(plants, moisture, 10*time.Millisecond)

	plants.On("GetByID", mock.Anything, "plant-1").Return(roomPlant("plant-1", "room-1"), nil)

	bridge.HandleMessage(nil, &fakeMessage{
		topic:   "room-conditions/client-1/room-1",
		payload: []byte(`{"brightness":480,"temperature":21.5,"humidity":58}`),
	})

	_, err := bridge.AmbientReading(context.Background(), "plant-1")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = bridge.AmbientReading(context.Background(), "plant-1")
	assert.ErrorIs(t, err, monitor.ErrReadingUnavailable)
}

// TestPurpose: Validates that a probe's moisture value is appended to the
// history of every plant in the reporting room, and only then.
// Scope: Unit Test
// Expected: Two plants in the room get one sample each with the probe
// value; a payload without moisture inserts nothing.
// Test Case ID: SNS-03
func TestSensor_Bridge_MoistureRecordedPerPlant(t *testing.T) {
	plants := new(mockPlantRepository)
	moisture := new(mockMoistureRepository)
	bridge := NewBridge(plants, moisture, 5*time.Minute)

	plants.On("ListByRoom", mock.Anything, "room-1").
		Return([]*plant.Plant{roomPlant("plant-1", "room-1"), roomPlant("plant-2", "room-1")}, nil)
	moisture.On("Insert", mock.Anything, mock.MatchedBy(func(s *plant.MoistureSample) bool {
		return s.Moisture == 42.0 && (s.PlantID == "plant-1" || s.PlantID == "plant-2")
	})).Return(nil).Times(2)

	bridge.HandleMessage(nil, &fakeMessage{
		topic:   "room-conditions/client-1/room-1",
		payload: []byte(`{"brightness":480,"temperature":21.5,"humidity":58,"moisture":42}`),
	})
	moisture.AssertExpectations(t)

	bridge.HandleMessage(nil, &fakeMessage{
		topic:   "room-conditions/client-1/room-1",
		payload: []byte(`{"brightness":480,"temperature":21.5,"humidity":58}`),
	})
	moisture.AssertNumberOfCalls(t, "Insert", 2)
}

// TestPurpose: Validates that malformed publications are dropped without
// touching the cache or the moisture history.
// Scope: Unit Test
// Expected: Bad topics and bad payloads leave the bridge empty-handed.
// Test Case ID: SNS-04
func TestSensor_Bridge_DropsMalformedMessages(t *testing.T) {
	plants := new(mockPlantRepository)
	moisture := new(mockMoistureRepository)
	bridge := NewBridge(plants, moisture, 5*time.Minute)

	plants.On("GetByID", mock.Anything, "plant-1").Return(roomPlant("plant-1", "room-1"), nil)

	bridge.HandleMessage(nil, &fakeMessage{
		topic:   "room-conditions/room-1",
		payload: []byte(`{"brightness":480}`),
	})
	bridge.HandleMessage(nil, &fakeMessage{
		topic:   "room-conditions/client-1/room-1",
		payload: []byte(`not json`),
	})

	_, err := bridge.AmbientReading(context.Background(), "plant-1")
	assert.ErrorIs(t, err, monitor.ErrReadingUnavailable)
	moisture.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSensor_RoomFromTopic(t *testing.T) {
	tests := []struct {
		topic   string
		room    string
		wantErr bool
	}{
		{"room-conditions/client-1/room-1", "room-1", false},
		{"room-conditions/client-1/", "", true},
		{"room-conditions/room-1", "", true},
		{"room-conditions/client-1/room-1/extra", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			room, err := roomFromTopic(tt.topic)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.room, room)
		})
	}
}
