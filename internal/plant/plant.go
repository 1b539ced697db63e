package plant

import (
	"time"
)

// Species holds the immutable ideal-condition reference data a plant is
// evaluated against. Looked up by identifier; never mutated at runtime.
type Species struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	PerfectLight       float64 `json:"perfect_light"`
	PerfectTemperature float64 `json:"perfect_temperature"`
	PerfectHumidity    float64 `json:"perfect_humidity"`
}

// Room groups plants under one tenant. The tenant set of the system is the
// set of distinct TenantIDs across rooms; rooms are the only place tenancy
// is recorded.
type Room struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TenantID string `json:"tenant_id"`
}

// Plant is an individually owned plant. Species and Room are non-optional
// relations and arrive fully resolved from the repository.
type Plant struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Species   Species   `json:"species"`
	Room      Room      `json:"room"`
	CreatedAt time.Time `json:"created_at"`
}

// AmbientReading is a point-in-time brightness/temperature/humidity
// measurement for the room a plant lives in. Transient; never persisted.
type AmbientReading struct {
	Brightness  float64   `json:"brightness"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	ObservedAt  time.Time `json:"observed_at"`
}

// MoistureSample is one timestamped soil-moisture measurement for a plant.
// The series is append-only; consumers read a fixed-size newest-first window.
type MoistureSample struct {
	PlantID   string    `json:"plant_id"`
	Moisture  float64   `json:"moisture"`
	Timestamp time.Time `json:"timestamp"`
}
