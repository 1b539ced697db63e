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

// Package sensor ingests ambient readings published by room sensors and
// serves them to the condition monitor. Readings arrive on
// room-conditions/<tenantID>/<roomID>; the bridge keeps only the latest
// reading per room and appends moisture values to each plant's history.
package sensor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/plantstein/plantstein/internal/monitor"
	"github.com/plantstein/plantstein/internal/observability/logger"
	"github.com/plantstein/plantstein/internal/plant"
)

// reading is the wire format room sensors publish. Moisture is optional;
// rooms without a soil probe omit it.
type reading struct {
	Brightness  float64  `json:"brightness"`
	Temperature float64  `json:"temperature"`
	Humidity    float64  `json:"humidity"`
	Moisture    *float64 `json:"moisture,omitempty"`
}

// Bridge caches the latest ambient reading per room and implements
// monitor.ReadingSource. A reading older than maxAge is treated as absent:
// a silent sensor must not keep satisfying threshold checks forever.
type Bridge struct {
	plants   plant.Repository
	moisture plant.MoistureRepository
	maxAge   time.Duration

	mu       sync.RWMutex
	readings map[string]plant.AmbientReading // keyed by room ID
}

// NewBridge creates a bridge with an empty reading cache
func NewBridge(plants plant.Repository, moisture plant.MoistureRepository, maxAge time.Duration) *Bridge {
	return &Bridge{
		plants:   plants,
		moisture: moisture,
		maxAge:   maxAge,
		readings: make(map[string]plant.AmbientReading),
	}
}

// Subscriber is the broker operation the bridge needs to start receiving
type Subscriber interface {
	Subscribe(topic string, qos byte, handler pahomqtt.MessageHandler) error
}

// Start subscribes the bridge to the sensor topic filter
func (b *Bridge) Start(sub Subscriber, topic string, qos byte) error {
	if err := sub.Subscribe(topic, qos, b.HandleMessage); err != nil {
		return fmt.Errorf("failed to start sensor bridge: %w", err)
	}
	slog.Info("sensor bridge subscribed", logger.Topic(topic))
	return nil
}

// HandleMessage ingests one sensor publication. Malformed messages are
// logged and dropped; ingestion must never take down the subscription.
func (b *Bridge) HandleMessage(_ pahomqtt.Client, msg pahomqtt.Message) {
	ctx := context.Background()

	roomID, err := roomFromTopic(msg.Topic())
	if err != nil {
		slog.Warn("dropping sensor message", logger.Topic(msg.Topic()), logger.Error(err))
		return
	}

	var r reading
	if err := json.Unmarshal(msg.Payload(), &r); err != nil {
		slog.Warn("dropping malformed sensor payload", logger.Topic(msg.Topic()), logger.RoomID(roomID), logger.Error(err))
		return
	}

	now := time.Now()
	b.mu.Lock()
	b.readings[roomID] = plant.AmbientReading{
		Brightness:  r.Brightness,
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		ObservedAt:  now,
	}
	b.mu.Unlock()

	if r.Moisture == nil {
		return
	}

	// Soil moisture is per plant, not per room: the probe value is recorded
	// against every plant currently in the room.
	plants, err := b.plants.ListByRoom(ctx, roomID)
	if err != nil {
		slog.Error("failed to list plants for moisture sample", logger.RoomID(roomID), logger.Error(err))
		return
	}
	for _, p := range plants {
		sample := &plant.MoistureSample{
			PlantID:   p.ID,
			Moisture:  *r.Moisture,
			Timestamp: now,
		}
		if err := b.moisture.Insert(ctx, sample); err != nil {
			slog.Error("failed to record moisture sample", logger.PlantID(p.ID), logger.Error(err))
		}
	}
}

// AmbientReading returns the latest fresh reading for the plant's room.
// It returns monitor.ErrReadingUnavailable when the room has never reported
// or its last report is older than maxAge.
func (b *Bridge) AmbientReading(ctx context.Context, plantID string) (plant.AmbientReading, error) {
	p, err := b.plants.GetByID(ctx, plantID)
	if err != nil {
		return plant.AmbientReading{}, err
	}

	b.mu.RLock()
	r, ok := b.readings[p.Room.ID]
	b.mu.RUnlock()

	if !ok {
		return plant.AmbientReading{}, fmt.Errorf("room %s: %w", p.Room.ID, monitor.ErrReadingUnavailable)
	}
	if time.Since(r.ObservedAt) > b.maxAge {
		return plant.AmbientReading{}, fmt.Errorf("room %s: reading stale since %s: %w", p.Room.ID, r.ObservedAt.Format(time.RFC3339), monitor.ErrReadingUnavailable)
	}
	return r, nil
}

// roomFromTopic extracts the room ID from room-conditions/<tenant>/<room>
func roomFromTopic(topic string) (string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[2] == "" {
		return "", fmt.Errorf("unexpected sensor topic %q", topic)
	}
	return parts[2], nil
}
