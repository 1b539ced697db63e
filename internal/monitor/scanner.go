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

package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/plantstein/plantstein/internal/audit"
	"github.com/plantstein/plantstein/internal/observability/logger"
	"github.com/plantstein/plantstein/internal/plant"
)

// MoistureWindow is the number of newest moisture samples averaged per plant.
const MoistureWindow = 10

// ErrReadingUnavailable is returned by a ReadingSource that has no current
// ambient reading for a plant's room. The scanner treats it as a recoverable
// per-plant condition.
var ErrReadingUnavailable = errors.New("ambient reading unavailable")

// TenantDirectory enumerates the tenant population
type TenantDirectory interface {
	ListTenants(ctx context.Context) ([]string, error)
}

// PlantDirectory lists a tenant's plants with resolved species and room
type PlantDirectory interface {
	ListByTenant(ctx context.Context, tenantID string) ([]*plant.Plant, error)
}

// ReadingSource provides the current ambient reading for a plant's room.
// It is an external collaborator and may be unavailable at any time.
type ReadingSource interface {
	AmbientReading(ctx context.Context, plantID string) (plant.AmbientReading, error)
}

// MoistureHistory provides the newest-first moisture window for a plant
type MoistureHistory interface {
	RecentByPlant(ctx context.Context, plantID string, limit int) ([]*plant.MoistureSample, error)
}

// Publisher delivers one tenant's serialized alert batch to that tenant's
// notification channel.
type Publisher interface {
	Publish(ctx context.Context, tenantID string, payload []byte) error
}

// Scanner runs the per-tenant condition scan. It holds no state across
// scans; every invocation reads fresh data from its collaborators.
type Scanner struct {
	tenants     TenantDirectory
	plants      PlantDirectory
	readings    ReadingSource
	moisture    MoistureHistory
	checker     *Checker
	publisher   Publisher
	auditLogger audit.Logger
}

// NewScanner creates a scanner over the given collaborators
func NewScanner(
	tenants TenantDirectory,
	plants PlantDirectory,
	readings ReadingSource,
	moisture MoistureHistory,
	checker *Checker,
	publisher Publisher,
	auditLogger audit.Logger,
) *Scanner {
	return &Scanner{
		tenants:     tenants,
		plants:      plants,
		readings:    readings,
		moisture:    moisture,
		checker:     checker,
		publisher:   publisher,
		auditLogger: auditLogger,
	}
}

// CheckTenant evaluates every plant owned by a tenant and returns the
// concatenated alerts. A plant whose ambient reading is unavailable is
// omitted; a plant without moisture history skips only its moisture check.
// Neither condition stops the scan of the remaining plants.
func (s *Scanner) CheckTenant(ctx context.Context, tenantID string) ([]Alert, error) {
	plants, err := s.plants.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants for tenant %s: %w", tenantID, err)
	}

	var alerts []Alert
	for _, p := range plants {
		reading, err := s.readings.AmbientReading(ctx, p.ID)
		if err != nil {
			slog.WarnContext(ctx, "ambient reading unavailable, skipping plant",
				logger.TenantID(tenantID),
				logger.PlantID(p.ID),
				logger.Error(err),
			)
			s.auditLogger.Log(ctx, audit.Event{
				Type:     audit.TypeReadingUnavailable,
				TenantID: tenantID,
				Resource: p.ID,
			})
			continue
		}

		state := MoistureUnknown
		samples, err := s.moisture.RecentByPlant(ctx, p.ID, MoistureWindow)
		if err != nil {
			slog.WarnContext(ctx, "failed to load moisture history, skipping moisture check",
				logger.TenantID(tenantID),
				logger.PlantID(p.ID),
				logger.Error(err),
			)
		} else if len(samples) > 0 {
			state = AggregateMoisture(samples, s.checker.Bands())
		}

		alerts = append(alerts, s.checker.Evaluate(p, reading, state)...)
	}

	return alerts, nil
}

// ScanAndPublish runs one full tick: evaluate every tenant and publish each
// non-empty alert batch to the tenant's channel. Failures are isolated per
// tenant; one broken tenant never suppresses alerts for the others.
func (s *Scanner) ScanAndPublish(ctx context.Context) {
	tenantIDs, err := s.tenants.ListTenants(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list tenants, skipping tick", logger.Error(err))
		return
	}

	for _, tenantID := range tenantIDs {
		if err := ctx.Err(); err != nil {
			slog.InfoContext(ctx, "scan aborted", logger.Error(err))
			return
		}
		if err := s.scanTenant(ctx, tenantID); err != nil {
			slog.ErrorContext(ctx, "tenant scan failed",
				logger.TenantID(tenantID),
				logger.Error(err),
			)
		}
	}
}

// scanTenant assembles one tenant's full batch before publishing it.
// A batch is never published partially built.
func (s *Scanner) scanTenant(ctx context.Context, tenantID string) error {
	alerts, err := s.CheckTenant(ctx, tenantID)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		return nil
	}

	payload, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("failed to serialize alert batch: %w", err)
	}

	if err := s.publisher.Publish(ctx, tenantID, payload); err != nil {
		return fmt.Errorf("failed to publish alert batch: %w", err)
	}

	slog.InfoContext(ctx, "alert batch published",
		logger.TenantID(tenantID),
		logger.AlertCount(len(alerts)),
	)
	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeAlertsPublished,
		TenantID: tenantID,
		Metadata: map[string]any{"alert_count": len(alerts)},
	})

	return nil
}
