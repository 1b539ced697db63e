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
	"log/slog"
	"sync"
	"time"

	"github.com/plantstein/plantstein/internal/observability/logger"
)

// Scheduler fires the condition scan on a fixed interval. Ticks never
// overlap: if a scan is still running when the next tick is due, that tick
// is skipped and the interval fires again later.
type Scheduler struct {
	scanner  *Scanner
	interval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	ticking sync.Mutex
}

// NewScheduler creates a stopped scheduler
func NewScheduler(scanner *Scanner, interval time.Duration) *Scheduler {
	return &Scheduler{
		scanner:  scanner,
		interval: interval,
	}
}

// Start launches the tick loop. Calling Start on a running scheduler is a
// no-op. The loop stops when Stop is called or the parent context ends.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)
	slog.Info("condition scheduler started", logger.Interval(s.interval))
}

// Stop requests shutdown and waits for an in-flight tick to finish.
// No new tenant evaluation starts after Stop returns.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	slog.Info("condition scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one scan unless the previous one is still in flight
func (s *Scheduler) tick(ctx context.Context) {
	if !s.ticking.TryLock() {
		slog.Warn("previous scan still running, skipping tick")
		return
	}
	defer s.ticking.Unlock()

	start := time.Now()
	s.scanner.ScanAndPublish(ctx)
	slog.Debug("scan tick finished", logger.Duration(time.Since(start).Milliseconds()))
}
