package monitor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTickingScheduler(interval time.Duration, onTick func()) *Scheduler {
	tenants := new(mockTenantDirectory)
	plants := new(mockPlantDirectory)
	readings := new(mockReadingSource)
	moisture := new(mockMoistureHistory)
	publisher := new(mockPublisher)

	tenants.On("ListTenants", mock.Anything).
		Run(func(mock.Arguments) { onTick() }).
		Return([]string{}, nil)

	return NewScheduler(newTestScanner(tenants, plants, readings, moisture, publisher), interval)
}

// TestPurpose: Validates that a started scheduler fires scans on its
// interval and that Stop halts them.
// Scope: Unit Test
// Expected: At least one scan runs while started; the scan count stays
// frozen after Stop returns.
// Test Case ID: SCH-01
func TestMonitor_Scheduler_TicksUntilStopped(t *testing.T) {
	var ticks atomic.Int64
	fired := make(chan struct{}, 1)
	scheduler := newTickingScheduler(5*time.Millisecond, func() {
		ticks.Add(1)
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	scheduler.Start(context.Background())

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler never ticked")
	}

	scheduler.Stop()
	after := ticks.Load()
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, after, ticks.Load(), "scan ran after Stop returned")
}

// TestPurpose: Validates the idempotent lifecycle edges: double Start keeps
// a single tick loop, and Stop without Start is a no-op.
// Scope: Unit Test
// Expected: No panic, no deadlock, and a stopped scheduler can be started
// again.
// Test Case ID: SCH-02
func TestMonitor_Scheduler_LifecycleIdempotent(t *testing.T) {
	var ticks atomic.Int64
	scheduler := newTickingScheduler(time.Hour, func() { ticks.Add(1) })

	scheduler.Stop() // never started

	scheduler.Start(context.Background())
	scheduler.Start(context.Background()) // no-op on a running scheduler
	scheduler.Stop()
	scheduler.Stop() // already stopped

	// The loop is restartable after a clean Stop
	scheduler.Start(context.Background())
	scheduler.Stop()
}

// TestPurpose: Validates that cancelling the parent context ends the tick
// loop without an explicit Stop.
// Scope: Unit Test
// Expected: No scan fires after the context is cancelled.
// Test Case ID: SCH-03
func TestMonitor_Scheduler_ParentContextCancelStopsLoop(t *testing.T) {
	var ticks atomic.Int64
	fired := make(chan struct{}, 1)
	scheduler := newTickingScheduler(5*time.Millisecond, func() {
		ticks.Add(1)
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	scheduler.Start(ctx)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler never ticked")
	}

	cancel()
	time.Sleep(20 * time.Millisecond)
	after := ticks.Load()
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, after, ticks.Load(), "scan ran after context cancellation")
}
