package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"zombieland/internal/shared/config"
)

func TestJobProcessorCompletesOnStartup(t *testing.T) {
	past := confirmed(uuid.New(), "2024-10-01", "2024-10-03")
	f := newFixture(t, config.BookingConfig{}, past)

	jp := NewJobProcessor(f.svc, time.Hour)
	jp.completeFinished(context.Background())

	if f.repo.reservations[past.ID].Status != StatusCompleted {
		t.Fatalf("status = %s, want COMPLETED", f.repo.reservations[past.ID].Status)
	}
}

func TestJobProcessorStopIsIdempotent(t *testing.T) {
	jp := NewJobProcessor(newFixture(t, config.BookingConfig{}).svc, 0)
	if jp.interval != time.Hour {
		t.Fatalf("interval = %v, want default of one hour", jp.interval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	jp.Start(ctx)
	jp.Stop()
	jp.Stop()
}
