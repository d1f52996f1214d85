package bookings

import (
	"context"
	"sync"
	"time"

	"zombieland/pkg/logger"
)

// JobProcessor runs the reservation background jobs
type JobProcessor struct {
	service  Service
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

func NewJobProcessor(service Service, interval time.Duration) *JobProcessor {
	if interval <= 0 {
		interval = time.Hour
	}
	return &JobProcessor{
		service:  service,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (jp *JobProcessor) Start(ctx context.Context) {
	go jp.startCompletionProcessor(ctx)
	logger.GetDefault().Info("reservation background jobs started", "completion_interval", jp.interval.String())
}

func (jp *JobProcessor) Stop() {
	jp.stopOnce.Do(func() {
		close(jp.done)
		logger.GetDefault().Info("reservation background jobs stopped")
	})
}

func (jp *JobProcessor) startCompletionProcessor(ctx context.Context) {
	ticker := time.NewTicker(jp.interval)
	defer ticker.Stop()

	// Run immediately on startup
	jp.completeFinished(ctx)

	for {
		select {
		case <-ticker.C:
			jp.completeFinished(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (jp *JobProcessor) completeFinished(ctx context.Context) {
	n, err := jp.service.CompleteFinished(ctx)
	if err != nil {
		logger.GetDefault().ErrorContext(ctx, "failed to complete finished reservations", "error", err)
		return
	}
	if n > 0 {
		logger.GetDefault().InfoContext(ctx, "completed finished reservations", "count", n)
	}
}
