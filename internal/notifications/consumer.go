package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"zombieland/internal/shared/config"
	"zombieland/pkg/logger"
)

// ErrPoisonMessage marks a record that can never be delivered
var ErrPoisonMessage = errors.New("undeliverable reservation event")

const (
	defaultMaxRetries   = 3
	defaultRetryBackoff = time.Second
)

// Consumer turns reservation events into emails
type Consumer struct {
	group   sarama.ConsumerGroup
	topics  []string
	handler *ConsumerGroupHandler
	log     *logger.Logger
}

func newConsumerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Consumer.Group.Session.Timeout = 30 * time.Second
	cfg.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	cfg.Consumer.Retry.Backoff = 100 * time.Millisecond
	cfg.Consumer.MaxProcessingTime = 5 * time.Minute
	cfg.Consumer.Return.Errors = true
	cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	cfg.Consumer.Offsets.AutoCommit.Enable = true
	cfg.Consumer.Offsets.AutoCommit.Interval = time.Second
	return cfg
}

// NewConsumer joins cfg.ConsumerGroup on cfg.Topic
func NewConsumer(cfg config.KafkaConfig, emailService EmailService) (*Consumer, error) {
	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, newConsumerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{
		group:   group,
		topics:  []string{cfg.Topic},
		handler: NewConsumerGroupHandler(emailService, defaultMaxRetries, defaultRetryBackoff),
		log:     logger.GetDefault().WithComponent("notifications"),
	}, nil
}

// Run consumes until ctx is cancelled
func (c *Consumer) Run(ctx context.Context) {
	go func() {
		for err := range c.group.Errors() {
			c.log.WarnContext(ctx, "consumer group error", "error", err)
		}
	}()

	c.log.InfoContext(ctx, "notification consumer started", "topics", c.topics)
	for {
		if err := c.group.Consume(ctx, c.topics, c.handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			c.log.ErrorWithContext(ctx, "consume failed", err, nil)
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
			}
		}
		if ctx.Err() != nil {
			c.log.InfoContext(ctx, "notification consumer stopped")
			return
		}
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

// ConsumerGroupHandler renders and sends one email per record
type ConsumerGroupHandler struct {
	emailService EmailService
	maxRetries   int
	backoff      time.Duration
}

func NewConsumerGroupHandler(emailService EmailService, maxRetries int, backoff time.Duration) *ConsumerGroupHandler {
	return &ConsumerGroupHandler{
		emailService: emailService,
		maxRetries:   maxRetries,
		backoff:      backoff,
	}
}

func (h *ConsumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *ConsumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *ConsumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := session.Context()
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			err := h.ProcessMessage(ctx, message)
			switch {
			case err == nil:
				session.MarkMessage(message, "")
			case errors.Is(err, ErrPoisonMessage):
				logger.GetDefault().ErrorWithContext(ctx, "dropping reservation event", err, map[string]interface{}{
					"partition": message.Partition,
					"offset":    message.Offset,
				})
				session.MarkMessage(message, "")
			default:
				logger.GetDefault().ErrorWithContext(ctx, "reservation email failed", err, map[string]interface{}{
					"event_id": headerValue(message.Headers, "event_id"),
				})
			}

		case <-ctx.Done():
			return nil
		}
	}
}

// ProcessMessage decodes a record and delivers its email
func (h *ConsumerGroupHandler) ProcessMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	event, err := ParseReservationEvent(message.Value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPoisonMessage, err)
	}

	email, err := RenderReservationEmail(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPoisonMessage, err)
	}

	if err := h.executeWithRetry(ctx, email); err != nil {
		return err
	}

	logger.GetDefault().InfoContext(ctx, "reservation email sent",
		"event_id", event.ID.String(),
		"type", string(event.Type),
		"booking_ref", event.BookingRef,
	)
	return nil
}

func (h *ConsumerGroupHandler) executeWithRetry(ctx context.Context, email *Email) error {
	var err error
	for attempt := 0; attempt <= h.maxRetries; attempt++ {
		if err = h.emailService.Send(ctx, email); err == nil {
			return nil
		}
		if attempt == h.maxRetries {
			break
		}

		delay := h.backoff * time.Duration(1<<attempt)
		logger.GetDefault().WarnContext(ctx, "retrying email", "attempt", attempt+1, "delay", delay, "error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("send after %d attempts: %w", h.maxRetries+1, err)
}
