package notifications

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"zombieland/internal/calendar"
)

type EventType string

const (
	EventReservationConfirmed EventType = "RESERVATION_CONFIRMED"
	EventReservationCancelled EventType = "RESERVATION_CANCELLED"
	EventReservationUpdated   EventType = "RESERVATION_UPDATED"
)

// ReservationEvent is published whenever a reservation changes hands or state
type ReservationEvent struct {
	ID   uuid.UUID `json:"id"`
	Type EventType `json:"type"`

	ReservationID uuid.UUID     `json:"reservation_id"`
	BookingRef    string        `json:"booking_ref"`
	DateStart     calendar.Date `json:"date_start"`
	DateEnd       calendar.Date `json:"date_end"`
	NumberTickets int           `json:"number_tickets"`
	TotalPrice    float64       `json:"total_price"`

	RecipientID    uuid.UUID `json:"recipient_id"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name"`

	OccurredAt time.Time `json:"occurred_at"`
}

// NewReservationEvent stamps a fresh event id and time
func NewReservationEvent(eventType EventType) *ReservationEvent {
	return &ReservationEvent{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
	}
}

// PartitionKey keeps every event of one visitor on the same partition
func (e *ReservationEvent) PartitionKey() string {
	return e.RecipientID.String()
}

func (e *ReservationEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ParseReservationEvent(data []byte) (*ReservationEvent, error) {
	var e ReservationEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Publisher hands reservation events to the notification pipeline
type Publisher interface {
	PublishReservation(ctx context.Context, event *ReservationEvent) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher drops every event; used when Kafka is disabled
func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) PublishReservation(context.Context, *ReservationEvent) error { return nil }
func (noopPublisher) Close() error                                                { return nil }
