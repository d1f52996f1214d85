package notifications

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"

	"zombieland/internal/calendar"
)

func confirmedEvent() *ReservationEvent {
	e := NewReservationEvent(EventReservationConfirmed)
	e.ReservationID = uuid.New()
	e.BookingRef = "ZL-0A1B2C3D"
	e.DateStart = calendar.MustParseDate("2024-11-09")
	e.DateEnd = calendar.MustParseDate("2024-11-12")
	e.NumberTickets = 2
	e.TotalPrice = 140
	e.RecipientID = uuid.New()
	e.RecipientEmail = "alice@example.com"
	e.RecipientName = "Alice"
	return e
}

func TestReservationEventJSON(t *testing.T) {
	e := confirmedEvent()
	data, err := e.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"date_start":"2024-11-09"`) {
		t.Errorf("dates should travel as plain days: %s", data)
	}

	got, err := ParseReservationEvent(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != e.ID || !got.DateEnd.Equal(e.DateEnd) || got.TotalPrice != 140 {
		t.Errorf("got %+v", got)
	}
	if got.PartitionKey() != e.RecipientID.String() {
		t.Errorf("partition key = %s", got.PartitionKey())
	}
}

func TestRenderReservationEmail(t *testing.T) {
	email, err := RenderReservationEmail(confirmedEvent())
	if err != nil {
		t.Fatal(err)
	}
	if email.To != "alice@example.com" {
		t.Errorf("to = %s", email.To)
	}
	if !strings.Contains(email.Subject, "ZL-0A1B2C3D") || !strings.Contains(email.Subject, "confirmée") {
		t.Errorf("subject = %s", email.Subject)
	}
	for _, want := range []string{"Alice", "du 09/11/2024 au 12/11/2024", "140,00"} {
		if !strings.Contains(email.TextBody, want) {
			t.Errorf("text body missing %q:\n%s", want, email.TextBody)
		}
	}
	if !strings.Contains(email.HTMLBody, "<strong>ZL-0A1B2C3D</strong>") {
		t.Errorf("html body missing ref")
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	e := confirmedEvent()
	e.RecipientName = "<script>x</script>"
	email, err := RenderReservationEmail(e)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(email.HTMLBody, "<script>") {
		t.Error("recipient name must be escaped")
	}
}

func TestRenderSingleDay(t *testing.T) {
	e := confirmedEvent()
	e.Type = EventReservationCancelled
	e.DateEnd = e.DateStart
	email, err := RenderReservationEmail(e)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(email.TextBody, "le 09/11/2024") {
		t.Errorf("text body = %s", email.TextBody)
	}
}

func TestRenderRejectsUnknownType(t *testing.T) {
	e := confirmedEvent()
	e.Type = "SOMETHING_ELSE"
	if _, err := RenderReservationEmail(e); err == nil {
		t.Error("expected error")
	}
}

type flakySender struct {
	failures int32
	calls    atomic.Int32
}

func (f *flakySender) Send(context.Context, *Email) error {
	if f.calls.Add(1) <= f.failures {
		return errors.New("smtp down")
	}
	return nil
}

func consumerMessage(t *testing.T, e *ReservationEvent) *sarama.ConsumerMessage {
	t.Helper()
	data, err := e.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	return &sarama.ConsumerMessage{Topic: "zombieland.reservations", Value: data}
}

func TestProcessMessageSendsEmail(t *testing.T) {
	sender := NewMockEmailService()
	h := NewConsumerGroupHandler(sender, 2, time.Millisecond)

	if err := h.ProcessMessage(context.Background(), consumerMessage(t, confirmedEvent())); err != nil {
		t.Fatal(err)
	}
	sent := sender.Sent()
	if len(sent) != 1 || sent[0].To != "alice@example.com" {
		t.Errorf("sent = %+v", sent)
	}
}

func TestProcessMessageRetries(t *testing.T) {
	sender := &flakySender{failures: 2}
	h := NewConsumerGroupHandler(sender, 2, time.Millisecond)

	if err := h.ProcessMessage(context.Background(), consumerMessage(t, confirmedEvent())); err != nil {
		t.Fatal(err)
	}
	if got := sender.calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestProcessMessageGivesUp(t *testing.T) {
	sender := &flakySender{failures: 10}
	h := NewConsumerGroupHandler(sender, 1, time.Millisecond)

	err := h.ProcessMessage(context.Background(), consumerMessage(t, confirmedEvent()))
	if err == nil || errors.Is(err, ErrPoisonMessage) {
		t.Fatalf("want a delivery error, got %v", err)
	}
	if got := sender.calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestProcessMessagePoison(t *testing.T) {
	h := NewConsumerGroupHandler(NewMockEmailService(), 0, time.Millisecond)

	err := h.ProcessMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte("not json")})
	if !errors.Is(err, ErrPoisonMessage) {
		t.Errorf("err = %v", err)
	}

	e := confirmedEvent()
	e.RecipientEmail = ""
	if err := h.ProcessMessage(context.Background(), consumerMessage(t, e)); !errors.Is(err, ErrPoisonMessage) {
		t.Errorf("missing recipient: err = %v", err)
	}
}

func TestKafkaPublisher(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	e := confirmedEvent()
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		got, err := ParseReservationEvent(val)
		if err != nil {
			return err
		}
		if got.ReservationID != e.ReservationID {
			return errors.New("wrong reservation id")
		}
		return nil
	})

	p := NewKafkaPublisherWithProducer(producer, "zombieland.reservations")
	if err := p.PublishReservation(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestKafkaPublisherError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewKafkaPublisherWithProducer(producer, "zombieland.reservations")
	if err := p.PublishReservation(context.Background(), confirmedEvent()); !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Errorf("err = %v", err)
	}
	_ = p.Close()
}

func TestEventHeaders(t *testing.T) {
	e := confirmedEvent()
	var headers []*sarama.RecordHeader
	for _, h := range eventHeaders(e) {
		headers = append(headers, &h)
	}
	if got := headerValue(headers, "type"); got != string(EventReservationConfirmed) {
		t.Errorf("type header = %q", got)
	}
	if got := headerValue(headers, "missing"); got != "" {
		t.Errorf("missing header = %q", got)
	}
}
