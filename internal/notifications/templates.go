package notifications

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Email is a rendered message ready for delivery
type Email struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

var subjects = map[EventType]string{
	EventReservationConfirmed: "Votre réservation ZombieLand %s est confirmée",
	EventReservationCancelled: "Votre réservation ZombieLand %s a été annulée",
	EventReservationUpdated:   "Votre réservation ZombieLand %s a été modifiée",
}

var headlines = map[EventType]string{
	EventReservationConfirmed: "Votre séjour au parc est réservé. Présentez votre billet à l'entrée.",
	EventReservationCancelled: "Votre réservation a bien été annulée.",
	EventReservationUpdated:   "Votre réservation a été mise à jour par notre équipe.",
}

const htmlLayout = `<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; color: #222;">
  <h1 style="color: #8b0000;">ZombieLand</h1>
  <p>Bonjour {{.Name}},</p>
  <p>{{.Headline}}</p>
  <table cellpadding="6">
    <tr><td>Référence</td><td><strong>{{.Ref}}</strong></td></tr>
    <tr><td>Dates</td><td>{{.Dates}}</td></tr>
    <tr><td>Billets</td><td>{{.Tickets}}</td></tr>
    <tr><td>Total</td><td>{{.Total}}</td></tr>
  </table>
  <p>À très vite, si vous survivez.</p>
</body>
</html>`

const textLayout = `Bonjour {{.Name}},

{{.Headline}}

Référence : {{.Ref}}
Dates     : {{.Dates}}
Billets   : {{.Tickets}}
Total     : {{.Total}}

À très vite, si vous survivez.
`

var (
	htmlTemplate = htmltemplate.Must(htmltemplate.New("reservation.html").Parse(htmlLayout))
	textTemplate = texttemplate.Must(texttemplate.New("reservation.txt").Parse(textLayout))
)

type emailData struct {
	Name     string
	Headline string
	Ref      string
	Dates    string
	Tickets  int
	Total    string
}

// FormatEuros renders an amount the way French visitors read it
func FormatEuros(amount float64) string {
	return message.NewPrinter(language.French).Sprintf("%.2f €", amount)
}

func formatDates(event *ReservationEvent) string {
	start := event.DateStart.Time().Format("02/01/2006")
	if event.DateEnd.IsZero() || event.DateEnd.Equal(event.DateStart) {
		return "le " + start
	}
	return fmt.Sprintf("du %s au %s", start, event.DateEnd.Time().Format("02/01/2006"))
}

// RenderReservationEmail builds the message sent for event
func RenderReservationEmail(event *ReservationEvent) (*Email, error) {
	subject, ok := subjects[event.Type]
	if !ok {
		return nil, fmt.Errorf("no template for event type %q", event.Type)
	}
	if event.RecipientEmail == "" {
		return nil, fmt.Errorf("event %s has no recipient email", event.ID)
	}

	data := emailData{
		Name:     event.RecipientName,
		Headline: headlines[event.Type],
		Ref:      event.BookingRef,
		Dates:    formatDates(event),
		Tickets:  event.NumberTickets,
		Total:    FormatEuros(event.TotalPrice),
	}

	var htmlBuf, textBuf bytes.Buffer
	if err := htmlTemplate.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	if err := textTemplate.Execute(&textBuf, data); err != nil {
		return nil, fmt.Errorf("render text: %w", err)
	}

	return &Email{
		To:       event.RecipientEmail,
		Subject:  fmt.Sprintf(subject, event.BookingRef),
		HTMLBody: htmlBuf.String(),
		TextBody: textBuf.String(),
	}, nil
}
