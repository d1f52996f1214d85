package bookings

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

// RenderTicket lays out a one-page A4 PDF ticket for the reservation
func RenderTicket(r *Reservation) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("ZombieLand - "+r.BookingRef, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "ZOMBIELAND")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, tr("Billet de réservation"))
	pdf.Ln(12)

	holder := "-"
	if r.User != nil {
		holder = r.User.FullName()
	}
	lines := []string{
		"Référence   : " + r.BookingRef,
		"Visiteur    : " + holder,
		"Du          : " + r.DateStart.String(),
		"Au          : " + r.DateEnd.String(),
		fmt.Sprintf("Billets     : %d", r.NumberTickets),
		fmt.Sprintf("Total       : %.2f EUR", r.TotalPrice),
		"Statut      : " + r.Status.String(),
	}
	if r.Period != nil {
		lines = append(lines, "Période     : "+r.Period.Name)
	}

	pdf.SetFont("Courier", "", 12)
	for _, s := range lines {
		pdf.Cell(0, 7, tr(s))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, tr("Présentez ce billet à l'entrée du parc. Il est valable pour chaque jour de la réservation."), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket: %w", err)
	}
	return buf.Bytes(), nil
}
