// Package pdf renders the single-page ticket document handed back to the
// client on ticket creation.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// TicketDocument carries everything the rendered page shows.
type TicketDocument struct {
	TicketID  int64
	UserID    string
	EventName string
	EventDate time.Time
	Seat      string
	QRImage   []byte
}

const (
	pageWidth = 612 // Letter, in points
	qrSize    = 200
)

// RenderTicket produces the PDF bytes for a ticket: club header, ticket
// metadata, the QR image centered on the page, and the validation
// instruction line.
func RenderTicket(doc *TicketDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(50, 50, "Sports Club Event Ticket")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(50, 70, fmt.Sprintf("Ticket ID: %d", doc.TicketID))
	pdf.Text(50, 90, fmt.Sprintf("Holder: %s", doc.UserID))
	pdf.Text(50, 110, fmt.Sprintf("Event: %s", doc.EventName))
	pdf.Text(50, 130, fmt.Sprintf("Date: %s", doc.EventDate.Format("02/01/2006")))
	pdf.Text(50, 150, fmt.Sprintf("Seat: %s", doc.Seat))

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(doc.QRImage))
	pdf.ImageOptions("qr", pageWidth/2-qrSize/2, 180, qrSize, qrSize, false, opts, 0, "")

	pdf.Text(50, 420, "Present this QR code at the entrance for validation")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render ticket document: %w", err)
	}

	return buf.Bytes(), nil
}
