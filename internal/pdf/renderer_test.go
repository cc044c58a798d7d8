package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-ticketing/internal/qrcode"
)

func TestRenderTicket(t *testing.T) {
	qrImage, err := qrcode.Generate("test-token", 256)
	require.NoError(t, err)

	document, err := RenderTicket(&TicketDocument{
		TicketID:  42,
		UserID:    "client_1700000000_123456",
		EventName: "Gala",
		EventDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Seat:      "A1",
		QRImage:   qrImage,
	})
	require.NoError(t, err)
	require.NotEmpty(t, document)

	assert.Equal(t, "%PDF", string(document[:4]))
}
