package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-ticketing/internal/models"
)

func TestInMemoryStoreEvents(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	first := &models.Event{
		Name:      "Gala",
		EventDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.CreateEvent(ctx, first))
	assert.Equal(t, int64(1), first.ID)

	second := &models.Event{
		Name:      "Derby",
		EventDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.CreateEvent(ctx, second))
	assert.Equal(t, int64(2), second.ID)

	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	// event_date descending
	assert.Equal(t, "Derby", events[0].Name)
	assert.Equal(t, "Gala", events[1].Name)

	got, err := store.GetEvent(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gala", got.Name)

	_, err = store.GetEvent(ctx, 99)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestInMemoryStoreTickets(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	event := &models.Event{Name: "Gala", EventDate: time.Now(), CreatedAt: time.Now()}
	require.NoError(t, store.CreateEvent(ctx, event))

	ticket := &models.Ticket{
		EventID:   event.ID,
		UserID:    "client_1700000000_000001",
		Seat:      "A1",
		QRContent: "token-1",
	}
	require.NoError(t, store.CreateTicket(ctx, ticket))
	assert.Equal(t, int64(1), ticket.ID)

	got, err := store.GetTicketByQR(ctx, "token-1", event.ID)
	require.NoError(t, err)
	assert.False(t, got.Scaned)
	assert.Nil(t, got.ScanedAt)

	// lookups are scoped by event
	_, err = store.GetTicketByQR(ctx, "token-1", event.ID+1)
	assert.ErrorIs(t, err, ErrTicketNotFound)

	scanned, err := store.MarkTicketScanned(ctx, "token-1", event.ID)
	require.NoError(t, err)
	assert.True(t, scanned.Scaned)
	require.NotNil(t, scanned.ScanedAt)

	_, err = store.MarkTicketScanned(ctx, "missing-token", event.ID)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestInMemoryStoreRejectsDuplicateQRPerEvent(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	gala := &models.Event{Name: "Gala", EventDate: time.Now(), CreatedAt: time.Now()}
	require.NoError(t, store.CreateEvent(ctx, gala))
	derby := &models.Event{Name: "Derby", EventDate: time.Now(), CreatedAt: time.Now()}
	require.NoError(t, store.CreateEvent(ctx, derby))

	ticket := &models.Ticket{EventID: gala.ID, UserID: "client_1700000000_000001", Seat: "A1", QRContent: "token-1"}
	require.NoError(t, store.CreateTicket(ctx, ticket))

	dup := &models.Ticket{EventID: gala.ID, UserID: "client_1700000000_000002", Seat: "A2", QRContent: "token-1"}
	err := store.CreateTicket(ctx, dup)
	assert.Error(t, err)

	// the same token is fine under a different event
	other := &models.Ticket{EventID: derby.ID, UserID: "client_1700000000_000003", Seat: "B1", QRContent: "token-1"}
	assert.NoError(t, store.CreateTicket(ctx, other))
}
