package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-ticketing/internal/logger"
	"club-ticketing/internal/models"
	"club-ticketing/internal/storage"
)

func newEventService() (*EventService, *storage.InMemoryStore) {
	store := storage.NewInMemoryStore()
	return NewEventService(store, logger.NewLogger()), store
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEventService()

	event, err := svc.CreateEvent(ctx, &models.CreateEventRequest{
		Name:      "Gala",
		EventDate: "2025-12-01",
		Location:  "Main Stadium",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), event.ID)
	assert.Equal(t, "Gala", event.Name)
	assert.Equal(t, "2025-12-01", event.EventDate.Format(models.EventDateFormat))

	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)
}

func TestCreateEventRejectsMalformedDate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEventService()

	_, err := svc.CreateEvent(ctx, &models.CreateEventRequest{
		Name:      "Gala",
		EventDate: "2025-13-40",
	})
	assert.ErrorIs(t, err, ErrInvalidEventDate)

	// nothing was inserted
	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestGetEventNotFound(t *testing.T) {
	svc, _ := newEventService()

	_, err := svc.GetEvent(context.Background(), 42)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventValidationLink(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEventService()

	event, err := svc.CreateEvent(ctx, &models.CreateEventRequest{
		Name:      "Gala",
		EventDate: "2025-12-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "/?event_id=1", event.ToResponse().ValidationLink)
}
