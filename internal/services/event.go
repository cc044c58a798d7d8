package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"club-ticketing/internal/logger"
	"club-ticketing/internal/models"
	"club-ticketing/internal/storage"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrInvalidEventDate = errors.New("invalid event date, use YYYY-MM-DD")
)

type EventService struct {
	store storage.Store
	log   *logger.Logger
}

func NewEventService(store storage.Store, log *logger.Logger) *EventService {
	return &EventService{
		store: store,
		log:   log,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, req *models.CreateEventRequest) (*models.Event, error) {
	s.log.LogProcess("EVENT", fmt.Sprintf("Creating event %q on %s", req.Name, req.EventDate))

	eventDate, err := time.Parse(models.EventDateFormat, req.EventDate)
	if err != nil {
		s.log.Warn("EVENT", fmt.Sprintf("Rejected event %q, bad date %q", req.Name, req.EventDate))
		return nil, ErrInvalidEventDate
	}

	event := &models.Event{
		Name:      req.Name,
		EventDate: eventDate,
		Location:  req.Location,
		CreatedAt: time.Now(),
	}

	if err := s.store.CreateEvent(ctx, event); err != nil {
		s.log.Error("EVENT", fmt.Sprintf("Failed to create event %q: %v", req.Name, err))
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.log.LogProcess("EVENT", fmt.Sprintf("Event %d created", event.ID))
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		s.log.Error("EVENT", "Failed to list events: "+err.Error())
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		s.log.Error("EVENT", fmt.Sprintf("Failed to get event %d: %v", id, err))
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}
