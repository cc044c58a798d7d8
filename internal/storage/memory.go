package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"club-ticketing/internal/models"
)

type InMemoryStore struct {
	events    map[int64]*models.Event
	tickets   map[int64]*models.Ticket
	eventSeq  int64
	ticketSeq int64
	mutex     sync.RWMutex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		events:  make(map[int64]*models.Event),
		tickets: make(map[int64]*models.Ticket),
	}
}

func (s *InMemoryStore) CreateEvent(ctx context.Context, event *models.Event) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.eventSeq++
	event.ID = s.eventSeq
	s.events[event.ID] = event
	return nil
}

func (s *InMemoryStore) ListEvents(ctx context.Context) ([]*models.Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events := make([]*models.Event, 0, len(s.events))
	for _, event := range s.events {
		events = append(events, event)
	}

	// event_date descending, then created_at descending
	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			if laterThan(events[j], events[i]) {
				events[i], events[j] = events[j], events[i]
			}
		}
	}

	return events, nil
}

func laterThan(a, b *models.Event) bool {
	if !a.EventDate.Equal(b.EventDate) {
		return a.EventDate.After(b.EventDate)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (s *InMemoryStore) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	event, exists := s.events[id]
	if !exists {
		return nil, ErrEventNotFound
	}

	return event, nil
}

func (s *InMemoryStore) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Same uniqueness rule as the tickets table: one QR token per event.
	for _, existing := range s.tickets {
		if existing.EventID == ticket.EventID && existing.QRContent == ticket.QRContent {
			return fmt.Errorf("duplicate qr_content for event %d", ticket.EventID)
		}
	}

	s.ticketSeq++
	ticket.ID = s.ticketSeq
	s.tickets[ticket.ID] = ticket
	return nil
}

func (s *InMemoryStore) GetTicketByQR(ctx context.Context, qrContent string, eventID int64) (*models.Ticket, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, ticket := range s.tickets {
		if ticket.QRContent == qrContent && ticket.EventID == eventID {
			return ticket, nil
		}
	}

	return nil, ErrTicketNotFound
}

func (s *InMemoryStore) MarkTicketScanned(ctx context.Context, qrContent string, eventID int64) (*models.Ticket, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, ticket := range s.tickets {
		if ticket.QRContent == qrContent && ticket.EventID == eventID {
			now := time.Now()
			ticket.Scaned = true
			ticket.ScanedAt = &now
			return ticket, nil
		}
	}

	return nil, ErrTicketNotFound
}

// TicketsForEvent returns every ticket bound to an event, in insertion order.
// It is not part of the Store interface; tests use it to inspect persisted
// rows.
func (s *InMemoryStore) TicketsForEvent(eventID int64) []*models.Ticket {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var tickets []*models.Ticket
	for id := int64(1); id <= s.ticketSeq; id++ {
		if ticket, ok := s.tickets[id]; ok && ticket.EventID == eventID {
			tickets = append(tickets, ticket)
		}
	}
	return tickets
}

func (s *InMemoryStore) HealthCheck() error {
	return nil
}
