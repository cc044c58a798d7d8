package storage

import (
	"context"

	"club-ticketing/internal/models"
)

type Store interface {
	// Event operations
	CreateEvent(ctx context.Context, event *models.Event) error
	ListEvents(ctx context.Context) ([]*models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)

	// Ticket operations
	CreateTicket(ctx context.Context, ticket *models.Ticket) error
	GetTicketByQR(ctx context.Context, qrContent string, eventID int64) (*models.Ticket, error)
	MarkTicketScanned(ctx context.Context, qrContent string, eventID int64) (*models.Ticket, error)

	HealthCheck() error
}
