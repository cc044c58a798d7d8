package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"club-ticketing/internal/kafka"
	"club-ticketing/internal/logger"
	"club-ticketing/internal/models"
	"club-ticketing/internal/pdf"
	"club-ticketing/internal/qrcode"
	"club-ticketing/internal/storage"
	"club-ticketing/internal/utils"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrRenderFailed   = errors.New("ticket document rendering failed")
)

const qrImageSize = 256

type TicketService struct {
	store    storage.Store
	producer *kafka.Producer
	log      *logger.Logger
}

func NewTicketService(store storage.Store, producer *kafka.Producer, log *logger.Logger) *TicketService {
	return &TicketService{
		store:    store,
		producer: producer,
		log:      log,
	}
}

// IssueTicket creates a ticket bound to an existing event and renders its PDF
// document. The event is read once up front and reused for both the existence
// check and the rendered fields. If rendering fails the ticket row stays
// committed and the caller gets ErrRenderFailed.
func (s *TicketService) IssueTicket(ctx context.Context, req *models.CreateTicketRequest) (*models.Ticket, []byte, error) {
	s.log.LogTicket("ISSUE", "new", fmt.Sprintf("Issuing ticket for event %d, seat %s", req.EventID, req.Seat))

	event, err := s.store.GetEvent(ctx, int64(req.EventID))
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			s.log.LogTicket("REJECTED", "new", fmt.Sprintf("Event %d does not exist", req.EventID))
			return nil, nil, ErrEventNotFound
		}
		s.log.Error("TICKET", fmt.Sprintf("Failed to look up event %d: %v", req.EventID, err))
		return nil, nil, fmt.Errorf("failed to look up event: %w", err)
	}

	userID := req.UserID
	if userID == "" {
		userID = utils.GenerateClientID()
		s.log.LogTicket("ISSUE", "new", "No user_id supplied, generated "+userID)
	}

	ticket := &models.Ticket{
		EventID:   event.ID,
		UserID:    userID,
		Seat:      req.Seat,
		QRContent: utils.GenerateQRToken(),
	}

	if err := s.store.CreateTicket(ctx, ticket); err != nil {
		s.log.Error("TICKET", fmt.Sprintf("Failed to save ticket for event %d: %v", event.ID, err))
		return nil, nil, fmt.Errorf("failed to save ticket: %w", err)
	}

	qrImage, err := qrcode.Generate(ticket.QRContent, qrImageSize)
	if err != nil {
		s.log.Error("TICKET", fmt.Sprintf("QR generation failed for ticket %d, row stays committed: %v", ticket.ID, err))
		return nil, nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	document, err := pdf.RenderTicket(&pdf.TicketDocument{
		TicketID:  ticket.ID,
		UserID:    ticket.UserID,
		EventName: event.Name,
		EventDate: event.EventDate,
		Seat:      ticket.Seat,
		QRImage:   qrImage,
	})
	if err != nil {
		s.log.Error("TICKET", fmt.Sprintf("PDF rendering failed for ticket %d, row stays committed: %v", ticket.ID, err))
		return nil, nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	s.publishTicketEvent("ticket.issued", ticket)

	s.log.LogTicket("ISSUED", fmt.Sprintf("%d", ticket.ID), fmt.Sprintf("Ticket issued for event %d, holder %s", event.ID, userID))
	return ticket, document, nil
}

// ValidateTicket looks up the ticket matching (qr_content, event_id) without
// mutating anything, so stations can re-check freely before committing a scan.
func (s *TicketService) ValidateTicket(ctx context.Context, qrContent string, eventID int64) (*models.Ticket, error) {
	s.log.LogTicket("VALIDATE", "lookup", fmt.Sprintf("Validating QR for event %d", eventID))

	ticket, err := s.store.GetTicketByQR(ctx, qrContent, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrTicketNotFound) {
			s.log.LogTicket("INVALID", "lookup", fmt.Sprintf("No ticket matches QR for event %d", eventID))
			return nil, ErrTicketNotFound
		}
		s.log.Error("TICKET", "Validation lookup failed: "+err.Error())
		return nil, fmt.Errorf("failed to validate ticket: %w", err)
	}

	s.log.LogTicket("VALID", fmt.Sprintf("%d", ticket.ID), fmt.Sprintf("Ticket valid, scaned=%t", ticket.Scaned))
	return ticket, nil
}

// CommitScan marks the matching ticket as scanned and stamps the scan time.
// A repeated scan re-applies the update rather than rejecting it.
func (s *TicketService) CommitScan(ctx context.Context, qrContent string, eventID int64) (*models.Ticket, error) {
	s.log.LogTicket("SCAN", "commit", fmt.Sprintf("Committing scan for event %d", eventID))

	ticket, err := s.store.MarkTicketScanned(ctx, qrContent, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrTicketNotFound) {
			s.log.LogTicket("SCAN_FAILED", "commit", fmt.Sprintf("No ticket matches QR for event %d", eventID))
			return nil, ErrTicketNotFound
		}
		s.log.Error("TICKET", "Scan commit failed: "+err.Error())
		return nil, fmt.Errorf("failed to commit scan: %w", err)
	}

	s.publishTicketEvent("ticket.scanned", ticket)

	s.log.LogTicket("SCANNED", fmt.Sprintf("%d", ticket.ID), "Ticket marked as scanned")
	return ticket, nil
}

func (s *TicketService) publishTicketEvent(eventType string, ticket *models.Ticket) {
	event := &models.TicketEvent{
		Type:      eventType,
		TicketID:  ticket.ID,
		EventID:   ticket.EventID,
		Ticket:    ticket,
		Timestamp: time.Now(),
	}

	if err := s.producer.PublishTicketEvent(event); err != nil {
		s.log.Error("KAFKA", fmt.Sprintf("Failed to publish %s for ticket %d: %v", eventType, ticket.ID, err))
		s.log.LogProcess("FALLBACK", fmt.Sprintf("Ticket %d processed successfully despite Kafka publish failure", ticket.ID))
	}
}
