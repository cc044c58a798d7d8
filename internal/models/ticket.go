package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// EventID is an event reference in ticket requests. It unmarshals from either
// a JSON number or a numeric string; the scanning frontend posts form values
// as strings.
type EventID int64

func (id *EventID) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("event_id must be an integer: %w", err)
	}
	*id = EventID(parsed)
	return nil
}

type Ticket struct {
	bun.BaseModel `bun:"table:tickets"`

	ID        int64      `bun:"id,pk,autoincrement"`
	EventID   int64      `bun:"event_id"`
	UserID    string     `bun:"user_id"`
	Seat      string     `bun:"seat"`
	QRContent string     `bun:"qr_content"`
	Scaned    bool       `bun:"scaned"`
	ScanedAt  *time.Time `bun:"scaned_at,nullzero"`
}

type CreateTicketRequest struct {
	EventID EventID `json:"event_id" binding:"required"`
	Seat    string  `json:"seat" binding:"required"`
	UserID  string  `json:"user_id"`
}

type ValidateTicketRequest struct {
	QRContent string  `json:"qr_content" binding:"required"`
	EventID   EventID `json:"event_id" binding:"required"`
}

type ScanTicketRequest struct {
	QRContent string  `json:"qr_content" binding:"required"`
	EventID   EventID `json:"event_id" binding:"required"`
}

// TicketInfo is the ticket state returned to scanning stations.
type TicketInfo struct {
	ID       int64   `json:"id"`
	EventID  int64   `json:"event_id"`
	UserID   string  `json:"user_id"`
	Seat     string  `json:"seat"`
	Scaned   bool    `json:"scaned"`
	ScanedAt *string `json:"scaned_at"`
}

func (t *Ticket) ToInfo() *TicketInfo {
	info := &TicketInfo{
		ID:      t.ID,
		EventID: t.EventID,
		UserID:  t.UserID,
		Seat:    t.Seat,
		Scaned:  t.Scaned,
	}
	if t.ScanedAt != nil {
		formatted := t.ScanedAt.Format("2006-01-02 15:04:05")
		info.ScanedAt = &formatted
	}
	return info
}

// TicketEvent is the lifecycle message published for issued and scanned
// tickets.
type TicketEvent struct {
	Type      string    `json:"type"`
	TicketID  int64     `json:"ticket_id"`
	EventID   int64     `json:"event_id"`
	Ticket    *Ticket   `json:"ticket"`
	Timestamp time.Time `json:"timestamp"`
}
