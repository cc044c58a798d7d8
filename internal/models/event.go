package models

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// EventDateFormat is the wire format for event dates in requests and responses.
const EventDateFormat = "2006-01-02"

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name"`
	EventDate time.Time `bun:"event_date"`
	Location  string    `bun:"location"`
	CreatedAt time.Time `bun:"created_at"`
}

type CreateEventRequest struct {
	Name      string `json:"name" binding:"required"`
	EventDate string `json:"event_date" binding:"required"`
	Location  string `json:"location"`
}

type EventResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	EventDate      string `json:"event_date"`
	Location       string `json:"location,omitempty"`
	CreatedAt      string `json:"created_at"`
	ValidationLink string `json:"validation_link"`
}

// ToResponse flattens an event for the JSON API, deriving the validation link
// used by the scanning interface.
func (e *Event) ToResponse() *EventResponse {
	return &EventResponse{
		ID:             e.ID,
		Name:           e.Name,
		EventDate:      e.EventDate.Format(EventDateFormat),
		Location:       e.Location,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		ValidationLink: fmt.Sprintf("/?event_id=%d", e.ID),
	}
}
