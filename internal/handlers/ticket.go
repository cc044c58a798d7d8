package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"club-ticketing/internal/models"
	"club-ticketing/internal/services"
	"club-ticketing/internal/utils"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	ticketService *services.TicketService
}

func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

// CreateTicket issues a ticket and streams the rendered PDF back as the
// response body.
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req models.CreateTicketRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Missing data: event_id, seat", err.Error()))
		return
	}

	ticket, document, err := h.ticketService.IssueTicket(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Event not found", ""))
		case errors.Is(err, services.ErrRenderFailed):
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to generate ticket document", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to create ticket", err.Error()))
		}
		return
	}

	filename := fmt.Sprintf("ticket_%d_%s.pdf", ticket.EventID, ticket.UserID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", document)
}

func (h *TicketHandler) ValidateTicket(c *gin.Context) {
	var req models.ValidateTicketRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Missing data: qr_content, event_id", err.Error()))
		return
	}

	ticket, err := h.ticketService.ValidateTicket(c.Request.Context(), req.QRContent, int64(req.EventID))
	if err != nil {
		if errors.Is(err, services.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "invalid",
				"message": "Ticket not found or invalid",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to validate ticket", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "valid",
		"message":     "Ticket is valid",
		"ticket_info": ticket.ToInfo(),
	})
}

func (h *TicketHandler) UpdateScaned(c *gin.Context) {
	var req models.ScanTicketRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Missing data: qr_content, event_id", err.Error()))
		return
	}

	ticket, err := h.ticketService.CommitScan(c.Request.Context(), req.QRContent, int64(req.EventID))
	if err != nil {
		if errors.Is(err, services.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Ticket not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to update ticket", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "Ticket marked as scanned",
		"ticket_id": ticket.ID,
	})
}
