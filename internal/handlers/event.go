package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"club-ticketing/internal/models"
	"club-ticketing/internal/services"
	"club-ticketing/internal/utils"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Missing data: name, event_date", err.Error()))
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidEventDate) {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid date format. Use YYYY-MM-DD", ""))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to create event", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully",
		"event":   event.ToResponse(),
	})
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.ListEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list events", err.Error()))
		return
	}

	responses := make([]*models.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, event.ToResponse())
	}

	c.JSON(http.StatusOK, responses)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Event ID must be an integer", err.Error()))
		return
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Event not found", ""))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to retrieve event", err.Error()))
		return
	}

	c.JSON(http.StatusOK, event.ToResponse())
}
