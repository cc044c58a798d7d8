package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-ticketing/internal/kafka"
	"club-ticketing/internal/logger"
	"club-ticketing/internal/models"
	"club-ticketing/internal/services"
	"club-ticketing/internal/storage"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *storage.InMemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewLogger()
	store := storage.NewInMemoryStore()
	producer, err := kafka.NewProducer(nil, true, log)
	require.NoError(t, err)

	eventHandler := NewEventHandler(services.NewEventService(store, log))
	ticketHandler := NewTicketHandler(services.NewTicketService(store, producer, log))

	router := gin.New()
	router.POST("/events", eventHandler.CreateEvent)
	router.GET("/events", eventHandler.ListEvents)
	router.GET("/events/:id", eventHandler.GetEvent)
	router.POST("/ticket/create", ticketHandler.CreateTicket)
	router.POST("/ticket/validate", ticketHandler.ValidateTicket)
	router.POST("/ticket/update_scaned", ticketHandler.UpdateScaned)

	return router, store
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedEvent(t *testing.T, store *storage.InMemoryStore) *models.Event {
	t.Helper()

	event := &models.Event{
		Name:      "Gala",
		EventDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.CreateEvent(context.Background(), event))
	return event
}

func TestCreateEvent(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/events", gin.H{
		"name":       "Gala",
		"event_date": "2025-12-01",
		"location":   "Main Stadium",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Event models.EventResponse `json:"event"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Event.ID)
	assert.Equal(t, "Gala", resp.Event.Name)
	assert.Equal(t, "2025-12-01", resp.Event.EventDate)
	assert.Equal(t, "/?event_id=1", resp.Event.ValidationLink)

	// listing immediately after includes the new event
	w = doJSON(router, http.MethodGet, "/events", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []models.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)
}

func TestCreateEventMalformedDate(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/events", gin.H{
		"name":       "Gala",
		"event_date": "2025-13-40",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// no row was inserted
	w = doJSON(router, http.MethodGet, "/events", nil)
	var list []models.EventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestCreateEventMissingFields(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/events", gin.H{"location": "Main Stadium"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetEventNotFound(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodGet, "/events/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTicketReturnsPDF(t *testing.T) {
	router, store := setupTestRouter(t)
	event := seedEvent(t, store)

	w := doJSON(router, http.MethodPost, "/ticket/create", gin.H{
		"event_id": event.ID,
		"seat":     "A1",
		"user_id":  "member-77",
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ticket_1_member-77.pdf")
	assert.Equal(t, "%PDF", w.Body.String()[:4])

	// the ticket row was persisted with a fresh token
	tickets := store.TicketsForEvent(event.ID)
	require.Len(t, tickets, 1)
	assert.Equal(t, "member-77", tickets[0].UserID)
	assert.NotEmpty(t, tickets[0].QRContent)
	assert.False(t, tickets[0].Scaned)
}

func TestCreateTicketUnknownEvent(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/ticket/create", gin.H{
		"event_id": 99,
		"seat":     "A1",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTicketMissingFields(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/ticket/create", gin.H{"event_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateAndScanFlow(t *testing.T) {
	router, store := setupTestRouter(t)
	event := seedEvent(t, store)

	ticket := &models.Ticket{
		EventID:   event.ID,
		UserID:    "member-77",
		Seat:      "A1",
		QRContent: "token-abc",
	}
	require.NoError(t, store.CreateTicket(context.Background(), ticket))

	// validate: unscanned ticket is valid
	w := doJSON(router, http.MethodPost, "/ticket/validate", gin.H{
		"qr_content": "token-abc",
		"event_id":   event.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var validateResp struct {
		Status     string            `json:"status"`
		TicketInfo models.TicketInfo `json:"ticket_info"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &validateResp))
	assert.Equal(t, "valid", validateResp.Status)
	assert.False(t, validateResp.TicketInfo.Scaned)
	assert.Nil(t, validateResp.TicketInfo.ScanedAt)

	// same token scoped to another event is invalid
	w = doJSON(router, http.MethodPost, "/ticket/validate", gin.H{
		"qr_content": "token-abc",
		"event_id":   event.ID + 1,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	var invalidResp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invalidResp))
	assert.Equal(t, "invalid", invalidResp.Status)

	// commit the scan
	w = doJSON(router, http.MethodPost, "/ticket/update_scaned", gin.H{
		"qr_content": "token-abc",
		"event_id":   event.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var scanResp struct {
		Status   string `json:"status"`
		TicketID int64  `json:"ticket_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scanResp))
	assert.Equal(t, "success", scanResp.Status)
	assert.Equal(t, ticket.ID, scanResp.TicketID)

	// re-validate: scan is visible
	w = doJSON(router, http.MethodPost, "/ticket/validate", gin.H{
		"qr_content": "token-abc",
		"event_id":   event.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &validateResp))
	assert.True(t, validateResp.TicketInfo.Scaned)
	assert.NotNil(t, validateResp.TicketInfo.ScanedAt)

	// scanning the same ticket again is allowed and still succeeds
	w = doJSON(router, http.MethodPost, "/ticket/update_scaned", gin.H{
		"qr_content": "token-abc",
		"event_id":   event.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scanResp))
	assert.Equal(t, "success", scanResp.Status)
	assert.Equal(t, ticket.ID, scanResp.TicketID)
}

func TestTicketEndpointsAcceptStringEventID(t *testing.T) {
	router, store := setupTestRouter(t)
	event := seedEvent(t, store)

	// the scanner frontend posts event_id as a string
	w := doJSON(router, http.MethodPost, "/ticket/create", gin.H{
		"event_id": "1",
		"seat":     "A1",
		"user_id":  "member-77",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	tickets := store.TicketsForEvent(event.ID)
	require.Len(t, tickets, 1)

	w = doJSON(router, http.MethodPost, "/ticket/validate", gin.H{
		"qr_content": tickets[0].QRContent,
		"event_id":   "1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var validateResp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &validateResp))
	assert.Equal(t, "valid", validateResp.Status)

	w = doJSON(router, http.MethodPost, "/ticket/update_scaned", gin.H{
		"qr_content": tickets[0].QRContent,
		"event_id":   "1",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateScanedUnknownTicket(t *testing.T) {
	router, store := setupTestRouter(t)
	event := seedEvent(t, store)

	w := doJSON(router, http.MethodPost, "/ticket/update_scaned", gin.H{
		"qr_content": "no-such-token",
		"event_id":   event.ID,
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
}

func TestValidateMissingFields(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, http.MethodPost, "/ticket/validate", gin.H{"event_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
