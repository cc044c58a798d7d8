package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"club-ticketing/internal/config"
	"club-ticketing/internal/logger"
	"club-ticketing/internal/models"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
)

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrTicketNotFound = errors.New("ticket not found")
)

type MySQLStore struct {
	db  *bun.DB
	log *logger.Logger
}

func NewMySQLStore(cfg config.DatabaseConfig, log *logger.Logger) (*MySQLStore, error) {
	log.LogDatabase("CONNECT", "mysql", fmt.Sprintf("Connecting to MySQL at %s:%s", cfg.Host, cfg.Port))

	// clientFoundRows makes RowsAffected count matched rows, so a re-scan
	// that lands in the same second still reports its match.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	sqldb, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Error("DATABASE", "Failed to open MySQL connection: "+err.Error())
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	// Test connection
	if err := sqldb.Ping(); err != nil {
		log.Error("DATABASE", "Failed to ping MySQL: "+err.Error())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &MySQLStore{
		db:  bun.NewDB(sqldb, mysqldialect.New()),
		log: log,
	}

	// Initialize tables
	if err := store.initTables(); err != nil {
		log.Error("DATABASE", "Failed to initialize tables: "+err.Error())
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	log.LogDatabase("SUCCESS", "mysql", "MySQL connection established and tables initialized")
	return store, nil
}

func (s *MySQLStore) initTables() error {
	s.log.LogDatabase("MIGRATE", "mysql", "Creating events and tickets tables if not exists")

	eventsQuery := `
    CREATE TABLE IF NOT EXISTS events (
        id INT AUTO_INCREMENT PRIMARY KEY,
        name VARCHAR(255) NOT NULL,
        event_date DATE NOT NULL,
        location VARCHAR(255),
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        INDEX idx_event_date (event_date)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
    `

	if _, err := s.db.Exec(eventsQuery); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}

	ticketsQuery := `
    CREATE TABLE IF NOT EXISTS tickets (
        id INT AUTO_INCREMENT PRIMARY KEY,
        event_id INT NOT NULL,
        user_id VARCHAR(100) NOT NULL,
        seat VARCHAR(50) NOT NULL,
        qr_content VARCHAR(100) NOT NULL,
        scaned BOOLEAN DEFAULT FALSE,
        scaned_at TIMESTAMP NULL,
        UNIQUE KEY uq_event_qr (event_id, qr_content),
        CONSTRAINT fk_tickets_event FOREIGN KEY (event_id) REFERENCES events(id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
    `

	if _, err := s.db.Exec(ticketsQuery); err != nil {
		return fmt.Errorf("failed to create tickets table: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "mysql", "Events and tickets tables ready")
	return nil
}

func (s *MySQLStore) CreateEvent(ctx context.Context, event *models.Event) error {
	s.log.LogDatabase("INSERT", "events", fmt.Sprintf("Creating event %q", event.Name))

	if _, err := s.db.NewInsert().Model(event).Exec(ctx); err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to create event %q: %s", event.Name, err.Error()))
		return fmt.Errorf("failed to create event: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "events", fmt.Sprintf("Event %q created with id %d", event.Name, event.ID))
	return nil
}

func (s *MySQLStore) ListEvents(ctx context.Context) ([]*models.Event, error) {
	s.log.LogDatabase("SELECT", "events", "Listing all events")

	var events []*models.Event
	err := s.db.NewSelect().
		Model(&events).
		Order("event_date DESC").
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		s.log.Error("DATABASE", "Failed to list events: "+err.Error())
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "events", fmt.Sprintf("Listed %d events", len(events)))
	return events, nil
}

func (s *MySQLStore) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	s.log.LogDatabase("SELECT", "events", fmt.Sprintf("Fetching event %d", id))

	event := &models.Event{}
	err := s.db.NewSelect().Model(event).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.log.LogDatabase("NOT_FOUND", "events", fmt.Sprintf("Event %d not found", id))
			return nil, ErrEventNotFound
		}
		s.log.Error("DATABASE", fmt.Sprintf("Failed to get event %d: %s", id, err.Error()))
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

func (s *MySQLStore) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	s.log.LogDatabase("INSERT", "tickets", fmt.Sprintf("Creating ticket for event %d, seat %s", ticket.EventID, ticket.Seat))

	if _, err := s.db.NewInsert().Model(ticket).Exec(ctx); err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to create ticket for event %d: %s", ticket.EventID, err.Error()))
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "tickets", fmt.Sprintf("Ticket %d created for event %d", ticket.ID, ticket.EventID))
	return nil
}

func (s *MySQLStore) GetTicketByQR(ctx context.Context, qrContent string, eventID int64) (*models.Ticket, error) {
	s.log.LogDatabase("SELECT", "tickets", fmt.Sprintf("Looking up ticket by QR for event %d", eventID))

	ticket := &models.Ticket{}
	err := s.db.NewSelect().
		Model(ticket).
		Where("qr_content = ?", qrContent).
		Where("event_id = ?", eventID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.log.LogDatabase("NOT_FOUND", "tickets", fmt.Sprintf("No ticket matches QR for event %d", eventID))
			return nil, ErrTicketNotFound
		}
		s.log.Error("DATABASE", "Failed to look up ticket by QR: "+err.Error())
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return ticket, nil
}

func (s *MySQLStore) MarkTicketScanned(ctx context.Context, qrContent string, eventID int64) (*models.Ticket, error) {
	s.log.LogDatabase("UPDATE", "tickets", fmt.Sprintf("Marking ticket scanned for event %d", eventID))

	// The match itself is the commit condition: zero affected rows means no
	// ticket carries this QR for the event.
	res, err := s.db.NewUpdate().
		Model((*models.Ticket)(nil)).
		Set("scaned = ?", true).
		Set("scaned_at = ?", time.Now()).
		Where("qr_content = ?", qrContent).
		Where("event_id = ?", eventID).
		Exec(ctx)
	if err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to mark ticket scanned for event %d: %s", eventID, err.Error()))
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	if affected == 0 {
		s.log.LogDatabase("NOT_FOUND", "tickets", fmt.Sprintf("No ticket matches QR for event %d", eventID))
		return nil, ErrTicketNotFound
	}

	ticket, err := s.GetTicketByQR(ctx, qrContent, eventID)
	if err != nil {
		return nil, err
	}

	s.log.LogDatabase("SUCCESS", "tickets", fmt.Sprintf("Ticket %d marked as scanned", ticket.ID))
	return ticket, nil
}

func (s *MySQLStore) Close() error {
	s.log.LogDatabase("CLOSE", "mysql", "Closing MySQL connection")
	return s.db.Close()
}

func (s *MySQLStore) HealthCheck() error {
	return s.db.Ping()
}
