package tickets

import (
	"encoding/json"
	"time"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	apphttp "github.com/yildirimberke/berke-terminal-dashboard/pkg/http"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/logger"
)

// Item is one flagged data point inside a ticket.
type Item struct {
	Key   string `json:"key"`
	Issue string `json:"issue,omitempty"`
	Value string `json:"value,omitempty"`
}

// Persistence is the slice of the storage layer the ticket service needs.
type Persistence interface {
	SaveTicket(itemsJSON, notes string, at time.Time) (int64, error)
	Tickets(limit int) ([]models.Ticket, error)
}

// Service manages data-quality tickets.
type Service struct {
	store  Persistence
	logger *logger.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock injects the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the ticket service.
func NewService(store Persistence, opts ...Option) *Service {
	s := &Service{store: store, logger: logger.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create files a ticket over the flagged items. At least one item is
// required; items are stored as JSON for the review workflow.
func (s *Service) Create(items []Item, notes string) (int64, error) {
	if len(items) == 0 {
		return 0, apphttp.ValidationError("items", "a ticket needs at least one item")
	}
	b, err := json.Marshal(items)
	if err != nil {
		return 0, err
	}
	id, err := s.store.SaveTicket(string(b), notes, s.now())
	if err != nil {
		return 0, err
	}
	s.logger.Info("ticket created",
		logger.Int("id", int(id)),
		logger.Int("items", len(items)))
	return id, nil
}

// Recent returns the most recent tickets, newest first.
func (s *Service) Recent(limit int) ([]models.Ticket, error) {
	return s.store.Tickets(limit)
}
