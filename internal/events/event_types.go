package events

import (
	"time"

	"github.com/spec-kit/soporte360/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Titulo    string                  `json:"titulo"`
	Prioridad *domain.TicketPrioridad `json:"prioridad,omitempty"`
	Campana   *string                 `json:"campana,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldEstado domain.TicketEstado `json:"old_estado"`
	NewEstado domain.TicketEstado `json:"new_estado"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AsignadoA string `json:"asignado_a"`
}
