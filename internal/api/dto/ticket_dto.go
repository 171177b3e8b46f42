package dto

import (
	"time"

	"github.com/spec-kit/soporte360/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
}

// TicketResponse is the wire shape for tickets.
type TicketResponse struct {
	ID                 string                     `json:"id"`
	Titulo             string                     `json:"titulo"`
	Descripcion        string                     `json:"descripcion"`
	Estado             domain.TicketEstado        `json:"estado"`
	Prioridad          *domain.TicketPrioridad    `json:"prioridad"`
	Categoria          *domain.TicketCategoria    `json:"categoria"`
	Departamento       *domain.TicketDepartamento `json:"departamento"`
	TiempoEstimado     *string                    `json:"tiempo_estimado"`
	UsuarioID          string                     `json:"usuario_id"`
	UsuarioEmail       string                     `json:"usuario_email"`
	Campana            *string                    `json:"campana"`
	AsignadoA          *string                    `json:"asignado_a"`
	FechaCreacion      time.Time                  `json:"fecha_creacion"`
	FechaActualizacion time.Time                  `json:"fecha_actualizacion"`
}

// TicketFromDomain maps a domain ticket onto the wire shape.
func TicketFromDomain(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:                 ticket.ID,
		Titulo:             ticket.Titulo,
		Descripcion:        ticket.Descripcion,
		Estado:             ticket.Estado,
		Prioridad:          ticket.Prioridad,
		Categoria:          ticket.Categoria,
		Departamento:       ticket.Departamento,
		TiempoEstimado:     ticket.TiempoEstimado,
		UsuarioID:          ticket.UsuarioID,
		UsuarioEmail:       ticket.UsuarioEmail,
		Campana:            ticket.Campana,
		AsignadoA:          ticket.AsignadoA,
		FechaCreacion:      ticket.FechaCreacion,
		FechaActualizacion: ticket.FechaActualizacion,
	}
}

// UpdateTicketRequest payload for staff triage patches.
type UpdateTicketRequest struct {
	Estado       *domain.TicketEstado       `json:"estado"`
	Prioridad    *domain.TicketPrioridad    `json:"prioridad"`
	Categoria    *domain.TicketCategoria    `json:"categoria"`
	Departamento *domain.TicketDepartamento `json:"departamento"`
	AsignadoA    *string                    `json:"asignado_a"`
}
