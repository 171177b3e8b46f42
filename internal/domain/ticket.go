package domain

import "time"

// TicketEstado enumerates lifecycle states for tickets.
type TicketEstado string

const (
	EstadoNuevo      TicketEstado = "Nuevo"
	EstadoAsignado   TicketEstado = "Asignado"
	EstadoEnProgreso TicketEstado = "En Progreso"
	EstadoResuelto   TicketEstado = "Resuelto"
	EstadoCerrado    TicketEstado = "Cerrado"
)

// TicketPrioridad enumerates urgency levels assigned by classification.
type TicketPrioridad string

const (
	PrioridadAlta  TicketPrioridad = "Alta"
	PrioridadMedia TicketPrioridad = "Media"
	PrioridadBaja  TicketPrioridad = "Baja"
)

// TicketCategoria enumerates problem categories.
type TicketCategoria string

const (
	CategoriaHardware  TicketCategoria = "Hardware"
	CategoriaSoftware  TicketCategoria = "Software"
	CategoriaRed       TicketCategoria = "Red"
	CategoriaSeguridad TicketCategoria = "Seguridad"
	CategoriaAcceso    TicketCategoria = "Acceso"
)

// TicketDepartamento enumerates resolver departments.
type TicketDepartamento string

const (
	DepartamentoTI              TicketDepartamento = "TI"
	DepartamentoSoporte         TicketDepartamento = "Soporte"
	DepartamentoInfraestructura TicketDepartamento = "Infraestructura"
)

// Ticket is the aggregate for support requests. Classification fields stay nil
// until the classifier (or its fallback) fills them at creation.
type Ticket struct {
	ID                 string
	Titulo             string
	Descripcion        string
	Estado             TicketEstado
	Prioridad          *TicketPrioridad
	Categoria          *TicketCategoria
	Departamento       *TicketDepartamento
	TiempoEstimado     *string
	UsuarioID          string
	UsuarioEmail       string
	Campana            *string
	AsignadoA          *string
	FechaCreacion      time.Time
	FechaActualizacion time.Time
}

func (e TicketEstado) Valid() bool {
	switch e {
	case EstadoNuevo, EstadoAsignado, EstadoEnProgreso, EstadoResuelto, EstadoCerrado:
		return true
	}
	return false
}

func (p TicketPrioridad) Valid() bool {
	switch p {
	case PrioridadAlta, PrioridadMedia, PrioridadBaja:
		return true
	}
	return false
}

func (c TicketCategoria) Valid() bool {
	switch c {
	case CategoriaHardware, CategoriaSoftware, CategoriaRed, CategoriaSeguridad, CategoriaAcceso:
		return true
	}
	return false
}

func (d TicketDepartamento) Valid() bool {
	switch d {
	case DepartamentoTI, DepartamentoSoporte, DepartamentoInfraestructura:
		return true
	}
	return false
}
