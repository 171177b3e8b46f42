package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/soporte360/internal/classifier"
	"github.com/spec-kit/soporte360/internal/domain"
	"github.com/spec-kit/soporte360/internal/events"
	"github.com/spec-kit/soporte360/internal/repository"
	apperrors "github.com/spec-kit/soporte360/pkg/util"
)

// listCap bounds listings, matching the original API's page of 100.
const listCap = 100

// TicketService coordinates the ticket lifecycle: creation with automatic
// classification, role-scoped visibility, triage updates and self-assignment.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	classifier classifier.Classifier
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Classifier classifier.Classifier
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		classifier: deps.Classifier,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// TicketPatch describes a staff triage update. Nil fields are left untouched.
type TicketPatch struct {
	Estado       *domain.TicketEstado
	Prioridad    *domain.TicketPrioridad
	Categoria    *domain.TicketCategoria
	Departamento *domain.TicketDepartamento
	AsignadoA    *string
}

// Create opens a ticket for an end user. The classifier runs synchronously
// before the insert; on any classifier error the fixed fallback is used so
// classification never blocks creation.
func (s *TicketService) Create(ctx context.Context, actor *domain.User, titulo, descripcion string) (*domain.Ticket, error) {
	if actor.Role != domain.RoleUsuarioFinal {
		return nil, apperrors.NewForbidden("solo usuarios finales pueden crear tickets")
	}
	titulo = strings.TrimSpace(titulo)
	descripcion = strings.TrimSpace(descripcion)
	if titulo == "" || descripcion == "" {
		return nil, apperrors.NewValidationError("titulo y descripcion requeridos", nil)
	}

	clasificacion, err := s.classifier.Classify(ctx, titulo, descripcion)
	if err != nil {
		s.logger.Warn("classification failed, using fallback", zap.Error(err))
		clasificacion = domain.FallbackClassification()
	}

	ticket := &domain.Ticket{
		Titulo:         titulo,
		Descripcion:    descripcion,
		Estado:         domain.EstadoNuevo,
		Prioridad:      &clasificacion.Prioridad,
		Categoria:      &clasificacion.Categoria,
		Departamento:   &clasificacion.Departamento,
		TiempoEstimado: &clasificacion.TiempoEstimado,
		UsuarioID:      actor.ID,
		UsuarioEmail:   actor.Email,
		Campana:        actor.Campana,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketCreatedPayload{
			Titulo:    ticket.Titulo,
			Prioridad: ticket.Prioridad,
			Campana:   ticket.Campana,
		},
	})
	return ticket, nil
}

// List returns tickets visible to the actor, newest first, optionally narrowed
// to a set of states. Staff see all tickets; end users only their own.
func (s *TicketService) List(ctx context.Context, actor *domain.User, estados []domain.TicketEstado) ([]domain.Ticket, error) {
	for _, estado := range estados {
		if !estado.Valid() {
			return nil, apperrors.NewValidationError("estado inválido", map[string]any{"estado": estado})
		}
	}

	filter := repository.TicketFilter{Estados: estados, Limit: listCap}
	if !actor.Role.CanSeeAllTickets() {
		filter.UsuarioID = &actor.ID
	}
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Get fetches a single ticket, enforcing creator-only visibility for end users.
func (s *TicketService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Ticket, error) {
	ticket, err := s.getTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanSeeAllTickets() && ticket.UsuarioID != actor.ID {
		return nil, apperrors.NewForbidden("acceso denegado")
	}
	return ticket, nil
}

// Update applies a staff triage patch and refreshes the update timestamp.
// Setting an assignee requires an active SOPORTE account.
func (s *TicketService) Update(ctx context.Context, actor *domain.User, id string, patch TicketPatch) (*domain.Ticket, error) {
	if !actor.Role.IsStaff() {
		return nil, apperrors.NewForbidden("insufficient role")
	}

	ticket, err := s.getTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	oldEstado := ticket.Estado
	if patch.Estado != nil {
		if !patch.Estado.Valid() {
			return nil, apperrors.NewValidationError("estado inválido", map[string]any{"estado": *patch.Estado})
		}
		ticket.Estado = *patch.Estado
	}
	if patch.Prioridad != nil {
		if !patch.Prioridad.Valid() {
			return nil, apperrors.NewValidationError("prioridad inválida", map[string]any{"prioridad": *patch.Prioridad})
		}
		ticket.Prioridad = patch.Prioridad
	}
	if patch.Categoria != nil {
		if !patch.Categoria.Valid() {
			return nil, apperrors.NewValidationError("categoria inválida", map[string]any{"categoria": *patch.Categoria})
		}
		ticket.Categoria = patch.Categoria
	}
	if patch.Departamento != nil {
		if !patch.Departamento.Valid() {
			return nil, apperrors.NewValidationError("departamento inválido", map[string]any{"departamento": *patch.Departamento})
		}
		ticket.Departamento = patch.Departamento
	}
	if patch.AsignadoA != nil {
		if err := s.validateAssignee(ctx, *patch.AsignadoA); err != nil {
			return nil, err
		}
		ticket.AsignadoA = patch.AsignadoA
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if ticket.Estado != oldEstado {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			ActorID:  actor.ID,
			Payload: events.TicketStatusChangedPayload{
				OldEstado: oldEstado,
				NewEstado: ticket.Estado,
			},
		})
	}
	return ticket, nil
}

// AssignToSelf lets a support user take a ticket: the assignee is always
// overwritten with the caller and the status always becomes Asignado.
func (s *TicketService) AssignToSelf(ctx context.Context, actor *domain.User, id string) (*domain.Ticket, error) {
	if actor.Role != domain.RoleSoporte {
		return nil, apperrors.NewForbidden("solo soporte puede autoasignarse tickets")
	}

	ticket, err := s.getTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	ticket.AsignadoA = &actor.ID
	ticket.Estado = domain.EstadoAsignado
	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload:  events.TicketAssignedPayload{AsignadoA: actor.ID},
	})
	return ticket, nil
}

func (s *TicketService) getTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) validateAssignee(ctx context.Context, assigneeID string) error {
	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("asignado_a no existe", map[string]any{"asignado_a": assigneeID})
		}
		return apperrors.MapError(err)
	}
	if assignee.Role != domain.RoleSoporte || !assignee.Active {
		return apperrors.NewValidationError("asignado_a debe ser una cuenta de soporte activa", map[string]any{"asignado_a": assigneeID})
	}
	return nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
