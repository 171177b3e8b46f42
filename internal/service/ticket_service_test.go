package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/soporte360/internal/domain"
	"github.com/spec-kit/soporte360/internal/events"
)

func seedEndUser(repo *memUserRepo, id, username, campana string) *domain.User {
	return repo.add(&domain.User{
		ID:       id,
		Username: username,
		Email:    username + "@soporte360.local",
		Role:     domain.RoleUsuarioFinal,
		Campana:  strPtr(campana),
		Active:   true,
	})
}

func seedSoporte(repo *memUserRepo, id, username string) *domain.User {
	return repo.add(&domain.User{
		ID:           id,
		Username:     username,
		Email:        username + "@soporte360.local",
		Role:         domain.RoleSoporte,
		GrupoSoporte: strPtr("Nivel 1"),
		Active:       true,
	})
}

func newTicketFixture(classifier *stubClassifier) (*TicketService, *memUserRepo, *memTicketRepo, events.Dispatcher) {
	users := newMemUserRepo()
	tickets := newMemTicketRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewTicketService(TicketDependencies{
		TicketRepo: tickets,
		UserRepo:   users,
		Classifier: classifier,
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	})
	return svc, users, tickets, dispatcher
}

func TestTicketService_Create_ClassifiesAndDenormalizes(t *testing.T) {
	t.Parallel()

	classifier := &stubClassifier{result: domain.Classification{
		Prioridad:      domain.PrioridadAlta,
		Categoria:      domain.CategoriaRed,
		Departamento:   domain.DepartamentoTI,
		TiempoEstimado: "4-8 horas",
	}}
	svc, users, _, dispatcher := newTicketFixture(classifier)
	ana := seedEndUser(users, "u-ana", "ana", "SXM")

	var created []events.Event
	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, e events.Event) error {
		created = append(created, e)
		return nil
	})

	ticket, err := svc.Create(context.Background(), ana, "  Sin red  ", "No hay conexión")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if classifier.calls != 1 {
		t.Errorf("classifier calls = %d, want 1", classifier.calls)
	}
	if ticket.ID == "" {
		t.Error("ticket should be assigned an id")
	}
	if ticket.Titulo != "Sin red" {
		t.Errorf("titulo = %q, want trimmed", ticket.Titulo)
	}
	if ticket.Estado != domain.EstadoNuevo {
		t.Errorf("estado = %s, want Nuevo", ticket.Estado)
	}
	if ticket.Prioridad == nil || *ticket.Prioridad != domain.PrioridadAlta {
		t.Error("prioridad should come from the classifier")
	}
	if ticket.UsuarioID != ana.ID || ticket.UsuarioEmail != ana.Email {
		t.Error("creator fields should be denormalized from the actor")
	}
	if ticket.Campana == nil || *ticket.Campana != "SXM" {
		t.Error("campana should be denormalized from the actor")
	}
	if ticket.FechaCreacion.IsZero() {
		t.Error("fecha_creacion should be set on insert")
	}
	if len(created) != 1 || created[0].TicketID != ticket.ID {
		t.Errorf("expected one ticket_created event for %s, got %v", ticket.ID, created)
	}
}

func TestTicketService_Create_FallbackOnClassifierError(t *testing.T) {
	t.Parallel()

	classifier := &stubClassifier{err: errors.New("upstream timeout")}
	svc, users, _, _ := newTicketFixture(classifier)
	ana := seedEndUser(users, "u-ana", "ana", "SXM")

	ticket, err := svc.Create(context.Background(), ana, "Pantalla azul", "Se reinicia solo")
	if err != nil {
		t.Fatalf("classification failure must not block creation: %v", err)
	}
	if ticket.Prioridad == nil || *ticket.Prioridad != domain.PrioridadMedia {
		t.Error("fallback prioridad should be Media")
	}
	if ticket.Categoria == nil || *ticket.Categoria != domain.CategoriaSoftware {
		t.Error("fallback categoria should be Software")
	}
	if ticket.Departamento == nil || *ticket.Departamento != domain.DepartamentoSoporte {
		t.Error("fallback departamento should be Soporte")
	}
	if ticket.TiempoEstimado == nil || *ticket.TiempoEstimado != "2-4 horas" {
		t.Error("fallback tiempo_estimado should be 2-4 horas")
	}
}

func TestTicketService_Create_OnlyEndUsers(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newTicketFixture(&stubClassifier{result: domain.FallbackClassification()})
	luis := seedSoporte(users, "u-luis", "luis")

	_, err := svc.Create(context.Background(), luis, "Algo", "Algo más")
	assertCode(t, err, "FORBIDDEN")
}

func TestTicketService_Create_RequiresTituloAndDescripcion(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newTicketFixture(&stubClassifier{result: domain.FallbackClassification()})
	ana := seedEndUser(users, "u-ana", "ana", "SXM")

	_, err := svc.Create(context.Background(), ana, "   ", "desc")
	assertCode(t, err, "VALIDATION_FAILED")
	_, err = svc.Create(context.Background(), ana, "titulo", "")
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestTicketService_List_VisibilityByRole(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newTicketFixture(&stubClassifier{result: domain.FallbackClassification()})
	ana := seedEndUser(users, "u-ana", "ana", "SXM")
	pedro := seedEndUser(users, "u-pedro", "pedro", "Televentas")
	luis := seedSoporte(users, "u-luis", "luis")

	if _, err := svc.Create(context.Background(), ana, "Primero", "d"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), pedro, "Segundo", "d"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), ana, "Tercero", "d"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	own, err := svc.List(context.Background(), ana, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("end user should see only own tickets, got %d", len(own))
	}
	if own[0].Titulo != "Tercero" || own[1].Titulo != "Primero" {
		t.Errorf("listing should be newest first, got %s then %s", own[0].Titulo, own[1].Titulo)
	}

	all, err := svc.List(context.Background(), luis, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("staff should see every ticket, got %d", len(all))
	}
}

func TestTicketService_List_EstadoFilter(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newTicketFixture(&stubClassifier{result: domain.FallbackClassification()})
	ana := seedEndUser(users, "u-ana", "ana", "SXM")
	luis := seedSoporte(users, "u-luis", "luis")

	if _, err := svc.Create(context.Background(), ana, "Abierto", "d"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	pendiente, err := svc.Create(context.Background(), ana, "Tomado", "d")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.AssignToSelf(context.Background(), luis, pendiente.ID); err != nil {
		t.Fatalf("AssignToSelf: %v", err)
	}

	asignados, err := svc.List(context.Background(), luis, []domain.TicketEstado{domain.EstadoAsignado})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(asignados) != 1 || asignados[0].ID != pendiente.ID {
		t.Errorf("estado filter should return only the assigned ticket, got %v", asignados)
	}

	varios, err := svc.List(context.Background(), luis, []domain.TicketEstado{domain.EstadoNuevo, domain.EstadoAsignado})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(varios) != 2 {
		t.Errorf("multi-estado filter should return both tickets, got %d", len(varios))
	}

	_, err = svc.List(context.Background(), luis, []domain.TicketEstado{"Perdido"})
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestTicketService_Get_CreatorOnlyForEndUsers(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newTicketFixture(&stubClassifier{result: domain.FallbackClassification()})
	ana := seedEndUser(users, "u-ana", "ana", "SXM")
	pedro := seedEndUser(users, "u-pedro", "pedro", "Televentas")
	luis := seedSoporte(users, "u-luis", "luis")

	ticket, err := svc.Create(context.Background(), ana, "Mío", "d")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(context.Background(), ana, ticket.ID); err != nil {
		t.Errorf("creator should read own ticket: %v", err)
	}
	_, err = svc.Get(context.Background(), pedro, ticket.ID)
	assertCode(t, err, "FORBIDDEN")
	if _, err := svc.Get(context.Background(), luis, ticket.ID); err != nil {
		t.Errorf("staff should read any ticket: %v", err)
	}

	_, err = svc.Get(context.Background(), luis, "missing")
	assertCode(t, err, "NOT_FOUND")
}

func TestTicketService_Update_StaffTriage(t *testing.T) {
	t.Parallel()

	svc, users, _, dispatcher := newTicketFixture(&stubClassifier{result: domain.FallbackClassification()})
	ana := seedEndUser(users, "u-ana", "ana", "SXM")
	luis := seedSoporte(users, "u-luis", "luis")

	var statusEvents []events.Event
	dispatcher.Subscribe(events.EventTicketStatusChanged, func(ctx context.Context, e events.Event) error {
		statusEvents = append(statusEvents, e)
		return nil
	})

	ticket, err := svc.Create(context.Background(), ana, "Lento", "d")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Update(context.Background(), ana, ticket.ID, TicketPatch{})
	assertCode(t, err, "FORBIDDEN")

	badEstado := domain.TicketEstado("Perdido")
	_, err = svc.Update(context.Background(), luis, ticket.ID, TicketPatch{Estado: &badEstado})
	assertCode(t, err, "VALIDATION_FAILED")

	_, err = svc.Update(context.Background(), luis, ticket.ID, TicketPatch{AsignadoA: strPtr("u-ana")})
	assertCode(t, err, "VALIDATION_FAILED")
	_, err = svc.Update(context.Background(), luis, ticket.ID, TicketPatch{AsignadoA: strPtr("missing")})
	assertCode(t, err, "VALIDATION_FAILED")

	estado := domain.EstadoEnProgreso
	prioridad := domain.PrioridadAlta
	updated, err := svc.Update(context.Background(), luis, ticket.ID, TicketPatch{
		Estado:    &estado,
		Prioridad: &prioridad,
		AsignadoA: strPtr(luis.ID),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Estado != domain.EstadoEnProgreso {
		t.Errorf("estado = %s, want En Progreso", updated.Estado)
	}
	if updated.Prioridad == nil || *updated.Prioridad != domain.PrioridadAlta {
		t.Error("prioridad should be updated")
	}
	if updated.AsignadoA == nil || *updated.AsignadoA != luis.ID {
		t.Error("asignado_a should point at the support account")
	}
	if !updated.FechaActualizacion.After(ticket.FechaActualizacion) {
		t.Error("fecha_actualizacion should advance on update")
	}
	if len(statusEvents) != 1 {
		t.Errorf("expected one status change event, got %d", len(statusEvents))
	}
}

func TestTicketService_AssignToSelf(t *testing.T) {
	t.Parallel()

	svc, users, _, dispatcher := newTicketFixture(&stubClassifier{result: domain.FallbackClassification()})
	ana := seedEndUser(users, "u-ana", "ana", "SXM")
	luis := seedSoporte(users, "u-luis", "luis")
	maria := seedSoporte(users, "u-maria", "maria")

	var assigned []events.Event
	dispatcher.Subscribe(events.EventTicketAssigned, func(ctx context.Context, e events.Event) error {
		assigned = append(assigned, e)
		return nil
	})

	ticket, err := svc.Create(context.Background(), ana, "Teclado roto", "d")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.AssignToSelf(context.Background(), ana, ticket.ID)
	assertCode(t, err, "FORBIDDEN")

	taken, err := svc.AssignToSelf(context.Background(), luis, ticket.ID)
	if err != nil {
		t.Fatalf("AssignToSelf: %v", err)
	}
	if taken.AsignadoA == nil || *taken.AsignadoA != luis.ID {
		t.Error("asignado_a should be the caller")
	}
	if taken.Estado != domain.EstadoAsignado {
		t.Errorf("estado = %s, want Asignado", taken.Estado)
	}

	// A second support user taking the same ticket simply overwrites.
	retaken, err := svc.AssignToSelf(context.Background(), maria, ticket.ID)
	if err != nil {
		t.Fatalf("AssignToSelf: %v", err)
	}
	if retaken.AsignadoA == nil || *retaken.AsignadoA != maria.ID {
		t.Error("reassignment should overwrite the assignee")
	}

	if len(assigned) != 2 {
		t.Errorf("expected two assignment events, got %d", len(assigned))
	}

	_, err = svc.AssignToSelf(context.Background(), luis, "missing")
	assertCode(t, err, "NOT_FOUND")
}
