package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/soporte360/internal/domain"
)

// TicketFilter captures listing parameters. Listings always come back newest
// first by creation timestamp.
type TicketFilter struct {
	UsuarioID *string
	Estados   []domain.TicketEstado
	Limit     int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, titulo, descripcion, estado, prioridad, categoria, departamento,
               tiempo_estimado, usuario_id, usuario_email, campana, asignado_a,
               fecha_creacion, fecha_actualizacion`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (titulo, descripcion, estado, prioridad, categoria, departamento, tiempo_estimado, usuario_id, usuario_email, campana, asignado_a)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, fecha_creacion, fecha_actualizacion`
	return r.pool.QueryRow(ctx, query,
		ticket.Titulo,
		ticket.Descripcion,
		ticket.Estado,
		ticket.Prioridad,
		ticket.Categoria,
		ticket.Departamento,
		ticket.TiempoEstimado,
		ticket.UsuarioID,
		ticket.UsuarioEmail,
		ticket.Campana,
		ticket.AsignadoA,
	).Scan(&ticket.ID, &ticket.FechaCreacion, &ticket.FechaActualizacion)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET estado=$1, prioridad=$2, categoria=$3, departamento=$4,
            tiempo_estimado=$5, asignado_a=$6, fecha_actualizacion=NOW()
        WHERE id=$7
        RETURNING fecha_actualizacion`
	if err := r.pool.QueryRow(ctx, query,
		ticket.Estado,
		ticket.Prioridad,
		ticket.Categoria,
		ticket.Departamento,
		ticket.TiempoEstimado,
		ticket.AsignadoA,
		ticket.ID,
	).Scan(&ticket.FechaActualizacion); err != nil {
		return err
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Titulo,
		&ticket.Descripcion,
		&ticket.Estado,
		&ticket.Prioridad,
		&ticket.Categoria,
		&ticket.Departamento,
		&ticket.TiempoEstimado,
		&ticket.UsuarioID,
		&ticket.UsuarioEmail,
		&ticket.Campana,
		&ticket.AsignadoA,
		&ticket.FechaCreacion,
		&ticket.FechaActualizacion,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT ` + ticketColumns + ` FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UsuarioID != nil {
		args = append(args, *filter.UsuarioID)
		clauses = append(clauses, fmt.Sprintf("usuario_id=$%d", len(args)))
	}
	if len(filter.Estados) > 0 {
		placeholders := make([]string, len(filter.Estados))
		for i, estado := range filter.Estados {
			args = append(args, estado)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("estado IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY fecha_creacion DESC LIMIT %d`,
		base, strings.Join(clauses, " AND "), limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Titulo,
			&ticket.Descripcion,
			&ticket.Estado,
			&ticket.Prioridad,
			&ticket.Categoria,
			&ticket.Departamento,
			&ticket.TiempoEstimado,
			&ticket.UsuarioID,
			&ticket.UsuarioEmail,
			&ticket.Campana,
			&ticket.AsignadoA,
			&ticket.FechaCreacion,
			&ticket.FechaActualizacion,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
