package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ticketreport/backend/internal/domain"
)

// TicketRepository encapsulates ticket persistence. Every read joins the
// reporter and (when set) assignee so callers get complete tickets.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListAll(ctx context.Context) ([]domain.Ticket, error)
	ListByReporter(ctx context.Context, reporterID string) ([]domain.Ticket, error)
	ListByReporterOrAssigned(ctx context.Context, userID string) ([]domain.Ticket, error)
}

const ticketSelect = `
    SELECT t.id, t.title, t.description, t.status, t.attachment_urls,
           t.created_at, t.closed_at,
           r.id, r.name, r.email, r.role,
           a.id, a.name, a.email, a.role
    FROM tickets t
    JOIN users r ON r.id = t.reporter_id
    LEFT JOIN users a ON a.id = t.assigned_to_id`

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, status, attachment_urls, reporter_id, assigned_to_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.AttachmentURLs,
		ticket.ReporterID,
		ticket.AssignedToID,
	).Scan(&ticket.ID, &ticket.CreatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, assigned_to_id=$2, closed_at=$3
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Status,
		ticket.AssignedToID,
		ticket.ClosedAt,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := ticketSelect + ` WHERE t.id=$1`
	var ticket domain.Ticket
	if err := scanTicket(r.pool.QueryRow(ctx, query, id), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	return r.list(ctx, ticketSelect+` ORDER BY t.created_at DESC`)
}

func (r *ticketRepository) ListByReporter(ctx context.Context, reporterID string) ([]domain.Ticket, error) {
	return r.list(ctx, ticketSelect+` WHERE t.reporter_id=$1 ORDER BY t.created_at DESC`, reporterID)
}

func (r *ticketRepository) ListByReporterOrAssigned(ctx context.Context, userID string) ([]domain.Ticket, error) {
	return r.list(ctx, ticketSelect+` WHERE t.reporter_id=$1 OR t.assigned_to_id=$1 ORDER BY t.created_at DESC`, userID)
}

func (r *ticketRepository) list(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner, ticket *domain.Ticket) error {
	var reporter domain.User
	var assigneeID, assigneeName, assigneeEmail *string
	var assigneeRole *domain.Role

	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.AttachmentURLs,
		&ticket.CreatedAt,
		&ticket.ClosedAt,
		&reporter.ID,
		&reporter.Name,
		&reporter.Email,
		&reporter.Role,
		&assigneeID,
		&assigneeName,
		&assigneeEmail,
		&assigneeRole,
	); err != nil {
		return err
	}

	ticket.ReporterID = reporter.ID
	ticket.Reporter = &reporter
	if assigneeID != nil {
		ticket.AssignedToID = assigneeID
		ticket.AssignedTo = &domain.User{
			ID:    *assigneeID,
			Name:  *assigneeName,
			Email: *assigneeEmail,
			Role:  *assigneeRole,
		}
	}
	return nil
}
