package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ticketreport/backend/internal/domain"
)

// MessageRepository encapsulates message persistence. Messages are append
// only; there is no update or delete.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Message, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository instantiates repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (ticket_id, user_id, content, attachment_url)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		msg.TicketID,
		msg.UserID,
		msg.Content,
		msg.AttachmentURL,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *messageRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Message, error) {
	const query = `
        SELECT m.id, m.ticket_id, m.user_id, m.content, m.attachment_url, m.created_at,
               u.id, u.name, u.email, u.role
        FROM messages m
        JOIN users u ON u.id = m.user_id
        WHERE m.ticket_id=$1
        ORDER BY m.created_at ASC`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var msg domain.Message
		var author domain.User
		if err := rows.Scan(
			&msg.ID,
			&msg.TicketID,
			&msg.UserID,
			&msg.Content,
			&msg.AttachmentURL,
			&msg.CreatedAt,
			&author.ID,
			&author.Name,
			&author.Email,
			&author.Role,
		); err != nil {
			return nil, err
		}
		msg.User = &author
		result = append(result, msg)
	}
	return result, rows.Err()
}
