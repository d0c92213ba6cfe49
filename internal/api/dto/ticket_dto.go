package dto

import (
	"time"

	"github.com/ticketreport/backend/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	AssignedToID   *string  `json:"assigned_to_id"`
	AttachmentURLs []string `json:"attachment_urls"`
}

// UpdateTicketStatusRequest payload. Status is the numeric wire value.
type UpdateTicketStatusRequest struct {
	Status int `json:"status"`
}

// AssignTicketRequest payload. A nil AssignedToID clears the assignment.
type AssignTicketRequest struct {
	AssignedToID *string `json:"assigned_to_id"`
}

// CreateMessageRequest payload.
type CreateMessageRequest struct {
	Content       string  `json:"content"`
	AttachmentURL *string `json:"attachment_url"`
}

// TicketResponse provides the full ticket representation. Status is the
// numeric wire value.
type TicketResponse struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Status         int               `json:"status"`
	AttachmentURLs []string          `json:"attachment_urls,omitempty"`
	Reporter       UserResponse      `json:"reporter"`
	AssignedTo     *UserResponse     `json:"assigned_to,omitempty"`
	Messages       []MessageResponse `json:"messages"`
	CreatedAt      time.Time         `json:"created_at"`
	ClosedAt       *time.Time        `json:"closed_at,omitempty"`
}

// MessageResponse represents one thread entry.
type MessageResponse struct {
	ID            string       `json:"id"`
	Content       string       `json:"content"`
	AttachmentURL *string      `json:"attachment_url,omitempty"`
	User          UserResponse `json:"user"`
	CreatedAt     time.Time    `json:"created_at"`
}

// NewTicketResponse maps a domain ticket and its messages to the wire shape.
func NewTicketResponse(ticket *domain.Ticket, messages []domain.Message) TicketResponse {
	resp := TicketResponse{
		ID:             ticket.ID,
		Title:          ticket.Title,
		Description:    ticket.Description,
		Status:         int(ticket.Status),
		AttachmentURLs: ticket.AttachmentURLs,
		Messages:       make([]MessageResponse, 0, len(messages)),
		CreatedAt:      ticket.CreatedAt,
		ClosedAt:       ticket.ClosedAt,
	}
	if ticket.Reporter != nil {
		resp.Reporter = NewUserResponse(ticket.Reporter)
	}
	if ticket.AssignedTo != nil {
		assignee := NewUserResponse(ticket.AssignedTo)
		resp.AssignedTo = &assignee
	}
	for i := range messages {
		resp.Messages = append(resp.Messages, NewMessageResponse(&messages[i]))
	}
	return resp
}

// NewMessageResponse maps a domain message to the wire shape.
func NewMessageResponse(msg *domain.Message) MessageResponse {
	resp := MessageResponse{
		ID:            msg.ID,
		Content:       msg.Content,
		AttachmentURL: msg.AttachmentURL,
		CreatedAt:     msg.CreatedAt,
	}
	if msg.User != nil {
		resp.User = NewUserResponse(msg.User)
	}
	return resp
}
