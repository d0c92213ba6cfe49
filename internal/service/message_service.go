package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/ticketreport/backend/internal/domain"
	"github.com/ticketreport/backend/internal/events"
	"github.com/ticketreport/backend/internal/notification"
	"github.com/ticketreport/backend/internal/policy"
	"github.com/ticketreport/backend/internal/repository"
	apperrors "github.com/ticketreport/backend/pkg/util"
)

// MessageService appends messages to ticket threads and notifies the other
// participants.
type MessageService struct {
	messages   repository.MessageRepository
	tickets    repository.TicketRepository
	users      repository.UserRepository
	notifier   notification.Notifier
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// MessageDependencies bundles collaborators for the message service.
type MessageDependencies struct {
	MessageRepo repository.MessageRepository
	TicketRepo  repository.TicketRepository
	UserRepo    repository.UserRepository
	Notifier    notification.Notifier
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewMessageService constructs the service.
func NewMessageService(deps MessageDependencies) *MessageService {
	return &MessageService{
		messages:   deps.MessageRepo,
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		notifier:   deps.Notifier,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// AddMessage appends a message to a ticket the actor can access, then sends
// a best-effort notification to every distinct participant email except the
// author's. Notification failures never roll back the write.
func (s *MessageService) AddMessage(ctx context.Context, ticketID, content string, attachmentURL *string, actorID string, role domain.Role) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if !policy.CanAccess(ticket, actorID, role) {
		return nil, apperrors.NewForbidden("no permission to add messages to this ticket")
	}

	author, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}

	msg := &domain.Message{
		TicketID:      ticket.ID,
		UserID:        author.ID,
		User:          author,
		Content:       content,
		AttachmentURL: attachmentURL,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.notifyParticipants(ctx, ticket, msg, author)

	s.publishEvent(ctx, events.Event{
		Type:     events.EventMessageAdded,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: actorID, Role: role},
		Payload: events.MessageAddedPayload{
			MessageID:      msg.ID,
			AuthorID:       author.ID,
			ContentPreview: contentPreview(msg.Content, 120),
		},
	})
	return msg, nil
}

// notifyParticipants emails the reporter and assignee, deduplicated by
// address and excluding the author, so a participant holding both roles (or
// two participants sharing an address) is notified at most once.
func (s *MessageService) notifyParticipants(ctx context.Context, ticket *domain.Ticket, msg *domain.Message, author *domain.User) {
	if s.notifier == nil {
		return
	}

	recipients := make(map[string]struct{})
	if ticket.Reporter != nil && ticket.Reporter.Email != author.Email {
		recipients[ticket.Reporter.Email] = struct{}{}
	}
	if ticket.AssignedTo != nil && ticket.AssignedTo.Email != author.Email {
		recipients[ticket.AssignedTo.Email] = struct{}{}
	}

	for email := range recipients {
		if err := s.notifier.NotifyTicketMessage(ctx, email, ticket.Title, msg.Content, author.Name); err != nil {
			s.logger.Warn("notification failed",
				zap.String("ticket_id", ticket.ID),
				zap.String("recipient", email),
				zap.Error(err),
			)
		}
	}
}

func (s *MessageService) publishEvent(ctx context.Context, event events.Event) {
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

// contentPreview truncates on rune boundaries so multibyte content never
// yields invalid UTF-8 in event payloads.
func contentPreview(content string, max int) string {
	content = strings.TrimSpace(content)
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
