package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ticketreport/backend/internal/domain"
	"github.com/ticketreport/backend/internal/events"
	"github.com/ticketreport/backend/internal/policy"
	"github.com/ticketreport/backend/internal/repository"
	apperrors "github.com/ticketreport/backend/pkg/util"
)

const (
	titleMinLen = 5
	titleMaxLen = 200
)

// TicketService coordinates ticket workflows: creation, role-filtered
// retrieval, status changes and assignment.
type TicketService struct {
	tickets    repository.TicketRepository
	messages   repository.MessageRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	MessageRepo repository.MessageRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title          string
	Description    string
	AssignedToID   *string
	AttachmentURLs []string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		messages:   deps.MessageRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListTickets returns the tickets visible to the actor: everything for
// admins, own reports for reporters, reported-or-assigned for resolvers.
// The reported-or-assigned query is a single OR filter, so a ticket matching
// both conditions appears once. Always newest first.
func (s *TicketService) ListTickets(ctx context.Context, actorID string, role domain.Role) ([]domain.Ticket, error) {
	var (
		tickets []domain.Ticket
		err     error
	)
	switch role {
	case domain.RoleAdmin:
		tickets, err = s.tickets.ListAll(ctx)
	case domain.RoleReporter:
		tickets, err = s.tickets.ListByReporter(ctx, actorID)
	case domain.RoleResolver:
		tickets, err = s.tickets.ListByReporterOrAssigned(ctx, actorID)
	default:
		return []domain.Ticket{}, nil
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}

// GetTicket fetches one ticket with its ordered message thread, enforcing
// the access policy.
func (s *TicketService) GetTicket(ctx context.Context, ticketID, actorID string, role domain.Role) (*domain.Ticket, []domain.Message, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, nil, apperrors.MapError(err)
	}
	if !policy.CanAccess(ticket, actorID, role) {
		return nil, nil, apperrors.NewForbidden("no permission to access this ticket")
	}
	msgs, err := s.messages.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return ticket, msgs, nil
}

// CreateTicket creates a ticket for the reporter. An optional assignee must
// exist and hold the Resolver or Admin role. New tickets start Pending.
func (s *TicketService) CreateTicket(ctx context.Context, reporterID string, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	if n := utf8.RuneCountInString(title); n < titleMinLen || n > titleMaxLen {
		return nil, apperrors.NewValidationError("title must be between 5 and 200 characters", nil)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}

	reporter, err := s.users.GetByID(ctx, reporterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}

	var assignee *domain.User
	if input.AssignedToID != nil {
		assignee, err = s.lookupAssignee(ctx, *input.AssignedToID)
		if err != nil {
			return nil, err
		}
	}

	ticket := &domain.Ticket{
		Title:          title,
		Description:    strings.TrimSpace(input.Description),
		Status:         domain.StatusPending,
		AttachmentURLs: input.AttachmentURLs,
		ReporterID:     reporter.ID,
		Reporter:       reporter,
		AssignedToID:   input.AssignedToID,
		AssignedTo:     assignee,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: reporterID, Role: reporter.Role},
		Payload: events.TicketCreatedPayload{
			Title:        ticket.Title,
			ReporterID:   ticket.ReporterID,
			AssignedToID: ticket.AssignedToID,
		},
	})
	return ticket, nil
}

// UpdateStatus changes a ticket's status. Admins may set any status, the
// transition table notwithstanding; resolvers may only advance tickets
// assigned to them along the legal workflow; reporters may never change
// status. Reaching Resolved stamps the closed timestamp, and a forced move
// off Resolved clears it.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, next domain.TicketStatus, actorID string, role domain.Role) (*domain.Ticket, error) {
	if !next.Valid() {
		return nil, apperrors.NewValidationError("unknown status value", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, apperrors.MapError(err)
	}

	switch role {
	case domain.RoleAdmin:
		// unrestricted on purpose
	case domain.RoleResolver:
		if ticket.AssignedToID == nil || *ticket.AssignedToID != actorID {
			return nil, apperrors.NewForbidden("only tickets assigned to you can be updated")
		}
		if !policy.IsValidTransition(ticket.Status, next) {
			return nil, apperrors.NewForbidden("invalid status transition: " + ticket.Status.String() + " -> " + next.String())
		}
	default:
		return nil, apperrors.NewForbidden("reporters cannot change ticket status")
	}

	oldStatus := ticket.Status
	ticket.Status = next
	if next == domain.StatusResolved {
		now := time.Now()
		ticket.ClosedAt = &now
	} else if ticket.ClosedAt != nil {
		ticket.ClosedAt = nil
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: actorID, Role: role},
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: next,
		},
	})
	return ticket, nil
}

// AssignTicket sets or clears the assignee. Admin only; the assignee must
// hold the Resolver or Admin role.
func (s *TicketService) AssignTicket(ctx context.Context, ticketID string, assigneeID *string, actorID string, role domain.Role) (*domain.Ticket, error) {
	if role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("only admins can assign tickets")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, apperrors.MapError(err)
	}

	var assignee *domain.User
	if assigneeID != nil {
		assignee, err = s.lookupAssignee(ctx, *assigneeID)
		if err != nil {
			return nil, err
		}
	}

	ticket.AssignedToID = assigneeID
	ticket.AssignedTo = assignee
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: actorID, Role: role},
		Payload:  events.TicketAssignedPayload{AssignedToID: assigneeID},
	})
	return ticket, nil
}

func (s *TicketService) lookupAssignee(ctx context.Context, assigneeID string) (*domain.User, error) {
	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignee", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if !assignee.Role.CanResolve() {
		return nil, apperrors.NewValidationError("tickets can only be assigned to a Resolver or Admin", nil)
	}
	return assignee, nil
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
