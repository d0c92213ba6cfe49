package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ticketreport/backend/internal/domain"
	"github.com/ticketreport/backend/internal/events"
)

func newMessageService(tickets *mockTicketRepository, messages *mockMessageRepository, users *mockUserRepository, notifier *mockNotifier, dispatcher *mockDispatcher) *MessageService {
	return NewMessageService(MessageDependencies{
		MessageRepo: messages,
		TicketRepo:  tickets,
		UserRepo:    users,
		Notifier:    notifier,
		Dispatcher:  dispatcher,
		Logger:      zap.NewNop(),
	})
}

func threadFixture() (*domain.Ticket, map[string]*domain.User) {
	reporter := &domain.User{ID: "reporter-1", Name: "Rita", Email: "rita@example.com", Role: domain.RoleReporter}
	resolver := &domain.User{ID: "resolver-1", Name: "Ray", Email: "ray@example.com", Role: domain.RoleResolver}
	admin := &domain.User{ID: "admin-1", Name: "Ada", Email: "ada@example.com", Role: domain.RoleAdmin}
	ticket := &domain.Ticket{
		ID:           "t1",
		Title:        "VPN drops every hour",
		Status:       domain.StatusInProgress,
		ReporterID:   reporter.ID,
		Reporter:     reporter,
		AssignedToID: &resolver.ID,
		AssignedTo:   resolver,
	}
	users := map[string]*domain.User{
		reporter.ID: reporter,
		resolver.ID: resolver,
		admin.ID:    admin,
	}
	return ticket, users
}

func usersRepoFor(byID map[string]*domain.User) *mockUserRepository {
	return &mockUserRepository{
		GetByIDFunc: func(_ context.Context, id string) (*domain.User, error) {
			if u, ok := byID[id]; ok {
				return u, nil
			}
			return nil, errNoRows()
		},
	}
}

func TestAddMessageRejectsOutsiders(t *testing.T) {
	ticket, byID := threadFixture()
	tickets := &mockTicketRepository{
		GetByIDFunc: func(_ context.Context, _ string) (*domain.Ticket, error) {
			return ticket, nil
		},
	}
	notifier := &mockNotifier{}
	svc := newMessageService(tickets, &mockMessageRepository{}, usersRepoFor(byID), notifier, &mockDispatcher{})

	_, err := svc.AddMessage(context.Background(), "t1", "me too", nil, "reporter-2", domain.RoleReporter)
	assertErrCode(t, err, "FORBIDDEN")
	assert.Empty(t, notifier.Calls)
}

func TestAddMessageValidation(t *testing.T) {
	svc := newMessageService(&mockTicketRepository{}, &mockMessageRepository{}, &mockUserRepository{}, &mockNotifier{}, &mockDispatcher{})

	_, err := svc.AddMessage(context.Background(), "t1", "   ", nil, "reporter-1", domain.RoleReporter)
	assertErrCode(t, err, "VALIDATION_FAILED")

	_, err = svc.AddMessage(context.Background(), "missing", "hello", nil, "reporter-1", domain.RoleReporter)
	assertErrCode(t, err, "NOT_FOUND")
}

func TestAddMessageNotifiesOtherParticipants(t *testing.T) {
	ticket, byID := threadFixture()
	tickets := &mockTicketRepository{
		GetByIDFunc: func(_ context.Context, _ string) (*domain.Ticket, error) {
			return ticket, nil
		},
	}
	var stored *domain.Message
	messages := &mockMessageRepository{
		CreateFunc: func(_ context.Context, m *domain.Message) error {
			m.ID = "m1"
			stored = m
			return nil
		},
	}
	notifier := &mockNotifier{}
	dispatcher := &mockDispatcher{}
	svc := newMessageService(tickets, messages, usersRepoFor(byID), notifier, dispatcher)

	msg, err := svc.AddMessage(context.Background(), "t1", "still broken after reboot", nil, "reporter-1", domain.RoleReporter)
	require.NoError(t, err)
	assert.Equal(t, "reporter-1", msg.UserID)
	require.NotNil(t, stored)

	// The reporter wrote the message, so only the assignee hears about it.
	require.Len(t, notifier.Calls, 1)
	assert.Equal(t, "ray@example.com", notifier.Calls[0].Recipient)
	assert.Equal(t, "VPN drops every hour", notifier.Calls[0].Title)
	assert.Equal(t, "Rita", notifier.Calls[0].Sender)

	require.Len(t, dispatcher.Published, 1)
	assert.Equal(t, events.EventMessageAdded, dispatcher.Published[0].Type)
}

func TestAddMessageDeduplicatesSharedEmail(t *testing.T) {
	ticket, byID := threadFixture()
	// Reporter and assignee share an inbox; an admin writes the message.
	ticket.AssignedTo.Email = ticket.Reporter.Email
	tickets := &mockTicketRepository{
		GetByIDFunc: func(_ context.Context, _ string) (*domain.Ticket, error) {
			return ticket, nil
		},
	}
	notifier := &mockNotifier{}
	svc := newMessageService(tickets, &mockMessageRepository{}, usersRepoFor(byID), notifier, &mockDispatcher{})

	_, err := svc.AddMessage(context.Background(), "t1", "escalating this", nil, "admin-1", domain.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, notifier.Calls, 1)
	assert.Equal(t, "rita@example.com", notifier.Calls[0].Recipient)
}

func TestAddMessageSkipsAuthor(t *testing.T) {
	ticket, byID := threadFixture()
	tickets := &mockTicketRepository{
		GetByIDFunc: func(_ context.Context, _ string) (*domain.Ticket, error) {
			return ticket, nil
		},
	}
	notifier := &mockNotifier{}
	svc := newMessageService(tickets, &mockMessageRepository{}, usersRepoFor(byID), notifier, &mockDispatcher{})

	_, err := svc.AddMessage(context.Background(), "t1", "looking into it", nil, "resolver-1", domain.RoleResolver)
	require.NoError(t, err)
	require.Len(t, notifier.Calls, 1)
	assert.Equal(t, "rita@example.com", notifier.Calls[0].Recipient)
}

func TestAddMessageSurvivesNotifierFailure(t *testing.T) {
	ticket, byID := threadFixture()
	tickets := &mockTicketRepository{
		GetByIDFunc: func(_ context.Context, _ string) (*domain.Ticket, error) {
			return ticket, nil
		},
	}
	notifier := &mockNotifier{
		NotifyFunc: func(_ context.Context, _, _, _, _ string) error {
			return errors.New("smtp: connection refused")
		},
	}
	svc := newMessageService(tickets, &mockMessageRepository{}, usersRepoFor(byID), notifier, &mockDispatcher{})

	msg, err := svc.AddMessage(context.Background(), "t1", "any update?", nil, "reporter-1", domain.RoleReporter)
	require.NoError(t, err)
	assert.NotNil(t, msg)
	assert.Len(t, notifier.Calls, 1)
}

func TestContentPreview(t *testing.T) {
	assert.Equal(t, "short", contentPreview("  short  ", 120))
	assert.Equal(t, "0123...", contentPreview("0123456789", 7))

	multibyte := strings.Repeat("é", 10)
	preview := contentPreview(multibyte, 7)
	assert.Equal(t, "éééé...", preview)
	assert.True(t, utf8.ValidString(preview))
}
