package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ticketreport/backend/internal/domain"
	"github.com/ticketreport/backend/internal/events"
)

func errNoRows() error { return pgx.ErrNoRows }

type mockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *domain.User) error
	UpdateFunc        func(ctx context.Context, user *domain.User) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	ListAllFunc       func(ctx context.Context) ([]domain.User, error)
	ListByRolesFunc   func(ctx context.Context, roles ...domain.Role) ([]domain.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) ListByRoles(ctx context.Context, roles ...domain.Role) ([]domain.User, error) {
	if m.ListByRolesFunc != nil {
		return m.ListByRolesFunc(ctx, roles...)
	}
	return nil, nil
}

type mockTicketRepository struct {
	CreateFunc                   func(ctx context.Context, ticket *domain.Ticket) error
	UpdateFunc                   func(ctx context.Context, ticket *domain.Ticket) error
	GetByIDFunc                  func(ctx context.Context, id string) (*domain.Ticket, error)
	ListAllFunc                  func(ctx context.Context) ([]domain.Ticket, error)
	ListByReporterFunc           func(ctx context.Context, reporterID string) ([]domain.Ticket, error)
	ListByReporterOrAssignedFunc func(ctx context.Context, userID string) ([]domain.Ticket, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ticket)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ticket)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockTicketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockTicketRepository) ListByReporter(ctx context.Context, reporterID string) ([]domain.Ticket, error) {
	if m.ListByReporterFunc != nil {
		return m.ListByReporterFunc(ctx, reporterID)
	}
	return nil, nil
}

func (m *mockTicketRepository) ListByReporterOrAssigned(ctx context.Context, userID string) ([]domain.Ticket, error) {
	if m.ListByReporterOrAssignedFunc != nil {
		return m.ListByReporterOrAssignedFunc(ctx, userID)
	}
	return nil, nil
}

type mockMessageRepository struct {
	CreateFunc       func(ctx context.Context, msg *domain.Message) error
	ListByTicketFunc func(ctx context.Context, ticketID string) ([]domain.Message, error)
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Message, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

type notifyCall struct {
	Recipient string
	Title     string
	Content   string
	Sender    string
}

type mockNotifier struct {
	NotifyFunc func(ctx context.Context, recipientEmail, ticketTitle, messageContent, senderName string) error
	Calls      []notifyCall
}

func (m *mockNotifier) NotifyTicketMessage(ctx context.Context, recipientEmail, ticketTitle, messageContent, senderName string) error {
	m.Calls = append(m.Calls, notifyCall{
		Recipient: recipientEmail,
		Title:     ticketTitle,
		Content:   messageContent,
		Sender:    senderName,
	})
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, recipientEmail, ticketTitle, messageContent, senderName)
	}
	return nil
}

type mockDispatcher struct {
	Published []events.Event
}

func (m *mockDispatcher) Publish(_ context.Context, event events.Event) error {
	m.Published = append(m.Published, event)
	return nil
}

func (m *mockDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}
