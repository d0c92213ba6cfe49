package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ticketreport/backend/internal/domain"
)

func ticketWith(reporterID string, assigneeID *string) *domain.Ticket {
	return &domain.Ticket{
		ID:           "ticket-1",
		ReporterID:   reporterID,
		AssignedToID: assigneeID,
	}
}

func TestCanAccess(t *testing.T) {
	assignee := "resolver-1"

	tests := []struct {
		name     string
		ticket   *domain.Ticket
		actorID  string
		role     domain.Role
		expected bool
	}{
		{"admin always", ticketWith("reporter-1", nil), "someone-else", domain.RoleAdmin, true},
		{"reporter owns ticket", ticketWith("reporter-1", nil), "reporter-1", domain.RoleReporter, true},
		{"reporter other ticket", ticketWith("reporter-1", nil), "reporter-2", domain.RoleReporter, false},
		{"resolver assigned", ticketWith("reporter-1", &assignee), "resolver-1", domain.RoleResolver, true},
		{"resolver reported", ticketWith("resolver-1", nil), "resolver-1", domain.RoleResolver, true},
		{"resolver unrelated", ticketWith("reporter-1", &assignee), "resolver-2", domain.RoleResolver, false},
		{"resolver unassigned ticket", ticketWith("reporter-1", nil), "resolver-1", domain.RoleResolver, false},
		{"unknown role", ticketWith("reporter-1", nil), "reporter-1", domain.Role(42), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanAccess(tt.ticket, tt.actorID, tt.role))
		})
	}
}

func TestIsValidTransition(t *testing.T) {
	statuses := []domain.TicketStatus{
		domain.StatusPending,
		domain.StatusInProgress,
		domain.StatusFinalAnalysis,
		domain.StatusResolved,
	}
	valid := map[[2]domain.TicketStatus]bool{
		{domain.StatusPending, domain.StatusInProgress}:       true,
		{domain.StatusInProgress, domain.StatusFinalAnalysis}: true,
		{domain.StatusFinalAnalysis, domain.StatusResolved}:   true,
	}

	// Every pair, including no-ops and backward moves, must match the
	// three-entry table exactly.
	for _, current := range statuses {
		for _, next := range statuses {
			expected := valid[[2]domain.TicketStatus{current, next}]
			assert.Equal(t, expected, IsValidTransition(current, next),
				"%s -> %s", current, next)
		}
	}
}

func TestResolvedIsTerminal(t *testing.T) {
	for next := domain.StatusPending; next <= domain.StatusResolved; next++ {
		assert.False(t, IsValidTransition(domain.StatusResolved, next))
	}
}
