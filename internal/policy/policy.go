// Package policy holds the access and status-transition rules shared by the
// ticket and message services. Both functions are pure: they never touch the
// store and never return errors, callers translate a false result into the
// appropriate failure.
package policy

import "github.com/ticketreport/backend/internal/domain"

// CanAccess decides whether an actor may read a ticket or post messages to
// it. Admins see everything, reporters see their own tickets, resolvers see
// tickets they reported or are assigned to.
func CanAccess(ticket *domain.Ticket, actorID string, role domain.Role) bool {
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleReporter:
		return ticket.ReporterID == actorID
	case domain.RoleResolver:
		if ticket.ReporterID == actorID {
			return true
		}
		return ticket.AssignedToID != nil && *ticket.AssignedToID == actorID
	default:
		return false
	}
}

var allowedTransitions = map[domain.TicketStatus]domain.TicketStatus{
	domain.StatusPending:       domain.StatusInProgress,
	domain.StatusInProgress:    domain.StatusFinalAnalysis,
	domain.StatusFinalAnalysis: domain.StatusResolved,
}

// IsValidTransition reports whether a status move follows the linear
// workflow Pending -> InProgress -> FinalAnalysis -> Resolved. Resolved is
// terminal; no-ops and backward moves are rejected. Admins bypass this check
// entirely in the ticket service (intentional privilege).
func IsValidTransition(current, next domain.TicketStatus) bool {
	allowed, ok := allowedTransitions[current]
	return ok && allowed == next
}
