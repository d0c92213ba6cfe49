package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. The numeric values
// are the wire encoding in both directions.
type TicketStatus int

const (
	StatusPending       TicketStatus = 0
	StatusInProgress    TicketStatus = 1
	StatusFinalAnalysis TicketStatus = 2
	StatusResolved      TicketStatus = 3
)

// Valid reports whether the status is one of the four defined values.
func (s TicketStatus) Valid() bool {
	return s >= StatusPending && s <= StatusResolved
}

// String returns a readable status name for logs and error messages.
func (s TicketStatus) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "InProgress"
	case StatusFinalAnalysis:
		return "FinalAnalysis"
	case StatusResolved:
		return "Resolved"
	}
	return "Unknown"
}

// Ticket is the aggregate for reported issues.
type Ticket struct {
	ID             string
	Title          string
	Description    string
	Status         TicketStatus
	AttachmentURLs []string
	ReporterID     string
	Reporter       *User
	AssignedToID   *string
	AssignedTo     *User
	CreatedAt      time.Time
	ClosedAt       *time.Time
}
