package domain

import "time"

// Message captures one entry in a ticket's conversation thread. Messages
// are immutable once created.
type Message struct {
	ID            string
	TicketID      string
	UserID        string
	User          *User
	Content       string
	AttachmentURL *string
	CreatedAt     time.Time
}
