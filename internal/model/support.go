package model

import (
	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusAnswered TicketStatus = "answered"
	TicketStatusClosed   TicketStatus = "closed"
)

// SupportTicket is a question raised by a user or company account.
type SupportTicket struct {
	Base
	OpenedByID   uuid.UUID    `json:"opened_by_id" db:"opened_by_id"`
	OpenedByType AccountType  `json:"opened_by_type" db:"opened_by_type"`
	OpenerEmail  string       `json:"opener_email" db:"opener_email"`
	Subject      string       `json:"subject" db:"subject"`
	Message      string       `json:"message" db:"message"`
	Answer       *string      `json:"answer,omitempty" db:"answer"`
	Status       TicketStatus `json:"status" db:"status"`
}
