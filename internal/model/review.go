package model

import (
	"github.com/google/uuid"
)

// Review is a user's rating of a company.
type Review struct {
	Base
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	CompanyID uuid.UUID `json:"company_id" db:"company_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
}
