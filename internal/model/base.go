package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AccountType distinguishes the two kinds of platform accounts.
type AccountType string

const (
	AccountTypeUser    AccountType = "user"
	AccountTypeCompany AccountType = "company"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	return t == AccountTypeUser || t == AccountTypeCompany
}
