package model

import (
	"time"

	"github.com/google/uuid"
)

type MembershipStatus string

const (
	MembershipStatusActive   MembershipStatus = "active"
	MembershipStatusInactive MembershipStatus = "inactive"
)

func (s MembershipStatus) Valid() bool {
	return s == MembershipStatusActive || s == MembershipStatusInactive
}

// Company is a service-providing business listed in the directory.
// A company is created inactive with no expiry; the membership lifecycle
// engine owns all transitions of MembershipStatus and MembershipExpiresAt.
type Company struct {
	Base
	Name                string           `json:"name" db:"name"`
	Email               string           `json:"email" db:"email"`
	Phone               string           `json:"phone" db:"phone"`
	CityID              uuid.UUID        `json:"city_id" db:"city_id"`
	SectorID            uuid.UUID        `json:"sector_id" db:"sector_id"`
	About               string           `json:"about" db:"about"`
	MembershipStatus    MembershipStatus `json:"membership_status" db:"membership_status"`
	MembershipExpiresAt *time.Time       `json:"membership_expires_at,omitempty" db:"membership_expires_at"`
}

// MembershipPeriod is one append-only history row per renewal, extension
// or grant. Immutable except NotificationSent, which records the last
// warning threshold (in days) already sent for the period.
type MembershipPeriod struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	CompanyID        uuid.UUID  `json:"company_id" db:"company_id"`
	Status           string     `json:"status" db:"status"`
	StartDate        time.Time  `json:"start_date" db:"start_date"`
	EndDate          time.Time  `json:"end_date" db:"end_date"`
	PaymentDate      *time.Time `json:"payment_date,omitempty" db:"payment_date"`
	PaymentAmount    float64    `json:"payment_amount" db:"payment_amount"`
	NotificationSent int        `json:"notification_sent" db:"notification_sent"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}

type CompanyFilters struct {
	CityID   *uuid.UUID
	SectorID *uuid.UUID
	Status   MembershipStatus
}
