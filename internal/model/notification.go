package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationTarget string

const (
	NotificationTargetUser    NotificationTarget = "user"
	NotificationTargetCompany NotificationTarget = "company"
	NotificationTargetAll     NotificationTarget = "all"
	NotificationTargetCustom  NotificationTarget = "custom"
)

// Notification is one authored logical message. Immutable once created;
// delivery rows reference it by ID.
type Notification struct {
	ID          uuid.UUID          `json:"id" db:"id"`
	Message     string             `json:"message" db:"message"`
	Target      NotificationTarget `json:"target" db:"target"`
	TargetEmail *string            `json:"target_email,omitempty" db:"target_email"`
	CreatedBy   string             `json:"created_by" db:"created_by"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
}

// UserNotification is one delivery row: one recipient's copy of a logical
// notification. The only entity a recipient may mutate (read state) or
// delete. A recipient is keyed either by (UserID, AccountType) or by
// UserEmail; both keys may be present on a row.
type UserNotification struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	NotificationID uuid.UUID   `json:"notification_id" db:"notification_id"`
	UserID         *uuid.UUID  `json:"user_id,omitempty" db:"user_id"`
	AccountType    AccountType `json:"account_type" db:"account_type"`
	UserEmail      *string     `json:"user_email,omitempty" db:"user_email"`
	IsRead         bool        `json:"is_read" db:"is_read"`
	ReadAt         *time.Time  `json:"read_at,omitempty" db:"read_at"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
}

// UserNotificationView joins a delivery row with its logical content.
type UserNotificationView struct {
	UserNotification
	Message string             `json:"message" db:"message"`
	Target  NotificationTarget `json:"target" db:"target"`
}

// RecipientID addresses a recipient by platform identity.
type RecipientID struct {
	UserID      uuid.UUID
	AccountType AccountType
}

// Recipient is the dual-key recipient address: a delivery row matches when
// it matches ByID or ByEmail (OR, never AND). At least one key is set.
type Recipient struct {
	ByID    *RecipientID
	ByEmail *string
}

// RecipientByID addresses a recipient by (userID, accountType) only.
func RecipientByID(userID uuid.UUID, accountType AccountType) Recipient {
	return Recipient{ByID: &RecipientID{UserID: userID, AccountType: accountType}}
}

// RecipientByEmail addresses a recipient by email only.
func RecipientByEmail(email string) Recipient {
	return Recipient{ByEmail: &email}
}

// WithEmail adds the email key to a recipient address.
func (r Recipient) WithEmail(email string) Recipient {
	r.ByEmail = &email
	return r
}

// Matches reports whether the delivery row n belongs to this recipient.
func (r Recipient) Matches(n *UserNotification) bool {
	if r.ByID != nil && n.UserID != nil &&
		*n.UserID == r.ByID.UserID && n.AccountType == r.ByID.AccountType {
		return true
	}
	if r.ByEmail != nil && n.UserEmail != nil && *n.UserEmail == *r.ByEmail {
		return true
	}
	return false
}
