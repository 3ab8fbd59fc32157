package model

import (
	"time"

	"github.com/google/uuid"
)

type ContractAction string

const (
	ContractActionCompleted ContractAction = "completed"
	ContractActionCancelled ContractAction = "cancelled"
)

func (a ContractAction) Valid() bool {
	return a == ContractActionCompleted || a == ContractActionCancelled
}

type ContractEventStatus string

const (
	ContractEventStatusPending  ContractEventStatus = "pending"
	ContractEventStatusReviewed ContractEventStatus = "reviewed"
)

func (s ContractEventStatus) Valid() bool {
	return s == ContractEventStatusPending || s == ContractEventStatusReviewed
}

// MaxContractReasonLen bounds the free-text cancellation reason.
const MaxContractReasonLen = 2000

// ContractEvent records one party's declaration that the contract behind a
// conversation was completed or cancelled. A conversation may accumulate
// several events, one per party or repeated submissions; disagreement
// between the parties is data, not an error. Immutable except Status.
type ContractEvent struct {
	ID             uuid.UUID           `json:"id" db:"id"`
	ConversationID uuid.UUID           `json:"conversation_id" db:"conversation_id"`
	UserID         uuid.UUID           `json:"user_id" db:"user_id"`
	CompanyID      uuid.UUID           `json:"company_id" db:"company_id"`
	Action         ContractAction      `json:"action" db:"action"`
	Reason         *string             `json:"reason,omitempty" db:"reason"`
	CreatedByType  AccountType         `json:"created_by_type" db:"created_by_type"`
	CreatedByID    uuid.UUID           `json:"created_by_id" db:"created_by_id"`
	Status         ContractEventStatus `json:"status" db:"status"`
	CreatedAt      time.Time           `json:"created_at" db:"created_at"`
}

// ContractEventFilters are conjunctive; zero values mean "no filter".
type ContractEventFilters struct {
	Status         ContractEventStatus
	Action         ContractAction
	ConversationID *uuid.UUID
}
