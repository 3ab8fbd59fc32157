package contract

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/repository"
	apperrors "github.com/craftlink/platform-api/pkg/errors"
	"github.com/craftlink/platform-api/pkg/logger"
)

// Notifier delivers the best-effort party notifications after an event is
// recorded. Failures are logged, never propagated.
type Notifier interface {
	NotifyAccount(ctx context.Context, accountType model.AccountType, accountID uuid.UUID, message string) error
}

// CreateInput carries one party's declaration.
type CreateInput struct {
	ConversationID uuid.UUID
	UserID         uuid.UUID
	CompanyID      uuid.UUID
	Action         model.ContractAction
	Reason         string
	CreatedByType  model.AccountType
	CreatedByID    uuid.UUID
}

type Servicer interface {
	Create(ctx context.Context, input CreateInput) (*model.ContractEvent, error)
	List(ctx context.Context, filters *model.ContractEventFilters) ([]*model.ContractEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ContractEventStatus) error
	CountPending(ctx context.Context) (int, error)
}

type Service struct {
	repo     repository.ContractEventRepository
	notifier Notifier
	logger   *logger.Logger
}

func NewService(repo repository.ContractEventRepository, notifier Notifier, logger *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// Create records the declaration. A reason is stored only for
// cancellations, truncated to the column bound; completions always store
// NULL regardless of input. No uniqueness per conversation: repeated or
// conflicting declarations from either party are kept.
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.ContractEvent, error) {
	if !input.Action.Valid() {
		return nil, apperrors.Validation("action must be completed or cancelled", nil)
	}
	if !input.CreatedByType.Valid() {
		return nil, apperrors.Validation("createdByType must be user or company", nil)
	}
	if input.ConversationID == uuid.Nil {
		return nil, apperrors.Validation("conversationId is required", nil)
	}

	event := &model.ContractEvent{
		ConversationID: input.ConversationID,
		UserID:         input.UserID,
		CompanyID:      input.CompanyID,
		Action:         input.Action,
		Reason:         cancelReason(input.Action, input.Reason),
		CreatedByType:  input.CreatedByType,
		CreatedByID:    input.CreatedByID,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.notifyParties(ctx, event)
	return event, nil
}

func cancelReason(action model.ContractAction, reason string) *string {
	if action != model.ContractActionCancelled || reason == "" {
		return nil
	}
	// The bound is in characters, not bytes. Slicing the string directly
	// would halve the budget for Arabic text and could split a rune.
	if runes := []rune(reason); len(runes) > model.MaxContractReasonLen {
		reason = string(runes[:model.MaxContractReasonLen])
	}
	return &reason
}

// notifyParties tells both sides of the conversation about the event.
func (s *Service) notifyParties(ctx context.Context, event *model.ContractEvent) {
	var message string
	switch event.Action {
	case model.ContractActionCompleted:
		message = fmt.Sprintf("The contract for conversation %s was marked as completed by the %s.",
			event.ConversationID, event.CreatedByType)
	default:
		message = fmt.Sprintf("The contract for conversation %s was cancelled by the %s.",
			event.ConversationID, event.CreatedByType)
		if event.Reason != nil {
			message = fmt.Sprintf("%s Reason: %s", message, *event.Reason)
		}
	}

	if err := s.notifier.NotifyAccount(ctx, model.AccountTypeUser, event.UserID, message); err != nil {
		s.logger.Error(err, "failed to notify user of contract event")
	}
	if err := s.notifier.NotifyAccount(ctx, model.AccountTypeCompany, event.CompanyID, message); err != nil {
		s.logger.Error(err, "failed to notify company of contract event")
	}
}

func (s *Service) List(ctx context.Context, filters *model.ContractEventFilters) ([]*model.ContractEvent, error) {
	if filters != nil {
		if filters.Status != "" && !filters.Status.Valid() {
			return nil, apperrors.Validation("invalid status filter", nil)
		}
		if filters.Action != "" && !filters.Action.Valid() {
			return nil, apperrors.Validation("invalid action filter", nil)
		}
	}

	events, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return events, nil
}

// UpdateStatus moves an event between pending and reviewed. Both
// directions are allowed; an admin can reopen a reviewed event.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ContractEventStatus) error {
	if !status.Valid() {
		return apperrors.Validation("status must be pending or reviewed", nil)
	}

	affected, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !affected {
		return apperrors.NotFound("contract event", nil)
	}
	return nil
}

func (s *Service) CountPending(ctx context.Context) (int, error) {
	count, err := s.repo.CountPending(ctx)
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	return count, nil
}
