package notification

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/email"
	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/repository"
	apperrors "github.com/craftlink/platform-api/pkg/errors"
	"github.com/craftlink/platform-api/pkg/logger"
	"github.com/craftlink/platform-api/pkg/messaging"
)

// eventChannel carries best-effort notification events for live consumers.
const eventChannel = "notifications"

type Servicer interface {
	Create(ctx context.Context, message string, target model.NotificationTarget, targetEmail *string, createdBy string) (*model.Notification, int, error)
	NotifyAccount(ctx context.Context, accountType model.AccountType, accountID uuid.UUID, message string) error
	ListForRecipient(ctx context.Context, recipient model.Recipient) ([]*model.UserNotificationView, error)
	UnreadCount(ctx context.Context, recipient model.Recipient) (int, error)
	MarkRead(ctx context.Context, userNotificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipient model.Recipient) error
	DeleteMany(ctx context.Context, userNotificationIDs []uuid.UUID) (int64, error)
}

type Service struct {
	repo        repository.NotificationRepository
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	emailSvc    email.Service
	broker      messaging.Broker
	logger      *logger.Logger
	clock       func() time.Time
}

func NewService(
	repo repository.NotificationRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	emailSvc email.Service,
	broker messaging.Broker,
	logger *logger.Logger,
) *Service {
	return &Service{
		repo:        repo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		emailSvc:    emailSvc,
		broker:      broker,
		logger:      logger,
		clock:       time.Now,
	}
}

// Create stores the logical message and fans it out to the audience the
// target names at call time. Accounts created afterwards never receive it
// retroactively. Returns the notification and the assigned row count.
func (s *Service) Create(ctx context.Context, message string, target model.NotificationTarget, targetEmail *string, createdBy string) (*model.Notification, int, error) {
	if message == "" {
		return nil, 0, apperrors.Validation("message is required", nil)
	}
	if target == "" {
		return nil, 0, apperrors.Validation("target is required", nil)
	}
	if target == model.NotificationTargetCustom && (targetEmail == nil || *targetEmail == "") {
		return nil, 0, apperrors.Validation("targetEmail is required for custom notifications", nil)
	}

	notification := &model.Notification{
		Message:     message,
		Target:      target,
		TargetEmail: targetEmail,
		CreatedBy:   createdBy,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	rows, err := s.resolveAudience(ctx, notification)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	if err := s.repo.AssignBatch(ctx, rows); err != nil {
		return nil, 0, apperrors.Internal(err)
	}

	s.publish(ctx, "notification.created", notification)

	if target == model.NotificationTargetCustom {
		if err := s.emailSvc.SendCustom(ctx, *targetEmail, "You have a new notification", message); err != nil {
			s.logger.Error(err, "failed to email custom notification")
		}
	}

	return notification, len(rows), nil
}

// resolveAudience snapshots the recipient set for a target. Unrecognized
// targets broadcast to every account, same as "all".
func (s *Service) resolveAudience(ctx context.Context, notification *model.Notification) ([]*model.UserNotification, error) {
	var rows []*model.UserNotification

	appendIDs := func(ids []uuid.UUID, accountType model.AccountType) {
		for _, id := range ids {
			id := id
			rows = append(rows, &model.UserNotification{
				NotificationID: notification.ID,
				UserID:         &id,
				AccountType:    accountType,
			})
		}
	}

	switch notification.Target {
	case model.NotificationTargetCustom:
		rows = append(rows, &model.UserNotification{
			NotificationID: notification.ID,
			AccountType:    model.AccountTypeUser,
			UserEmail:      notification.TargetEmail,
		})
		return rows, nil
	case model.NotificationTargetUser:
		ids, err := s.userRepo.ListIDs(ctx)
		if err != nil {
			return nil, err
		}
		appendIDs(ids, model.AccountTypeUser)
		return rows, nil
	case model.NotificationTargetCompany:
		ids, err := s.companyRepo.ListIDs(ctx)
		if err != nil {
			return nil, err
		}
		appendIDs(ids, model.AccountTypeCompany)
		return rows, nil
	default:
		userIDs, err := s.userRepo.ListIDs(ctx)
		if err != nil {
			return nil, err
		}
		companyIDs, err := s.companyRepo.ListIDs(ctx)
		if err != nil {
			return nil, err
		}
		appendIDs(userIDs, model.AccountTypeUser)
		appendIDs(companyIDs, model.AccountTypeCompany)
		return rows, nil
	}
}

// NotifyAccount delivers a system message to a single account: one logical
// notification, one delivery row.
func (s *Service) NotifyAccount(ctx context.Context, accountType model.AccountType, accountID uuid.UUID, message string) error {
	if !accountType.Valid() {
		return apperrors.Validation("invalid account type", nil)
	}

	notification := &model.Notification{
		Message:   message,
		Target:    model.NotificationTarget(accountType),
		CreatedBy: "system",
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return apperrors.Internal(err)
	}

	row := &model.UserNotification{
		NotificationID: notification.ID,
		UserID:         &accountID,
		AccountType:    accountType,
	}
	if err := s.repo.AssignBatch(ctx, []*model.UserNotification{row}); err != nil {
		return apperrors.Internal(err)
	}

	s.publish(ctx, "notification.created", notification)
	return nil
}

func (s *Service) ListForRecipient(ctx context.Context, recipient model.Recipient) ([]*model.UserNotificationView, error) {
	views, err := s.repo.ListForRecipient(ctx, recipient)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return views, nil
}

func (s *Service) UnreadCount(ctx context.Context, recipient model.Recipient) (int, error) {
	count, err := s.repo.UnreadCount(ctx, recipient)
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	return count, nil
}

func (s *Service) MarkRead(ctx context.Context, userNotificationID uuid.UUID) error {
	err := s.repo.MarkRead(ctx, userNotificationID, s.clock())
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("notification", err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, recipient model.Recipient) error {
	if err := s.repo.MarkAllRead(ctx, recipient, s.clock()); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) DeleteMany(ctx context.Context, userNotificationIDs []uuid.UUID) (int64, error) {
	if len(userNotificationIDs) == 0 {
		return 0, apperrors.Validation("userNotificationIds is required", nil)
	}

	deleted, err := s.repo.DeleteMany(ctx, userNotificationIDs)
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	return deleted, nil
}

func (s *Service) publish(ctx context.Context, eventType string, payload interface{}) {
	if s.broker == nil {
		return
	}
	msg := messaging.Message{Type: eventType, Payload: payload}
	if err := s.broker.Publish(ctx, eventChannel, msg); err != nil {
		s.logger.Error(err, "failed to publish notification event")
	}
}
