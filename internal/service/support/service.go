package support

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/email"
	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/repository"
	apperrors "github.com/craftlink/platform-api/pkg/errors"
	"github.com/craftlink/platform-api/pkg/logger"
)

// Notifier tells the ticket opener their ticket was answered.
type Notifier interface {
	NotifyAccount(ctx context.Context, accountType model.AccountType, accountID uuid.UUID, message string) error
}

type Service struct {
	repo     repository.SupportTicketRepository
	notifier Notifier
	emailSvc email.Service
	logger   *logger.Logger
}

func NewService(repo repository.SupportTicketRepository, notifier Notifier, emailSvc email.Service, logger *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		emailSvc: emailSvc,
		logger:   logger,
	}
}

func (s *Service) Open(ctx context.Context, ticket *model.SupportTicket) error {
	if ticket.Subject == "" || ticket.Message == "" {
		return apperrors.Validation("subject and message are required", nil)
	}
	if !ticket.OpenedByType.Valid() {
		return apperrors.Validation("openedByType must be user or company", nil)
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// Answer records the admin reply and notifies the opener in-app and by
// email, both best-effort.
func (s *Service) Answer(ctx context.Context, id uuid.UUID, answer string) error {
	if answer == "" {
		return apperrors.Validation("answer is required", nil)
	}

	ticket, err := s.repo.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("ticket", err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}

	ticket.Answer = &answer
	ticket.Status = model.TicketStatusAnswered
	if err := s.repo.Update(ctx, ticket); err != nil {
		return apperrors.Internal(err)
	}

	message := "Your support ticket \"" + ticket.Subject + "\" has been answered."
	if err := s.notifier.NotifyAccount(ctx, ticket.OpenedByType, ticket.OpenedByID, message); err != nil {
		s.logger.Error(err, "failed to notify ticket opener")
	}
	if ticket.OpenerEmail != "" {
		if err := s.emailSvc.SendTicketAnswer(ctx, ticket.OpenerEmail, ticket.Subject, answer); err != nil {
			s.logger.Error(err, "failed to email ticket answer")
		}
	}
	return nil
}

func (s *Service) Close(ctx context.Context, id uuid.UUID) error {
	ticket, err := s.repo.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("ticket", err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}

	ticket.Status = model.TicketStatusClosed
	if err := s.repo.Update(ctx, ticket); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, status model.TicketStatus) ([]*model.SupportTicket, error) {
	tickets, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return tickets, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error) {
	ticket, err := s.repo.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("ticket", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return ticket, nil
}
