package membership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/email"
	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/repository"
	apperrors "github.com/craftlink/platform-api/pkg/errors"
	"github.com/craftlink/platform-api/pkg/logger"
)

// warningThresholds are checked in order; at most one fires per company
// per sweep since daysLeft is a single integer.
var warningThresholds = [3]int{7, 3, 1}

// renewTerms are the purchasable renewal lengths. Extensions are an admin
// correction tool and accept any positive day count; the asymmetry is a
// business rule, not an oversight.
var renewTerms = map[int]bool{30: true, 90: true, 365: true}

// Notifier delivers membership lifecycle messages to a company account.
type Notifier interface {
	NotifyAccount(ctx context.Context, accountType model.AccountType, accountID uuid.UUID, message string) error
}

// SweepResult summarizes one sweep invocation for worker metrics.
type SweepResult struct {
	Expired int
	Warned  map[int]int
}

type Servicer interface {
	Renew(ctx context.Context, companyID uuid.UUID, days int) (time.Time, error)
	Extend(ctx context.Context, companyID uuid.UUID, days int) (time.Time, error)
	Toggle(ctx context.Context, companyID uuid.UUID, status model.MembershipStatus) error
	List(ctx context.Context) ([]*model.Company, error)
	History(ctx context.Context, companyID uuid.UUID) ([]*model.MembershipPeriod, error)
	Sweep(ctx context.Context, now time.Time) (*SweepResult, error)
}

type Service struct {
	repo        repository.MembershipRepository
	companyRepo repository.CompanyRepository
	notifier    Notifier
	emailSvc    email.Service
	logger      *logger.Logger
	clock       func() time.Time
}

func NewService(repo repository.MembershipRepository, companyRepo repository.CompanyRepository, notifier Notifier, emailSvc email.Service, logger *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		companyRepo: companyRepo,
		notifier:    notifier,
		emailSvc:    emailSvc,
		logger:      logger,
		clock:       time.Now,
	}
}

// Renew applies a purchased renewal term.
func (s *Service) Renew(ctx context.Context, companyID uuid.UUID, days int) (time.Time, error) {
	if !renewTerms[days] {
		return time.Time{}, apperrors.Validation("days must be one of 30, 90 or 365", nil)
	}
	return s.apply(ctx, companyID, days)
}

// Extend applies an administrative extension of any positive length.
func (s *Service) Extend(ctx context.Context, companyID uuid.UUID, days int) (time.Time, error) {
	if days <= 0 {
		return time.Time{}, apperrors.Validation("days must be a positive integer", nil)
	}
	return s.apply(ctx, companyID, days)
}

// apply computes the new expiry and persists the renewal. A still-running
// membership extends from its current expiry; a lapsed or absent one
// restarts from now, with no credit for lapsed time.
func (s *Service) apply(ctx context.Context, companyID uuid.UUID, days int) (time.Time, error) {
	company, err := s.companyRepo.Get(ctx, companyID)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, apperrors.NotFound("company", err)
	}
	if err != nil {
		return time.Time{}, apperrors.Internal(err)
	}

	now := s.clock()
	base := now
	if company.MembershipExpiresAt != nil && company.MembershipExpiresAt.After(now) {
		base = *company.MembershipExpiresAt
	}
	newExpiry := base.AddDate(0, 0, days)

	period := &model.MembershipPeriod{
		Status:           string(model.MembershipStatusActive),
		StartDate:        now,
		EndDate:          newExpiry,
		PaymentDate:      &now,
		PaymentAmount:    0,
		NotificationSent: 0,
	}

	if err := s.repo.ApplyRenewal(ctx, companyID, newExpiry, period); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, apperrors.NotFound("company", err)
		}
		return time.Time{}, apperrors.Internal(err)
	}
	return newExpiry, nil
}

// Toggle is a direct administrative override. It never recomputes expiry.
func (s *Service) Toggle(ctx context.Context, companyID uuid.UUID, status model.MembershipStatus) error {
	if !status.Valid() {
		return apperrors.Validation("status must be active or inactive", nil)
	}

	err := s.repo.SetStatus(ctx, companyID, status)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("company", err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Company, error) {
	companies, err := s.repo.ListWithMembership(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return companies, nil
}

func (s *Service) History(ctx context.Context, companyID uuid.UUID) ([]*model.MembershipPeriod, error) {
	periods, err := s.repo.ListPeriods(ctx, companyID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return periods, nil
}

// Sweep expires lapsed memberships and fires staged warnings. Safe to
// rerun within the same day: already-sent thresholds are recorded on the
// period row and skipped.
func (s *Service) Sweep(ctx context.Context, now time.Time) (*SweepResult, error) {
	companies, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active memberships: %w", err)
	}

	result := &SweepResult{Warned: make(map[int]int)}
	for _, company := range companies {
		if company.MembershipExpiresAt == nil {
			continue
		}

		if !company.MembershipExpiresAt.After(now) {
			if err := s.expire(ctx, company); err != nil {
				s.logger.Error(err, "failed to expire membership")
				continue
			}
			result.Expired++
			continue
		}

		threshold, err := s.warn(ctx, company, now)
		if err != nil {
			s.logger.Error(err, "failed to send expiry warning")
			continue
		}
		if threshold > 0 {
			result.Warned[threshold]++
		}
	}
	return result, nil
}

func (s *Service) expire(ctx context.Context, company *model.Company) error {
	if err := s.repo.SetStatus(ctx, company.ID, model.MembershipStatusInactive); err != nil {
		return fmt.Errorf("failed to deactivate company %s: %w", company.ID, err)
	}

	message := fmt.Sprintf("Your membership expired on %s. Renew to reactivate your listing.",
		company.MembershipExpiresAt.Format("2006-01-02"))
	if err := s.notifier.NotifyAccount(ctx, model.AccountTypeCompany, company.ID, message); err != nil {
		// Deactivation already landed; the notification is best-effort.
		s.logger.Error(err, "failed to notify expired company")
	}
	if err := s.emailSvc.SendMembershipExpired(ctx, company.Email, company.Name); err != nil {
		s.logger.Error(err, "failed to email expired company")
	}
	return nil
}

// warn fires the first matching threshold not already recorded for the
// current period. Returns the threshold sent, or 0.
func (s *Service) warn(ctx context.Context, company *model.Company, now time.Time) (int, error) {
	daysLeft := int(math.Ceil(company.MembershipExpiresAt.Sub(now).Hours() / 24))

	for _, threshold := range warningThresholds {
		if daysLeft != threshold {
			continue
		}

		period, err := s.repo.CurrentPeriod(ctx, company.ID, *company.MembershipExpiresAt)
		if err != nil {
			return 0, err
		}
		// NotificationSent holds the last threshold sent and counts down
		// with the period: 7, then 3, then 1. Zero means none sent yet.
		if period == nil || (period.NotificationSent != 0 && period.NotificationSent <= threshold) {
			return 0, nil
		}

		message := fmt.Sprintf("Your membership expires in %d days. Renew to keep your listing active.", threshold)
		if err := s.notifier.NotifyAccount(ctx, model.AccountTypeCompany, company.ID, message); err != nil {
			return 0, err
		}
		if err := s.emailSvc.SendMembershipWarning(ctx, company.Email, company.Name, threshold); err != nil {
			// The in-app warning landed and the threshold is recorded either
			// way; the email is best-effort.
			s.logger.Error(err, "failed to email expiry warning")
		}
		if err := s.repo.SetPeriodNotificationSent(ctx, period.ID, threshold); err != nil {
			return 0, err
		}
		return threshold, nil
	}
	return 0, nil
}
