package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/repository"
)

type membershipRepository struct {
	BaseRepository
}

func NewMembershipRepository(base BaseRepository) repository.MembershipRepository {
	return &membershipRepository{base}
}

// ApplyRenewal flips the company active with its new expiry and appends the
// period row. Both writes share one transaction so a crash cannot leave a
// renewed company without its history row.
func (r *membershipRepository) ApplyRenewal(ctx context.Context, companyID uuid.UUID, expiresAt time.Time, period *model.MembershipPeriod) error {
	period.ID = uuid.New()
	period.CompanyID = companyID
	period.CreatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE companies
			SET membership_status = $1, membership_expires_at = $2, updated_at = $3
			WHERE id = $4
		`, model.MembershipStatusActive, expiresAt, time.Now(), companyID)
		if err != nil {
			return fmt.Errorf("failed to update membership: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return sql.ErrNoRows
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO membership_periods (
				id, company_id, status, start_date, end_date,
				payment_date, payment_amount, notification_sent, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			period.ID,
			period.CompanyID,
			period.Status,
			period.StartDate,
			period.EndDate,
			period.PaymentDate,
			period.PaymentAmount,
			period.NotificationSent,
			period.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert membership period: %w", err)
		}
		return nil
	})
}

func (r *membershipRepository) SetStatus(ctx context.Context, companyID uuid.UUID, status model.MembershipStatus) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE companies
		SET membership_status = $1, updated_at = $2
		WHERE id = $3
	`, status, time.Now(), companyID)
	if err != nil {
		return fmt.Errorf("failed to set membership status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *membershipRepository) ListActive(ctx context.Context) ([]*model.Company, error) {
	query := `
		SELECT id, name, email, phone, city_id, sector_id, about,
		       membership_status, membership_expires_at, created_at, updated_at
		FROM companies
		WHERE membership_status = $1 AND membership_expires_at IS NOT NULL
	`
	var companies []*model.Company
	if err := r.db.SelectContext(ctx, &companies, query, model.MembershipStatusActive); err != nil {
		return nil, fmt.Errorf("failed to list active memberships: %w", err)
	}
	return companies, nil
}

// ListWithMembership returns all companies ordered active-first, then by
// expiry ascending, for the admin membership console.
func (r *membershipRepository) ListWithMembership(ctx context.Context) ([]*model.Company, error) {
	query := `
		SELECT id, name, email, phone, city_id, sector_id, about,
		       membership_status, membership_expires_at, created_at, updated_at
		FROM companies
		ORDER BY (membership_status = 'active') DESC,
		         membership_expires_at ASC NULLS LAST
	`
	var companies []*model.Company
	if err := r.db.SelectContext(ctx, &companies, query); err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return companies, nil
}

// CurrentPeriod returns the latest period row whose end date matches the
// company's current expiry, or nil when none exists.
func (r *membershipRepository) CurrentPeriod(ctx context.Context, companyID uuid.UUID, endDate time.Time) (*model.MembershipPeriod, error) {
	query := `
		SELECT id, company_id, status, start_date, end_date,
		       payment_date, payment_amount, notification_sent, created_at
		FROM membership_periods
		WHERE company_id = $1 AND end_date = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	var period model.MembershipPeriod
	err := r.db.GetContext(ctx, &period, query, companyID, endDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current period: %w", err)
	}
	return &period, nil
}

func (r *membershipRepository) SetPeriodNotificationSent(ctx context.Context, periodID uuid.UUID, threshold int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE membership_periods
		SET notification_sent = $1
		WHERE id = $2
	`, threshold, periodID)
	if err != nil {
		return fmt.Errorf("failed to record warning threshold: %w", err)
	}
	return nil
}

func (r *membershipRepository) ListPeriods(ctx context.Context, companyID uuid.UUID) ([]*model.MembershipPeriod, error) {
	query := `
		SELECT id, company_id, status, start_date, end_date,
		       payment_date, payment_amount, notification_sent, created_at
		FROM membership_periods
		WHERE company_id = $1
		ORDER BY created_at DESC
	`
	var periods []*model.MembershipPeriod
	if err := r.db.SelectContext(ctx, &periods, query, companyID); err != nil {
		return nil, fmt.Errorf("failed to list membership periods: %w", err)
	}
	return periods, nil
}
