package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/repository"
)

type companyRepository struct {
	BaseRepository
}

func NewCompanyRepository(base BaseRepository) repository.CompanyRepository {
	return &companyRepository{base}
}

func (r *companyRepository) Create(ctx context.Context, company *model.Company) error {
	query := `
		INSERT INTO companies (
			id, name, email, phone, city_id, sector_id, about,
			membership_status, membership_expires_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	company.ID = uuid.New()
	company.CreatedAt = time.Now()
	company.UpdatedAt = time.Now()
	company.MembershipStatus = model.MembershipStatusInactive
	company.MembershipExpiresAt = nil

	_, err := r.db.ExecContext(ctx, query,
		company.ID,
		company.Name,
		company.Email,
		company.Phone,
		company.CityID,
		company.SectorID,
		company.About,
		company.MembershipStatus,
		company.MembershipExpiresAt,
		company.CreatedAt,
		company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (r *companyRepository) Get(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	query := `
		SELECT id, name, email, phone, city_id, sector_id, about,
		       membership_status, membership_expires_at, created_at, updated_at
		FROM companies
		WHERE id = $1
	`
	var company model.Company
	err := r.db.GetContext(ctx, &company, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &company, nil
}

func (r *companyRepository) Update(ctx context.Context, company *model.Company) error {
	query := `
		UPDATE companies
		SET name = $1, email = $2, phone = $3, city_id = $4, sector_id = $5,
		    about = $6, updated_at = $7
		WHERE id = $8
	`
	company.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		company.Name,
		company.Email,
		company.Phone,
		company.CityID,
		company.SectorID,
		company.About,
		company.UpdatedAt,
		company.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
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

func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
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

func (r *companyRepository) List(ctx context.Context, filters *model.CompanyFilters) ([]*model.Company, error) {
	query := `
		SELECT id, name, email, phone, city_id, sector_id, about,
		       membership_status, membership_expires_at, created_at, updated_at
		FROM companies
		WHERE 1=1
	`
	args := []interface{}{}

	if filters != nil {
		if filters.CityID != nil {
			args = append(args, *filters.CityID)
			query += fmt.Sprintf(" AND city_id = $%d", len(args))
		}
		if filters.SectorID != nil {
			args = append(args, *filters.SectorID)
			query += fmt.Sprintf(" AND sector_id = $%d", len(args))
		}
		if filters.Status != "" {
			args = append(args, filters.Status)
			query += fmt.Sprintf(" AND membership_status = $%d", len(args))
		}
	}
	query += " ORDER BY created_at DESC"

	var companies []*model.Company
	if err := r.db.SelectContext(ctx, &companies, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

func (r *companyRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM companies`); err != nil {
		return nil, fmt.Errorf("failed to list company ids: %w", err)
	}
	return ids, nil
}
