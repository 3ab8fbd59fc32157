package company

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/repository"
	apperrors "github.com/craftlink/platform-api/pkg/errors"
)

type Service struct {
	repo repository.CompanyRepository
}

func NewService(repo repository.CompanyRepository) *Service {
	return &Service{repo: repo}
}

// Create registers a company. New companies start inactive with no
// expiry; only the membership lifecycle engine activates them.
func (s *Service) Create(ctx context.Context, company *model.Company) error {
	if err := s.validate(company); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	company, err := s.repo.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("company", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return company, nil
}

func (s *Service) Update(ctx context.Context, company *model.Company) error {
	if err := s.validate(company); err != nil {
		return err
	}

	err := s.repo.Update(ctx, company)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("company", err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("company", err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, filters *model.CompanyFilters) ([]*model.Company, error) {
	companies, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return companies, nil
}

func (s *Service) validate(company *model.Company) error {
	if company.Name == "" {
		return apperrors.Validation("company name is required", nil)
	}
	if company.Email == "" {
		return apperrors.Validation("email is required", nil)
	}
	if company.CityID == uuid.Nil {
		return apperrors.Validation("cityId is required", nil)
	}
	if company.SectorID == uuid.Nil {
		return apperrors.Validation("sectorId is required", nil)
	}
	return nil
}
