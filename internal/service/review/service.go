package review

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
	repo repository.ReviewRepository
}

func NewService(repo repository.ReviewRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, review *model.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return apperrors.Validation("rating must be between 1 and 5", nil)
	}
	if review.UserID == uuid.Nil || review.CompanyID == uuid.Nil {
		return apperrors.Validation("userId and companyId are required", nil)
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// Delete removes a review, but only for its author.
func (s *Service) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	review, err := s.repo.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("review", err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}

	if review.UserID != requesterID {
		return apperrors.Forbidden("cannot delete another user's review", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) ListForCompany(ctx context.Context, companyID uuid.UUID) ([]*model.Review, error) {
	reviews, err := s.repo.ListForCompany(ctx, companyID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return reviews, nil
}
