package faq

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
	repo repository.FAQRepository
}

func NewService(repo repository.FAQRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, faq *model.FAQ) error {
	if faq.Question == "" || faq.Answer == "" {
		return apperrors.Validation("question and answer are required", nil)
	}
	if err := s.repo.Create(ctx, faq); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) Update(ctx context.Context, faq *model.FAQ) error {
	if faq.Question == "" || faq.Answer == "" {
		return apperrors.Validation("question and answer are required", nil)
	}

	err := s.repo.Update(ctx, faq)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("faq", err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("faq", err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.FAQ, error) {
	faqs, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return faqs, nil
}
