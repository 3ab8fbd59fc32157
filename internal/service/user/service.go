package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/repository"
	apperrors "github.com/craftlink/platform-api/pkg/errors"
	"github.com/craftlink/platform-api/pkg/security"
)

type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

func (s *Service) Create(ctx context.Context, user *model.User, password string) error {
	if user.Name == "" {
		return apperrors.Validation("name is required", nil)
	}
	if user.Email == "" {
		return apperrors.Validation("email is required", nil)
	}

	if _, err := s.repo.GetByEmail(ctx, user.Email); err == nil {
		return apperrors.Conflict("email already registered", nil)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return apperrors.Internal(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return apperrors.Validation("invalid password", err)
	}
	user.PasswordHash = hash

	if err := s.repo.Create(ctx, user); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("user", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

func (s *Service) Update(ctx context.Context, user *model.User) error {
	if user.Name == "" {
		return apperrors.Validation("name is required", nil)
	}

	err := s.repo.Update(ctx, user)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("user", err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("user", err)
	}
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}
