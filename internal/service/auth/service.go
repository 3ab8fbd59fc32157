package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/repository"
	"github.com/craftlink/platform-api/pkg/auth"
	apperrors "github.com/craftlink/platform-api/pkg/errors"
	"github.com/craftlink/platform-api/pkg/security"
)

type Service struct {
	repo   repository.AdminRepository
	tokens *auth.TokenManager
	hasher security.PasswordHasher
}

func NewService(repo repository.AdminRepository, tokens *auth.TokenManager, hasher security.PasswordHasher) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
	}
}

// Login verifies admin credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.Admin, error) {
	if email == "" || password == "" {
		return "", nil, apperrors.Validation("email and password are required", nil)
	}

	admin, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, apperrors.Unauthorized(err)
	}
	if err != nil {
		return "", nil, apperrors.Internal(err)
	}

	if err := s.hasher.Compare(admin.PasswordHash, password); err != nil {
		return "", nil, apperrors.Unauthorized(err)
	}

	token, err := s.tokens.Generate(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return "", nil, apperrors.Internal(err)
	}
	return token, admin, nil
}

// Register creates an admin account. Called by the API startup seeding,
// not exposed on the public router.
func (s *Service) Register(ctx context.Context, admin *model.Admin, password string) error {
	if admin.Email == "" || admin.Name == "" {
		return apperrors.Validation("name and email are required", nil)
	}

	if _, err := s.repo.GetByEmail(ctx, admin.Email); err == nil {
		return apperrors.Conflict("email already registered", nil)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return apperrors.Internal(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return apperrors.Validation("invalid password", err)
	}
	admin.PasswordHash = hash

	if err := s.repo.Create(ctx, admin); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
