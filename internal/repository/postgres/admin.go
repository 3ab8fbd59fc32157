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

type adminRepository struct {
	BaseRepository
}

func NewAdminRepository(base BaseRepository) repository.AdminRepository {
	return &adminRepository{base}
}

func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	admin.ID = uuid.New()
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admins (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, admin.ID, admin.Name, admin.Email, admin.PasswordHash, admin.Role, admin.CreatedAt, admin.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.GetContext(ctx, &admin, `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM admins
		WHERE email = $1
	`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}
