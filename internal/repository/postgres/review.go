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

type reviewRepository struct {
	BaseRepository
}

func NewReviewRepository(base BaseRepository) repository.ReviewRepository {
	return &reviewRepository{base}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	review.ID = uuid.New()
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (id, user_id, company_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, review.ID, review.UserID, review.CompanyID, review.Rating, review.Comment, review.CreatedAt, review.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) Get(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	err := r.db.GetContext(ctx, &review, `
		SELECT id, user_id, company_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
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

func (r *reviewRepository) ListForCompany(ctx context.Context, companyID uuid.UUID) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.SelectContext(ctx, &reviews, `
		SELECT id, user_id, company_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE company_id = $1
		ORDER BY created_at DESC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
