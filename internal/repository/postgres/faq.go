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

type faqRepository struct {
	BaseRepository
}

func NewFAQRepository(base BaseRepository) repository.FAQRepository {
	return &faqRepository{base}
}

func (r *faqRepository) Create(ctx context.Context, faq *model.FAQ) error {
	faq.ID = uuid.New()
	faq.CreatedAt = time.Now()
	faq.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO faqs (id, question, answer, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, faq.ID, faq.Question, faq.Answer, faq.Position, faq.CreatedAt, faq.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create faq: %w", err)
	}
	return nil
}

func (r *faqRepository) Get(ctx context.Context, id uuid.UUID) (*model.FAQ, error) {
	var faq model.FAQ
	err := r.db.GetContext(ctx, &faq, `
		SELECT id, question, answer, position, created_at, updated_at
		FROM faqs
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get faq: %w", err)
	}
	return &faq, nil
}

func (r *faqRepository) Update(ctx context.Context, faq *model.FAQ) error {
	faq.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, `
		UPDATE faqs
		SET question = $1, answer = $2, position = $3, updated_at = $4
		WHERE id = $5
	`, faq.Question, faq.Answer, faq.Position, faq.UpdatedAt, faq.ID)
	if err != nil {
		return fmt.Errorf("failed to update faq: %w", err)
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

func (r *faqRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete faq: %w", err)
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

func (r *faqRepository) List(ctx context.Context) ([]*model.FAQ, error) {
	var faqs []*model.FAQ
	err := r.db.SelectContext(ctx, &faqs, `
		SELECT id, question, answer, position, created_at, updated_at
		FROM faqs
		ORDER BY position ASC, created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	return faqs, nil
}
