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

type supportTicketRepository struct {
	BaseRepository
}

func NewSupportTicketRepository(base BaseRepository) repository.SupportTicketRepository {
	return &supportTicketRepository{base}
}

func (r *supportTicketRepository) Create(ctx context.Context, ticket *model.SupportTicket) error {
	ticket.ID = uuid.New()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = time.Now()
	ticket.Status = model.TicketStatusOpen

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO support_tickets (
			id, opened_by_id, opened_by_type, opener_email, subject,
			message, answer, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		ticket.ID,
		ticket.OpenedByID,
		ticket.OpenedByType,
		ticket.OpenerEmail,
		ticket.Subject,
		ticket.Message,
		ticket.Answer,
		ticket.Status,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create support ticket: %w", err)
	}
	return nil
}

func (r *supportTicketRepository) Get(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error) {
	var ticket model.SupportTicket
	err := r.db.GetContext(ctx, &ticket, `
		SELECT id, opened_by_id, opened_by_type, opener_email, subject,
		       message, answer, status, created_at, updated_at
		FROM support_tickets
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get support ticket: %w", err)
	}
	return &ticket, nil
}

func (r *supportTicketRepository) Update(ctx context.Context, ticket *model.SupportTicket) error {
	ticket.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, `
		UPDATE support_tickets
		SET answer = $1, status = $2, updated_at = $3
		WHERE id = $4
	`, ticket.Answer, ticket.Status, ticket.UpdatedAt, ticket.ID)
	if err != nil {
		return fmt.Errorf("failed to update support ticket: %w", err)
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

func (r *supportTicketRepository) List(ctx context.Context, status model.TicketStatus) ([]*model.SupportTicket, error) {
	query := `
		SELECT id, opened_by_id, opened_by_type, opener_email, subject,
		       message, answer, status, created_at, updated_at
		FROM support_tickets
	`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	var tickets []*model.SupportTicket
	if err := r.db.SelectContext(ctx, &tickets, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list support tickets: %w", err)
	}
	return tickets, nil
}
