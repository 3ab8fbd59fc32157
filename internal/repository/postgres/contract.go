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

type contractEventRepository struct {
	BaseRepository
}

func NewContractEventRepository(base BaseRepository) repository.ContractEventRepository {
	return &contractEventRepository{base}
}

func (r *contractEventRepository) Create(ctx context.Context, event *model.ContractEvent) error {
	query := `
		INSERT INTO contract_events (
			id, conversation_id, user_id, company_id, action, reason,
			created_by_type, created_by_id, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	event.Status = model.ContractEventStatusPending

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.ConversationID,
		event.UserID,
		event.CompanyID,
		event.Action,
		event.Reason,
		event.CreatedByType,
		event.CreatedByID,
		event.Status,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contract event: %w", err)
	}
	return nil
}

func (r *contractEventRepository) Get(ctx context.Context, id uuid.UUID) (*model.ContractEvent, error) {
	query := `
		SELECT id, conversation_id, user_id, company_id, action, reason,
		       created_by_type, created_by_id, status, created_at
		FROM contract_events
		WHERE id = $1
	`
	var event model.ContractEvent
	err := r.db.GetContext(ctx, &event, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contract event: %w", err)
	}
	return &event, nil
}

func (r *contractEventRepository) List(ctx context.Context, filters *model.ContractEventFilters) ([]*model.ContractEvent, error) {
	query := `
		SELECT id, conversation_id, user_id, company_id, action, reason,
		       created_by_type, created_by_id, status, created_at
		FROM contract_events
		WHERE 1=1
	`
	args := []interface{}{}

	if filters != nil {
		if filters.Status != "" {
			args = append(args, filters.Status)
			query += fmt.Sprintf(" AND status = $%d", len(args))
		}
		if filters.Action != "" {
			args = append(args, filters.Action)
			query += fmt.Sprintf(" AND action = $%d", len(args))
		}
		if filters.ConversationID != nil {
			args = append(args, *filters.ConversationID)
			query += fmt.Sprintf(" AND conversation_id = $%d", len(args))
		}
	}
	query += " ORDER BY created_at DESC, id DESC"

	var events []*model.ContractEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list contract events: %w", err)
	}
	return events, nil
}

func (r *contractEventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ContractEventStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE contract_events
		SET status = $1
		WHERE id = $2
	`, status, id)
	if err != nil {
		return false, fmt.Errorf("failed to update contract event status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *contractEventRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM contract_events WHERE status = $1
	`, model.ContractEventStatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending contract events: %w", err)
	}
	return count, nil
}
