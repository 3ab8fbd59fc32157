package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/repository"
)

type notificationRepository struct {
	BaseRepository
}

func NewNotificationRepository(base BaseRepository) repository.NotificationRepository {
	return &notificationRepository{base}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (
			id, message, target, target_email, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	notification.ID = uuid.New()
	notification.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		notification.ID,
		notification.Message,
		notification.Target,
		notification.TargetEmail,
		notification.CreatedBy,
		notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	query := `
		SELECT id, message, target, target_email, created_by, created_at
		FROM notifications
		WHERE id = $1
	`
	var notification model.Notification
	err := r.db.GetContext(ctx, &notification, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &notification, nil
}

func (r *notificationRepository) AssignBatch(ctx context.Context, rows []*model.UserNotification) error {
	if len(rows) == 0 {
		return nil
	}

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO user_notifications (
				id, notification_id, user_id, account_type, user_email,
				is_read, read_at, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		now := time.Now()
		for _, row := range rows {
			row.ID = uuid.New()
			row.CreatedAt = now
			if _, err := tx.ExecContext(ctx, query,
				row.ID,
				row.NotificationID,
				row.UserID,
				row.AccountType,
				row.UserEmail,
				row.IsRead,
				row.ReadAt,
				row.CreatedAt,
			); err != nil {
				return fmt.Errorf("failed to assign notification: %w", err)
			}
		}
		return nil
	})
}

// recipientClause builds the dual-key match predicate: (user_id AND
// account_type) OR user_email. The keys are ORed, never ANDed.
func recipientClause(recipient model.Recipient, args []interface{}) (string, []interface{}) {
	parts := []string{}

	if recipient.ByID != nil {
		args = append(args, recipient.ByID.UserID)
		userArg := len(args)
		args = append(args, recipient.ByID.AccountType)
		typeArg := len(args)
		parts = append(parts, fmt.Sprintf("(un.user_id = $%d AND un.account_type = $%d)", userArg, typeArg))
	}
	if recipient.ByEmail != nil {
		args = append(args, *recipient.ByEmail)
		parts = append(parts, fmt.Sprintf("un.user_email = $%d", len(args)))
	}
	if len(parts) == 0 {
		return "FALSE", args
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

func (r *notificationRepository) ListForRecipient(ctx context.Context, recipient model.Recipient) ([]*model.UserNotificationView, error) {
	clause, args := recipientClause(recipient, nil)
	query := fmt.Sprintf(`
		SELECT un.id, un.notification_id, un.user_id, un.account_type,
		       un.user_email, un.is_read, un.read_at, un.created_at,
		       n.message, n.target
		FROM user_notifications un
		JOIN notifications n ON n.id = un.notification_id
		WHERE %s
		ORDER BY un.created_at DESC, un.id DESC
	`, clause)

	var views []*model.UserNotificationView
	if err := r.db.SelectContext(ctx, &views, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return views, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, recipient model.Recipient) (int, error) {
	clause, args := recipientClause(recipient, nil)
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM user_notifications un
		WHERE %s AND un.is_read = FALSE
	`, clause)

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead is idempotent: re-marking a read row keeps its original read_at.
func (r *notificationRepository) MarkRead(ctx context.Context, userNotificationID uuid.UUID, readAt time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE user_notifications
		SET is_read = TRUE, read_at = COALESCE(read_at, $1)
		WHERE id = $2
	`, readAt, userNotificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
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

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipient model.Recipient, readAt time.Time) error {
	args := []interface{}{readAt}
	clause, args := recipientClause(recipient, args)
	query := fmt.Sprintf(`
		UPDATE user_notifications un
		SET is_read = TRUE, read_at = $1
		WHERE %s AND un.is_read = FALSE
	`, clause)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// DeleteMany removes delivery rows only. The logical notification row is
// never cascaded, even when its last delivery row goes away.
func (r *notificationRepository) DeleteMany(ctx context.Context, userNotificationIDs []uuid.UUID) (int64, error) {
	if len(userNotificationIDs) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`DELETE FROM user_notifications WHERE id IN (?)`, userNotificationIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}
	query = r.db.Rebind(query)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", err)
	}
	return result.RowsAffected()
}
