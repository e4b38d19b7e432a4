package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/internhub/internship-backend-go/internal/domain/notification"
	"github.com/internhub/internship-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

const notificationColumns = `
	id, recipient_id, title, message, type, category, action_url,
	entity_kind, entity_id, is_read, read_at,
	email_sent, email_sent_at, created_at, updated_at`

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var n notification.Notification
	err := row.Scan(
		&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Type, &n.Category, &n.ActionURL,
		&n.EntityKind, &n.EntityID, &n.IsRead, &n.ReadAt,
		&n.EmailSent, &n.EmailSentAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create implements notification.Repository.
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (
			recipient_id, title, message, type, category, action_url,
			entity_kind, entity_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		n.RecipientID, n.Title, n.Message, n.Type, n.Category, n.ActionURL,
		n.EntityKind, n.EntityID,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// GetByID implements notification.Repository.
func (r *notificationRepository) GetByID(ctx context.Context, id string) (*notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	n, err := scanNotification(q.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notification.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification by ID: %w", err)
	}

	return n, nil
}

// GetByRecipient implements notification.Repository.
func (r *notificationRepository) GetByRecipient(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE recipient_id = $1`
	if unreadOnly {
		where += ` AND is_read = FALSE`
	}

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`+where, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	query := `SELECT ` + notificationColumns + ` FROM notifications` + where + `
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := q.Query(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, total, rows.Err()
}

// GetUnreadCount implements notification.Repository.
func (r *notificationRepository) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`
	if err := q.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkAsRead implements notification.Repository. The recipient filter stops
// users from marking other users' notifications.
func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []string, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW(), updated_at = NOW()
		WHERE id = ANY($1) AND recipient_id = $2 AND is_read = FALSE
	`

	if _, err := q.Exec(ctx, query, ids, userID); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	return nil
}

// MarkAllAsRead implements notification.Repository.
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW(), updated_at = NOW()
		WHERE recipient_id = $1 AND is_read = FALSE
	`

	if _, err := q.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	return nil
}

// Delete implements notification.Repository.
func (r *notificationRepository) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}

// MarkEmailSent implements notification.Repository.
func (r *notificationRepository) MarkEmailSent(ctx context.Context, id string, sentAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET email_sent = TRUE, email_sent_at = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := q.Exec(ctx, query, sentAt, id); err != nil {
		return fmt.Errorf("failed to mark notification email sent: %w", err)
	}

	return nil
}

// GetPreference implements notification.Repository.
func (r *notificationRepository) GetPreference(ctx context.Context, userID string) (*notification.Preference, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id,
			email_on_attendance_approval, email_on_assessment_created,
			email_on_assessment_reviewed, email_on_absence_status,
			email_on_onboarding, in_app_notifications,
			daily_digest, weekly_digest, created_at, updated_at
		FROM notification_preferences
		WHERE user_id = $1
	`

	var p notification.Preference
	err := q.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID,
		&p.EmailOnAttendanceApproval, &p.EmailOnAssessmentCreated,
		&p.EmailOnAssessmentReviewed, &p.EmailOnAbsenceStatus,
		&p.EmailOnOnboarding, &p.InAppNotifications,
		&p.DailyDigest, &p.WeeklyDigest, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notification.ErrPreferenceNotFound
		}
		return nil, fmt.Errorf("failed to get notification preference: %w", err)
	}

	return &p, nil
}

// UpsertPreference implements notification.Repository.
func (r *notificationRepository) UpsertPreference(ctx context.Context, pref *notification.Preference) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notification_preferences (
			user_id,
			email_on_attendance_approval, email_on_assessment_created,
			email_on_assessment_reviewed, email_on_absence_status,
			email_on_onboarding, in_app_notifications,
			daily_digest, weekly_digest
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			email_on_attendance_approval = EXCLUDED.email_on_attendance_approval,
			email_on_assessment_created = EXCLUDED.email_on_assessment_created,
			email_on_assessment_reviewed = EXCLUDED.email_on_assessment_reviewed,
			email_on_absence_status = EXCLUDED.email_on_absence_status,
			email_on_onboarding = EXCLUDED.email_on_onboarding,
			in_app_notifications = EXCLUDED.in_app_notifications,
			daily_digest = EXCLUDED.daily_digest,
			weekly_digest = EXCLUDED.weekly_digest,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		pref.UserID,
		pref.EmailOnAttendanceApproval, pref.EmailOnAssessmentCreated,
		pref.EmailOnAssessmentReviewed, pref.EmailOnAbsenceStatus,
		pref.EmailOnOnboarding, pref.InAppNotifications,
		pref.DailyDigest, pref.WeeklyDigest,
	).Scan(&pref.ID, &pref.CreatedAt, &pref.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert notification preference: %w", err)
	}

	return nil
}
