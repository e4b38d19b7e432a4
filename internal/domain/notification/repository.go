package notification

import (
	"context"
	"time"
)

// Repository defines the notification repository interface
type Repository interface {
	// Notifications CRUD
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	GetByRecipient(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*Notification, int, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, ids []string, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string, userID string) error

	// MarkEmailSent records a successful email delivery for a notification.
	MarkEmailSent(ctx context.Context, id string, sentAt time.Time) error

	// Preferences
	GetPreference(ctx context.Context, userID string) (*Preference, error)
	UpsertPreference(ctx context.Context, pref *Preference) error
}
