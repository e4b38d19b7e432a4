package notification

import (
	"context"
)

// Service defines the notification dispatch interface
type Service interface {
	// Notify creates the in-app record synchronously, publishes it to live
	// subscribers and, when requested and allowed by the recipient's
	// preferences, queues an email. Email failure never fails the caller.
	Notify(ctx context.Context, req CreateNotificationRequest) (*Notification, error)

	// Direct operations
	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string, notificationID string) error

	// Preferences
	GetPreferences(ctx context.Context, userID string) (PreferenceResponse, error)
	UpdatePreferences(ctx context.Context, userID string, req UpdatePreferenceRequest) error

	// SSE subscription
	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}
