package notification

import "errors"

// Notification domain errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrPreferenceNotFound   = errors.New("notification preference not found")
	ErrUnauthorized         = errors.New("unauthorized to access this notification")
	ErrInvalidCategory      = errors.New("invalid notification category")
)
