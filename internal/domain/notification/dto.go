package notification

import "time"

// CreateNotificationRequest is what workflow services hand to the dispatcher.
type CreateNotificationRequest struct {
	RecipientID string
	Title       string
	Message     string
	Type        Type
	Category    Category
	ActionURL   string
	EntityKind  *EntityKind
	EntityID    *string
	SendEmail   bool
}

type NotificationResponse struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Message    string      `json:"message"`
	Type       Type        `json:"type"`
	Category   Category    `json:"category"`
	ActionURL  string      `json:"action_url,omitempty"`
	EntityKind *EntityKind `json:"entity_kind,omitempty"`
	EntityID   *string     `json:"entity_id,omitempty"`
	IsRead     bool        `json:"is_read"`
	ReadAt     *time.Time  `json:"read_at,omitempty"`
	EmailSent  bool        `json:"email_sent"`
	CreatedAt  time.Time   `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

type PreferenceResponse struct {
	EmailOnAttendanceApproval bool `json:"email_on_attendance_approval"`
	EmailOnAssessmentCreated  bool `json:"email_on_assessment_created"`
	EmailOnAssessmentReviewed bool `json:"email_on_assessment_reviewed"`
	EmailOnAbsenceStatus      bool `json:"email_on_absence_status"`
	EmailOnOnboarding         bool `json:"email_on_onboarding"`
	InAppNotifications        bool `json:"in_app_notifications"`
	DailyDigest               bool `json:"daily_digest"`
	WeeklyDigest              bool `json:"weekly_digest"`
}

type UpdatePreferenceRequest struct {
	EmailOnAttendanceApproval bool `json:"email_on_attendance_approval"`
	EmailOnAssessmentCreated  bool `json:"email_on_assessment_created"`
	EmailOnAssessmentReviewed bool `json:"email_on_assessment_reviewed"`
	EmailOnAbsenceStatus      bool `json:"email_on_absence_status"`
	EmailOnOnboarding         bool `json:"email_on_onboarding"`
	InAppNotifications        bool `json:"in_app_notifications"`
	DailyDigest               bool `json:"daily_digest"`
	WeeklyDigest              bool `json:"weekly_digest"`
}

type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
