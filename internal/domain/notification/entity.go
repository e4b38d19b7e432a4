package notification

import "time"

// Type is the visual type of a notification.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// Category groups notifications for filtering and email preference gating.
type Category string

const (
	CategoryAttendance  Category = "attendance"
	CategoryAssessment  Category = "assessment"
	CategoryAbsenteeism Category = "absenteeism"
	CategoryOnboarding  Category = "onboarding"
	CategorySystem      Category = "system"
	CategoryGeneral     Category = "general"
)

// EntityKind tags which entity a notification points at, resolved explicitly
// per kind instead of via runtime type introspection.
type EntityKind string

const (
	EntityAttendance     EntityKind = "attendance"
	EntityAbsenceRequest EntityKind = "absence_request"
	EntityAssessment     EntityKind = "assessment"
)

type Notification struct {
	ID          string
	RecipientID string
	Title       string
	Message     string
	Type        Type
	Category    Category
	ActionURL   string
	EntityKind  *EntityKind
	EntityID    *string
	IsRead      bool
	ReadAt      *time.Time
	EmailSent   bool
	EmailSentAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Preference holds a user's delivery settings. One row per user, lazily
// created with defaults on first use.
type Preference struct {
	ID                        string
	UserID                    string
	EmailOnAttendanceApproval bool
	EmailOnAssessmentCreated  bool
	EmailOnAssessmentReviewed bool
	EmailOnAbsenceStatus      bool
	EmailOnOnboarding         bool
	InAppNotifications        bool
	DailyDigest               bool
	WeeklyDigest              bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// DefaultPreference returns the settings applied to users who never saved any.
func DefaultPreference(userID string) Preference {
	return Preference{
		UserID:                    userID,
		EmailOnAttendanceApproval: true,
		EmailOnAssessmentCreated:  true,
		EmailOnAssessmentReviewed: true,
		EmailOnAbsenceStatus:      true,
		EmailOnOnboarding:         true,
		InAppNotifications:        true,
	}
}

// AllowsEmail decides email eligibility for a category. Categories without a
// mapped flag (system, general) are always eligible. in_app_notifications
// acts as a master opt-out and suppresses email as well; this mirrors the
// behavior the product shipped with.
func (p *Preference) AllowsEmail(category Category) bool {
	if !p.InAppNotifications {
		return false
	}

	switch category {
	case CategoryAttendance:
		return p.EmailOnAttendanceApproval
	case CategoryAssessment:
		return p.EmailOnAssessmentCreated || p.EmailOnAssessmentReviewed
	case CategoryAbsenteeism:
		return p.EmailOnAbsenceStatus
	case CategoryOnboarding:
		return p.EmailOnOnboarding
	default:
		return true
	}
}
