package activitylog

import "time"

// EntityKind tags the affected entity, resolved explicitly per kind.
type EntityKind string

const (
	EntityUser           EntityKind = "user"
	EntityInternProfile  EntityKind = "intern_profile"
	EntityBranch         EntityKind = "branch"
	EntitySchool         EntityKind = "school"
	EntityAttendance     EntityKind = "attendance"
	EntityAbsenceRequest EntityKind = "absence_request"
	EntityAssessment     EntityKind = "assessment"
)

// Entry is one audit record. Entries are written by explicit calls at the
// end of workflow transitions; failures are logged and never propagate.
type Entry struct {
	ID         string
	ActorID    *string
	Action     string
	EntityKind *EntityKind
	EntityID   *string
	Metadata   map[string]interface{}
	IPAddress  *string
	UserAgent  string
	CreatedAt  time.Time
}
