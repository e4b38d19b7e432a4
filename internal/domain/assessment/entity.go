package assessment

import "time"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusReviewed  Status = "reviewed"
)

// PerformanceAssessment is one weekly assessment per intern. Status moves
// draft -> submitted -> reviewed and never regresses; a supervisor review
// may jump a draft straight to reviewed when the intern never self-assessed.
type PerformanceAssessment struct {
	ID                  string
	InternID            string
	AssessedBy          *string // user who created/reviews the assessment
	AssessmentDate      time.Time
	PeriodStart         *time.Time
	PeriodEnd           *time.Time
	WeekNumber          int
	Status              Status
	SupervisorScore     *int
	SupervisorNote      string
	InternScore         *int
	InternNote          string
	AcknowledgementNote string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Joined for display
	InternName *string
}

// IsCompleted reports whether the assessment is reviewed with a score.
func (a *PerformanceAssessment) IsCompleted() bool {
	return a.Status == StatusReviewed && a.SupervisorScore != nil
}
