package assessment

import "context"

type AssessmentRepository interface {
	// Create inserts a new assessment. The table carries a unique constraint
	// on (intern_id, week_number); violations come back as ErrDuplicateWeek.
	Create(ctx context.Context, a PerformanceAssessment) (PerformanceAssessment, error)

	GetByID(ctx context.Context, id string) (PerformanceAssessment, error)

	// NextWeekNumber returns MAX(week_number)+1 for the intern, starting at 1.
	NextWeekNumber(ctx context.Context, internID string) (int, error)

	// SetSelfAssessment records the intern's score/note and advances a draft
	// to submitted in the same statement. Status never regresses.
	SetSelfAssessment(ctx context.Context, id string, score int, note string) (PerformanceAssessment, error)

	// SetReview records the supervisor's score/notes and sets the status to
	// reviewed regardless of the prior status.
	SetReview(ctx context.Context, id string, score int, note, ackNote string) (PerformanceAssessment, error)

	List(ctx context.Context, filter AssessmentFilter) ([]PerformanceAssessment, int64, error)
}
