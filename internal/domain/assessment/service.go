package assessment

import (
	"context"

	"github.com/internhub/internship-backend-go/internal/domain/user"
)

type AssessmentService interface {
	// Create opens a weekly assessment for an intern. Supervisor-or-above;
	// supervisors only for their own interns.
	Create(ctx context.Context, principal user.Principal, req CreateRequest) (AssessmentResponse, error)

	// SelfAssess records the owning intern's score and reflection, moving a
	// draft to submitted.
	SelfAssess(ctx context.Context, principal user.Principal, assessmentID string, req SelfAssessRequest) (AssessmentResponse, error)

	// Review records the supervisor's score and closes the assessment as
	// reviewed. Only the original assessor or a manager/admin may review.
	Review(ctx context.Context, principal user.Principal, assessmentID string, req ReviewRequest) (AssessmentResponse, error)

	Get(ctx context.Context, principal user.Principal, assessmentID string) (AssessmentResponse, error)
	MyAssessments(ctx context.Context, principal user.Principal, filter AssessmentFilter) (ListAssessmentsResponse, error)
	List(ctx context.Context, principal user.Principal, filter AssessmentFilter) (ListAssessmentsResponse, error)
}
