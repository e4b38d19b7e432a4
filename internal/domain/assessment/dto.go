package assessment

import (
	"github.com/internhub/internship-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	InternID    string  `json:"intern_id"`
	WeekNumber  int     `json:"week_number"` // 0 = auto-increment per intern
	PeriodStart *string `json:"period_start"`
	PeriodEnd   *string `json:"period_end"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.InternID) {
		errs = append(errs, validator.ValidationError{
			Field:   "intern_id",
			Message: "intern_id is required",
		})
	}

	if r.WeekNumber < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "week_number",
			Message: "week_number must not be negative",
		})
	}

	if r.PeriodStart != nil && *r.PeriodStart != "" {
		if _, ok := validator.IsValidDate(*r.PeriodStart); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "period_start",
				Message: "period_start must be YYYY-MM-DD",
			})
		}
	}
	if r.PeriodEnd != nil && *r.PeriodEnd != "" {
		if _, ok := validator.IsValidDate(*r.PeriodEnd); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "period_end",
				Message: "period_end must be YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SelfAssessRequest struct {
	Score int    `json:"score"`
	Note  string `json:"note"`
}

func (r *SelfAssessRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidScore(r.Score) {
		errs = append(errs, validator.ValidationError{
			Field:   "score",
			Message: "score must be between 0 and 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewRequest struct {
	Score               int    `json:"score"`
	Note                string `json:"note"`
	AcknowledgementNote string `json:"acknowledgement_note"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidScore(r.Score) {
		errs = append(errs, validator.ValidationError{
			Field:   "score",
			Message: "score must be between 0 and 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssessmentResponse struct {
	ID                  string  `json:"id"`
	InternID            string  `json:"intern_id"`
	InternName          *string `json:"intern_name,omitempty"`
	AssessedBy          *string `json:"assessed_by,omitempty"`
	AssessmentDate      string  `json:"assessment_date"`
	PeriodStart         *string `json:"period_start,omitempty"`
	PeriodEnd           *string `json:"period_end,omitempty"`
	WeekNumber          int     `json:"week_number"`
	Status              string  `json:"status"`
	SupervisorScore     *int    `json:"supervisor_score,omitempty"`
	SupervisorNote      string  `json:"supervisor_note,omitempty"`
	InternScore         *int    `json:"intern_score,omitempty"`
	InternNote          string  `json:"intern_note,omitempty"`
	AcknowledgementNote string  `json:"acknowledgement_note,omitempty"`
	IsCompleted         bool    `json:"is_completed"`
}

type AssessmentFilter struct {
	InternID *string
	// SupervisorID restricts results to interns assigned to this supervisor.
	SupervisorID *string
	Status       *Status
	Page         int
	Limit        int
}

type ListAssessmentsResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Assessments []AssessmentResponse `json:"assessments"`
}
