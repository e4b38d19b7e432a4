package absence

import (
	"io"
	"time"

	"github.com/internhub/internship-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	Reason    string `json:"reason"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`

	// Optional supporting document, uploaded by the service when present.
	Document            io.Reader `json:"-"`
	DocumentName        string    `json:"-"`
	DocumentContentType string    `json:"-"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be YYYY-MM-DD",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecideRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Approve && validator.IsEmpty(r.Note) {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "a note is required when rejecting",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestResponse struct {
	ID                    string  `json:"id"`
	InternID              string  `json:"intern_id"`
	InternName            *string `json:"intern_name,omitempty"`
	Reason                string  `json:"reason"`
	StartDate             string  `json:"start_date"`
	EndDate               string  `json:"end_date"`
	Status                string  `json:"status"`
	SupportingDocumentURL *string `json:"supporting_document_url,omitempty"`
	ApproverID            *string `json:"approver_id,omitempty"`
	SubmittedAt           string  `json:"submitted_at"`
	DecisionAt            *string `json:"decision_at,omitempty"`
	DecisionNote          string  `json:"decision_note,omitempty"`
}

type RequestFilter struct {
	InternID *string
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	Limit    int
}

type ListRequestsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Requests   []RequestResponse `json:"requests"`
}
