package attendance

import (
	"time"

	"github.com/internhub/internship-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	LocationAccuracyM *float64 `json:"location_accuracy_m"`
	Notes             string   `json:"notes"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.LocationAccuracyM != nil && *r.LocationAccuracyM < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "location_accuracy_m",
			Message: "location accuracy must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecideRequest struct {
	Decision Decision `json:"decision"`
	Note     string   `json:"note"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Decision != DecisionApprove && r.Decision != DecisionReject {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be approve or reject",
		})
	}

	if r.Decision == DecisionReject && validator.IsEmpty(r.Note) {
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

type CheckOutRequest struct {
	Notes string `json:"notes"`
}

type AttendanceResponse struct {
	ID                 string   `json:"id"`
	InternID           string   `json:"intern_id"`
	InternName         *string  `json:"intern_name,omitempty"`
	BranchID           string   `json:"branch_id"`
	BranchName         *string  `json:"branch_name,omitempty"`
	CheckInTime        string   `json:"check_in_time"`
	CheckOutTime       *string  `json:"check_out_time,omitempty"`
	Latitude           float64  `json:"latitude"`
	Longitude          float64  `json:"longitude"`
	LocationAccuracyM  *float64 `json:"location_accuracy_m,omitempty"`
	ApprovalStatus     string   `json:"approval_status"`
	AutoApproved       bool     `json:"auto_approved"`
	DistanceFromBranch *float64 `json:"distance_from_branch_m,omitempty"`
	Notes              string   `json:"notes,omitempty"`
	ApprovedBy         *string  `json:"approved_by,omitempty"`
	ApprovedAt         *string  `json:"approved_at,omitempty"`
}

type AttendanceFilter struct {
	InternID *string
	BranchID *string
	// SupervisorID restricts results to interns assigned to this supervisor.
	SupervisorID *string
	Status       *ApprovalStatus
	DateFrom     *time.Time
	DateTo       *time.Time
	Page         int
	Limit        int
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}
