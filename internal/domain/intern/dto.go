package intern

import (
	"io"

	"github.com/internhub/internship-backend-go/internal/pkg/validator"
)

type CreateInternProfileRequest struct {
	UserID                 string  `json:"user_id"`
	SchoolID               *string `json:"school_id"`
	BranchID               *string `json:"branch_id"`
	SupervisorID           *string `json:"supervisor_id"`
	AcademicSupervisorName *string `json:"academic_supervisor_name"`
	InternType             string  `json:"intern_type"`
	StartDate              *string `json:"start_date"` // YYYY-MM-DD
	EndDate                *string `json:"end_date"`
	EmergencyContactName   *string `json:"emergency_contact_name"`
	EmergencyContactPhone  *string `json:"emergency_contact_phone"`
}

var validInternTypes = []string{
	string(TypeClinical), string(TypeNursing), string(TypePharmacy),
	string(TypeLaboratory), string(TypeAdministrative), string(TypeOther),
}

func (r *CreateInternProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if r.InternType != "" && !validator.IsInSlice(r.InternType, validInternTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "intern_type",
			Message: "invalid intern type",
		})
	}

	var start, end *string
	if r.StartDate != nil && *r.StartDate != "" {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be YYYY-MM-DD",
			})
		} else {
			start = r.StartDate
		}
	}
	if r.EndDate != nil && *r.EndDate != "" {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be YYYY-MM-DD",
			})
		} else {
			end = r.EndDate
		}
	}
	if start != nil && end != nil && *end < *start {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.EmergencyContactPhone != nil && *r.EmergencyContactPhone != "" &&
		!validator.IsValidPhoneNumber(*r.EmergencyContactPhone) {
		errs = append(errs, validator.ValidationError{
			Field:   "emergency_contact_phone",
			Message: "invalid phone number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DocumentKind string

const (
	DocumentProfilePhoto      DocumentKind = "profile_photo"
	DocumentApplicationLetter DocumentKind = "application_letter"
)

// UploadDocumentRequest carries a profile file upload. Kind selects which
// path field on the profile is replaced.
type UploadDocumentRequest struct {
	Kind        DocumentKind
	File        io.Reader
	Filename    string
	ContentType string
}

func (r *UploadDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Kind != DocumentProfilePhoto && r.Kind != DocumentApplicationLetter {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be profile_photo or application_letter",
		})
	}

	if r.File == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "a file is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateInternProfileRequest struct {
	SchoolID               *string `json:"school_id"`
	BranchID               *string `json:"branch_id"`
	SupervisorID           *string `json:"supervisor_id"`
	AcademicSupervisorName *string `json:"academic_supervisor_name"`
	InternType             *string `json:"intern_type"`
	StartDate              *string `json:"start_date"`
	EndDate                *string `json:"end_date"`
	EmergencyContactName   *string `json:"emergency_contact_name"`
	EmergencyContactPhone  *string `json:"emergency_contact_phone"`
}

type InternProfileResponse struct {
	ID                     string  `json:"id"`
	UserID                 string  `json:"user_id"`
	FullName               string  `json:"full_name"`
	Email                  string  `json:"email"`
	SchoolID               *string `json:"school_id,omitempty"`
	SchoolName             *string `json:"school_name,omitempty"`
	BranchID               *string `json:"branch_id,omitempty"`
	BranchName             *string `json:"branch_name,omitempty"`
	SupervisorID           *string `json:"supervisor_id,omitempty"`
	AcademicSupervisorName *string `json:"academic_supervisor_name,omitempty"`
	InternType             string  `json:"intern_type"`
	ProfilePhotoURL        *string `json:"profile_photo_url,omitempty"`
	StartDate              *string `json:"start_date,omitempty"`
	EndDate                *string `json:"end_date,omitempty"`
	IsActive               bool    `json:"is_active"`
}

type ListInternFilter struct {
	BranchID     *string
	SupervisorID *string
	SchoolID     *string
	Search       string
	Page         int
	Limit        int
}

type ListInternsResponse struct {
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
	Interns    []InternProfileResponse `json:"interns"`
}
