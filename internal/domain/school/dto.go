package school

import (
	"github.com/internhub/internship-backend-go/internal/pkg/validator"
)

type UpsertSchoolRequest struct {
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person"`
	ContactEmail  *string `json:"contact_email"`
	ContactPhone  *string `json:"contact_phone"`
	Address       *string `json:"address"`
}

func (r *UpsertSchoolRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.ContactEmail != nil && *r.ContactEmail != "" && !validator.IsValidEmail(*r.ContactEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "contact_email",
			Message: "a valid email is required",
		})
	}

	if r.ContactPhone != nil && *r.ContactPhone != "" && !validator.IsValidPhoneNumber(*r.ContactPhone) {
		errs = append(errs, validator.ValidationError{
			Field:   "contact_phone",
			Message: "invalid phone number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SchoolResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person,omitempty"`
	ContactEmail  *string `json:"contact_email,omitempty"`
	ContactPhone  *string `json:"contact_phone,omitempty"`
	Address       *string `json:"address,omitempty"`
}
