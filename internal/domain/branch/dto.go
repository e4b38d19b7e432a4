package branch

import (
	"github.com/internhub/internship-backend-go/internal/pkg/validator"
)

const DefaultProximityThresholdMeters = 150

type UpsertBranchRequest struct {
	Name                     string   `json:"name"`
	Code                     string   `json:"code"`
	AddressLine1             *string  `json:"address_line1"`
	AddressLine2             *string  `json:"address_line2"`
	City                     *string  `json:"city"`
	State                    *string  `json:"state"`
	Country                  *string  `json:"country"`
	Latitude                 *float64 `json:"latitude"`
	Longitude                *float64 `json:"longitude"`
	ProximityThresholdMeters int      `json:"proximity_threshold_meters"`
}

func (r *UpsertBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}

	if r.ProximityThresholdMeters < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "proximity_threshold_meters",
			Message: "proximity threshold must be greater than zero",
		})
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	// Registering only one half of a coordinate pair is always a mistake.
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BranchResponse struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	Code                     string   `json:"code"`
	AddressLine1             *string  `json:"address_line1,omitempty"`
	AddressLine2             *string  `json:"address_line2,omitempty"`
	City                     *string  `json:"city,omitempty"`
	State                    *string  `json:"state,omitempty"`
	Country                  *string  `json:"country,omitempty"`
	Latitude                 *float64 `json:"latitude,omitempty"`
	Longitude                *float64 `json:"longitude,omitempty"`
	ProximityThresholdMeters int      `json:"proximity_threshold_meters"`
}
