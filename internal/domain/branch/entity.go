package branch

import "time"

// Branch is a physical site interns report to. Latitude/longitude are
// optional; attendance auto-validation is skipped when they are missing.
type Branch struct {
	ID                       string
	Name                     string
	Code                     string
	AddressLine1             *string
	AddressLine2             *string
	City                     *string
	State                    *string
	Country                  *string
	Latitude                 *float64
	Longitude                *float64
	ProximityThresholdMeters int
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// HasCoordinates reports whether the branch has a registered location.
func (b *Branch) HasCoordinates() bool {
	return b.Latitude != nil && b.Longitude != nil
}
