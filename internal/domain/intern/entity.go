package intern

import "time"

type InternType string

const (
	TypeClinical       InternType = "clinical"
	TypeNursing        InternType = "nursing"
	TypePharmacy       InternType = "pharmacy"
	TypeLaboratory     InternType = "laboratory"
	TypeAdministrative InternType = "administrative"
	TypeOther          InternType = "other"
)

// InternProfile holds the internship placement of a user. At most one
// profile exists per user (DB-enforced).
type InternProfile struct {
	ID                     string
	UserID                 string
	SchoolID               *string
	BranchID               *string
	SupervisorID           *string // user with the supervisor role
	AcademicSupervisorName *string
	InternType             InternType
	ProfilePhotoPath       *string
	ApplicationLetterPath  *string
	StartDate              *time.Time
	EndDate                *time.Time
	EmergencyContactName   *string
	EmergencyContactPhone  *string
	CreatedAt              time.Time
	UpdatedAt              time.Time

	// Joined for display
	FullName   *string
	Email      *string
	BranchName *string
	SchoolName *string
}

// IsActive reports whether the internship covers the given date.
func (p *InternProfile) IsActive(today time.Time) bool {
	day := today.Truncate(24 * time.Hour)
	if p.StartDate != nil && p.EndDate != nil {
		return !day.Before(*p.StartDate) && !day.After(*p.EndDate)
	}
	if p.StartDate != nil {
		return !day.Before(*p.StartDate)
	}
	if p.EndDate != nil {
		return !day.After(*p.EndDate)
	}
	return true
}
