package attendance

import "time"

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Attendance is one check-in event. approval_status only ever moves
// pending -> approved or pending -> rejected; once decided it is immutable.
type Attendance struct {
	ID                string
	InternID          string
	BranchID          string
	CheckInTime       time.Time
	CheckInDate       time.Time // local calendar day, one check-in per day
	CheckOutTime      *time.Time
	Latitude          float64
	Longitude         float64
	LocationAccuracyM *float64
	ApprovalStatus    ApprovalStatus
	AutoApproved      bool
	Notes             string
	ApprovedBy        *string
	ApprovedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined for display
	InternName *string
	BranchName *string
}

// IsDecided reports whether the record reached a terminal approval state.
func (a *Attendance) IsDecided() bool {
	return a.ApprovalStatus == StatusApproved || a.ApprovalStatus == StatusRejected
}
