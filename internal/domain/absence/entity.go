package absence

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Request is an intern's leave request. Status only ever leaves pending,
// to approved/rejected (supervisor decision) or cancelled (intern's own).
type Request struct {
	ID                     string
	InternID               string
	Reason                 string
	StartDate              time.Time
	EndDate                time.Time
	Status                 Status
	SupportingDocumentPath *string
	ApproverID             *string
	SubmittedAt            time.Time
	DecisionAt             *time.Time
	DecisionNote           string
	CreatedAt              time.Time
	UpdatedAt              time.Time

	// Joined for display
	InternName *string
}

// IsDecided reports whether the request reached a terminal state.
func (r *Request) IsDecided() bool {
	return r.Status != StatusPending
}
