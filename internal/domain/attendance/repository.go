package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create inserts a new check-in. The attendances table carries a unique
	// constraint on (intern_id, check_in_date); a violation is returned as
	// ErrAlreadyCheckedIn so concurrent double check-ins cannot both land.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// HasCheckedInOn reports whether the intern already has a record for the
	// given local calendar date.
	HasCheckedInOn(ctx context.Context, internID string, date time.Time) (bool, error)

	// Decide transitions a pending record to approved or rejected with a
	// conditional update (WHERE approval_status = 'pending'). It returns
	// false when no row matched, meaning the record was already decided.
	Decide(ctx context.Context, id string, status ApprovalStatus, approverID string, decidedAt time.Time, note string) (bool, error)

	// CheckOut sets check_out_time for a record that has none yet, returning
	// false when the record was already checked out.
	CheckOut(ctx context.Context, id string, checkOutTime time.Time, notes string) (bool, error)

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	ListByIntern(ctx context.Context, internID string, filter AttendanceFilter) ([]Attendance, int64, error)
}
