package attendance

import (
	"context"

	"github.com/internhub/internship-backend-go/internal/domain/user"
)

type AttendanceService interface {
	// CheckIn records a check-in for the calling intern and runs geofencing
	// auto-validation against the intern's branch.
	CheckIn(ctx context.Context, principal user.Principal, req CheckInRequest) (AttendanceResponse, error)

	// Decide manually approves or rejects a pending record. The approver must
	// be the intern's assigned supervisor or hold manager/admin rights.
	Decide(ctx context.Context, principal user.Principal, attendanceID string, req DecideRequest) (AttendanceResponse, error)

	// CheckOut closes the calling intern's open record for the day.
	CheckOut(ctx context.Context, principal user.Principal, attendanceID string, req CheckOutRequest) (AttendanceResponse, error)

	Get(ctx context.Context, principal user.Principal, attendanceID string) (AttendanceResponse, error)
	MyAttendance(ctx context.Context, principal user.Principal, filter AttendanceFilter) (ListAttendanceResponse, error)
	List(ctx context.Context, principal user.Principal, filter AttendanceFilter) (ListAttendanceResponse, error)
}
