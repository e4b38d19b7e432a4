package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/internhub/internship-backend-go/internal/domain/activitylog"
	"github.com/internhub/internship-backend-go/internal/domain/attendance"
	"github.com/internhub/internship-backend-go/internal/domain/branch"
	"github.com/internhub/internship-backend-go/internal/domain/intern"
	"github.com/internhub/internship-backend-go/internal/domain/notification"
	"github.com/internhub/internship-backend-go/internal/domain/user"
	"github.com/internhub/internship-backend-go/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	intern.InternRepository
	branch.BranchRepository
	notifier notification.Service
	recorder activitylog.Recorder
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	internRepo intern.InternRepository,
	branchRepo branch.BranchRepository,
	notifier notification.Service,
	recorder activitylog.Recorder,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		InternRepository:     internRepo,
		BranchRepository:     branchRepo,
		notifier:             notifier,
		recorder:             recorder,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

// withinGeofence is boundary-inclusive: a check-in at exactly the threshold
// distance still auto-approves.
func withinGeofence(distanceM float64, thresholdM int) bool {
	return distanceM <= float64(thresholdM)
}

func toResponse(att attendance.Attendance, distance *float64) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                 att.ID,
		InternID:           att.InternID,
		InternName:         att.InternName,
		BranchID:           att.BranchID,
		BranchName:         att.BranchName,
		CheckInTime:        att.CheckInTime.Format(time.RFC3339),
		CheckOutTime:       timePtrToString(att.CheckOutTime),
		Latitude:           att.Latitude,
		Longitude:          att.Longitude,
		LocationAccuracyM:  att.LocationAccuracyM,
		ApprovalStatus:     string(att.ApprovalStatus),
		AutoApproved:       att.AutoApproved,
		DistanceFromBranch: distance,
		Notes:              att.Notes,
		ApprovedBy:         att.ApprovedBy,
		ApprovedAt:         timePtrToString(att.ApprovedAt),
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, principal user.Principal, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !principal.Can(user.PermissionAttendanceCheckIn) || principal.InternProfileID == nil {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	profile, err := a.InternRepository.GetByID(ctx, *principal.InternProfileID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if profile.BranchID == nil {
		return attendance.AttendanceResponse{}, intern.ErrNoBranchAssigned
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// Friendly pre-check; the unique constraint on (intern_id, check_in_date)
	// is what actually closes the race.
	checkedIn, err := a.AttendanceRepository.HasCheckedInOn(ctx, profile.ID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if checkedIn {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	b, err := a.BranchRepository.GetByID(ctx, *profile.BranchID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	status := attendance.StatusPending
	autoApproved := false
	var distance *float64
	if b.HasCoordinates() {
		d := utils.DistanceMeters(req.Latitude, req.Longitude, *b.Latitude, *b.Longitude)
		distance = &d
		if withinGeofence(d, b.ProximityThresholdMeters) {
			status = attendance.StatusApproved
			autoApproved = true
		}
	}

	att := attendance.Attendance{
		InternID:          profile.ID,
		BranchID:          b.ID,
		CheckInTime:       now,
		CheckInDate:       today,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		LocationAccuracyM: req.LocationAccuracyM,
		ApprovalStatus:    status,
		AutoApproved:      autoApproved,
		Notes:             req.Notes,
	}

	created, err := a.AttendanceRepository.Create(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if status == attendance.StatusPending && profile.SupervisorID != nil {
		kind := notification.EntityAttendance
		a.notify(ctx, notification.CreateNotificationRequest{
			RecipientID: *profile.SupervisorID,
			Title:       "Attendance needs review",
			Message:     fmt.Sprintf("%s checked in outside the branch radius and needs manual approval.", internDisplayName(profile)),
			Type:        notification.TypeWarning,
			Category:    notification.CategoryAttendance,
			ActionURL:   "/attendance/" + created.ID,
			EntityKind:  &kind,
			EntityID:    &created.ID,
			// In-app only; supervisors triage pending check-ins from the app.
			SendEmail: false,
		})
	}

	a.recorder.Record(ctx, &principal.UserID, "attendance.check_in", activitylog.EntityAttendance, created.ID, map[string]interface{}{
		"approval_status": string(status),
		"auto_approved":   autoApproved,
	})

	return toResponse(created, distance), nil
}

// Decide implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Decide(ctx context.Context, principal user.Principal, attendanceID string, req attendance.DecideRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !principal.Can(user.PermissionAttendanceApprove) {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	att, err := a.AttendanceRepository.GetByID(ctx, attendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	profile, err := a.InternRepository.GetByID(ctx, att.InternID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := a.authorizeApprover(principal, profile); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if att.IsDecided() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyProcessed
	}

	status := attendance.StatusApproved
	if req.Decision == attendance.DecisionReject {
		status = attendance.StatusRejected
	}

	now := time.Now()
	updated, err := a.AttendanceRepository.Decide(ctx, attendanceID, status, principal.UserID, now, req.Note)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !updated {
		// Somebody else decided between our read and the update.
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyProcessed
	}

	att, err = a.AttendanceRepository.GetByID(ctx, attendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	kind := notification.EntityAttendance
	nType := notification.TypeSuccess
	title := "Attendance approved"
	message := fmt.Sprintf("Your check-in on %s was approved.", att.CheckInDate.Format("2006-01-02"))
	if status == attendance.StatusRejected {
		nType = notification.TypeError
		title = "Attendance rejected"
		message = fmt.Sprintf("Your check-in on %s was rejected: %s", att.CheckInDate.Format("2006-01-02"), req.Note)
	}
	a.notify(ctx, notification.CreateNotificationRequest{
		RecipientID: profile.UserID,
		Title:       title,
		Message:     message,
		Type:        nType,
		Category:    notification.CategoryAttendance,
		ActionURL:   "/attendance/" + att.ID,
		EntityKind:  &kind,
		EntityID:    &att.ID,
		SendEmail:   true,
	})

	a.recorder.Record(ctx, &principal.UserID, "attendance."+string(req.Decision), activitylog.EntityAttendance, att.ID, map[string]interface{}{
		"approval_status": string(status),
	})

	return toResponse(att, nil), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, principal user.Principal, attendanceID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if principal.InternProfileID == nil {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	att, err := a.AttendanceRepository.GetByID(ctx, attendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if att.InternID != *principal.InternProfileID {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}
	if att.CheckOutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	updated, err := a.AttendanceRepository.CheckOut(ctx, attendanceID, time.Now(), req.Notes)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !updated {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	att, err = a.AttendanceRepository.GetByID(ctx, attendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a.recorder.Record(ctx, &principal.UserID, "attendance.check_out", activitylog.EntityAttendance, att.ID, nil)

	return toResponse(att, nil), nil
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, principal user.Principal, attendanceID string) (attendance.AttendanceResponse, error) {
	att, err := a.AttendanceRepository.GetByID(ctx, attendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if principal.InternProfileID != nil && att.InternID == *principal.InternProfileID {
		return toResponse(att, nil), nil
	}
	if !principal.Can(user.PermissionAttendanceViewAll) && !principal.Can(user.PermissionAttendanceApprove) {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}
	if !principal.IsManagerOrAdmin() && principal.Role == user.RoleSupervisor {
		profile, err := a.InternRepository.GetByID(ctx, att.InternID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if profile.SupervisorID == nil || *profile.SupervisorID != principal.UserID {
			return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
		}
	}

	return toResponse(att, nil), nil
}

// MyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MyAttendance(ctx context.Context, principal user.Principal, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if principal.InternProfileID == nil {
		return attendance.ListAttendanceResponse{}, attendance.ErrUnauthorized
	}

	attendances, total, err := a.AttendanceRepository.ListByIntern(ctx, *principal.InternProfileID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return listResponse(attendances, total, filter), nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, principal user.Principal, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if !principal.Can(user.PermissionAttendanceViewAll) && !principal.Can(user.PermissionAttendanceApprove) {
		return attendance.ListAttendanceResponse{}, attendance.ErrUnauthorized
	}

	// Supervisors only ever see their directly assigned interns.
	if !principal.IsManagerOrAdmin() && principal.Role == user.RoleSupervisor {
		filter.SupervisorID = &principal.UserID
	}

	attendances, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return listResponse(attendances, total, filter), nil
}

func (a *AttendanceServiceImpl) authorizeApprover(principal user.Principal, profile intern.InternProfile) error {
	if principal.IsManagerOrAdmin() {
		return nil
	}
	if profile.SupervisorID == nil || *profile.SupervisorID != principal.UserID {
		return attendance.ErrUnauthorized
	}
	return nil
}

func (a *AttendanceServiceImpl) notify(ctx context.Context, req notification.CreateNotificationRequest) {
	// Notification delivery never fails the attendance transition.
	_, _ = a.notifier.Notify(ctx, req)
}

func internDisplayName(profile intern.InternProfile) string {
	if profile.FullName != nil && *profile.FullName != "" {
		return *profile.FullName
	}
	return "An intern"
}

func listResponse(attendances []attendance.Attendance, total int64, filter attendance.AttendanceFilter) attendance.ListAttendanceResponse {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, toResponse(att, nil))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		Attendances: responses,
	}
}
