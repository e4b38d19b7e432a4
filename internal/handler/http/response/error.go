package response

import (
	"errors"
	"net/http"

	"github.com/internhub/internship-backend-go/internal/domain/absence"
	"github.com/internhub/internship-backend-go/internal/domain/assessment"
	"github.com/internhub/internship-backend-go/internal/domain/attendance"
	"github.com/internhub/internship-backend-go/internal/domain/auth"
	"github.com/internhub/internship-backend-go/internal/domain/branch"
	"github.com/internhub/internship-backend-go/internal/domain/intern"
	"github.com/internhub/internship-backend-go/internal/domain/notification"
	"github.com/internhub/internship-backend-go/internal/domain/school"
	"github.com/internhub/internship-backend-go/internal/domain/user"
	"github.com/internhub/internship-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, auth.ErrOAuthEmailMissing):
		BadRequest(w, "Google account has no verified email", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrPermissionDenied):
		Forbidden(w, err.Error())

	// Intern domain errors
	case errors.Is(err, intern.ErrProfileNotFound):
		NotFound(w, "Intern profile not found")
	case errors.Is(err, intern.ErrProfileExists):
		Conflict(w, "User already has an intern profile")
	case errors.Is(err, intern.ErrNoBranchAssigned):
		BadRequest(w, "Intern has not been assigned to a branch", nil)
	case errors.Is(err, intern.ErrNotAnIntern):
		BadRequest(w, "User does not hold the intern role", nil)
	case errors.Is(err, intern.ErrSupervisorInvalid):
		BadRequest(w, "Assigned supervisor must hold the supervisor role", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No open check-in found", nil)
	case errors.Is(err, attendance.ErrAlreadyProcessed):
		Conflict(w, "Attendance has already been approved or rejected")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this attendance record")

	// Absence domain errors
	case errors.Is(err, absence.ErrRequestNotFound):
		NotFound(w, "Absence request not found")
	case errors.Is(err, absence.ErrAlreadyProcessed):
		Conflict(w, "Absence request has already been processed")
	case errors.Is(err, absence.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this absence request")

	// Assessment domain errors
	case errors.Is(err, assessment.ErrAssessmentNotFound):
		NotFound(w, "Assessment not found")
	case errors.Is(err, assessment.ErrDuplicateWeek):
		Conflict(w, "An assessment already exists for this intern and week")
	case errors.Is(err, assessment.ErrInvalidScore):
		BadRequest(w, "Score must be between 0 and 100", nil)
	case errors.Is(err, assessment.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this assessment")

	// Master data errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, branch.ErrCodeExists):
		Conflict(w, "Branch code already registered")
	case errors.Is(err, school.ErrSchoolNotFound):
		NotFound(w, "School not found")
	case errors.Is(err, school.ErrNameExists):
		Conflict(w, "School name already registered")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrInvalidCategory):
		BadRequest(w, "Invalid notification category", nil)
	case errors.Is(err, notification.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this notification")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
