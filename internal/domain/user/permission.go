package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Attendance
	PermissionAttendanceCheckIn Permission = "attendance.check_in"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceApprove Permission = "attendance.approve"

	// Absence requests
	PermissionAbsenceSubmit  Permission = "absence.submit"
	PermissionAbsenceViewOwn Permission = "absence.view_own"
	PermissionAbsenceViewAll Permission = "absence.view_all"
	PermissionAbsenceApprove Permission = "absence.approve"

	// Performance assessments
	PermissionAssessmentCreate     Permission = "assessment.create"
	PermissionAssessmentSelfAssess Permission = "assessment.self_assess"
	PermissionAssessmentReview     Permission = "assessment.review"
	PermissionAssessmentViewOwn    Permission = "assessment.view_own"
	PermissionAssessmentViewAll    Permission = "assessment.view_all"

	// Intern management
	PermissionInternViewAll Permission = "intern.view_all"
	PermissionInternManage  Permission = "intern.manage"

	// Master data (branches, schools)
	PermissionMasterView   Permission = "master.view"
	PermissionMasterManage Permission = "master.manage"

	// Reports
	PermissionReportsView Permission = "reports.view"

	// User management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps each role to its capabilities. Role checks elsewhere
// in the codebase go through HasPermission rather than comparing role strings.
var RolePermissions = map[Role][]Permission{
	RoleIntern: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceCheckIn,
		PermissionAttendanceViewOwn,
		PermissionAbsenceSubmit,
		PermissionAbsenceViewOwn,
		PermissionAssessmentSelfAssess,
		PermissionAssessmentViewOwn,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceViewAll,
		PermissionInternViewAll,
		PermissionMasterView,
	},
	RoleSupervisor: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceViewAll,
		PermissionAttendanceApprove,
		PermissionAbsenceViewAll,
		PermissionAbsenceApprove,
		PermissionAssessmentCreate,
		PermissionAssessmentReview,
		PermissionAssessmentViewAll,
		PermissionInternViewAll,
		PermissionMasterView,
		PermissionReportsView,
	},
	RoleManager: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceViewAll,
		PermissionAttendanceApprove,
		PermissionAbsenceViewAll,
		PermissionAbsenceApprove,
		PermissionAssessmentCreate,
		PermissionAssessmentReview,
		PermissionAssessmentViewAll,
		PermissionInternViewAll,
		PermissionInternManage,
		PermissionMasterView,
		PermissionMasterManage,
		PermissionReportsView,
	},
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceViewAll,
		PermissionAttendanceApprove,
		PermissionAbsenceViewAll,
		PermissionAbsenceApprove,
		PermissionAssessmentCreate,
		PermissionAssessmentReview,
		PermissionAssessmentViewAll,
		PermissionInternViewAll,
		PermissionInternManage,
		PermissionMasterView,
		PermissionMasterManage,
		PermissionReportsView,
		PermissionUserManage,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
