package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	cases := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleIntern, PermissionAttendanceCheckIn, true},
		{RoleIntern, PermissionAttendanceApprove, false},
		{RoleIntern, PermissionAbsenceSubmit, true},
		{RoleIntern, PermissionAssessmentCreate, false},
		{RoleEmployee, PermissionAttendanceViewAll, true},
		{RoleEmployee, PermissionAbsenceApprove, false},
		{RoleSupervisor, PermissionAttendanceApprove, true},
		{RoleSupervisor, PermissionAssessmentCreate, true},
		{RoleSupervisor, PermissionInternManage, false},
		{RoleSupervisor, PermissionUserManage, false},
		{RoleManager, PermissionInternManage, true},
		{RoleManager, PermissionMasterManage, true},
		{RoleManager, PermissionUserManage, false},
		{RoleAdmin, PermissionUserManage, true},
		{Role("nonexistent"), PermissionViewOwnProfile, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HasPermission(c.role, c.perm), "HasPermission(%s, %s)", c.role, c.perm)
	}
}

func TestPrincipalCan_SuperuserOverride(t *testing.T) {
	p := Principal{UserID: "u1", Role: RoleEmployee, IsSuperuser: true}
	assert.True(t, p.Can(PermissionUserManage))
	assert.True(t, p.Can(PermissionAttendanceApprove))
	assert.True(t, p.IsManagerOrAdmin())

	regular := Principal{UserID: "u2", Role: RoleEmployee}
	assert.False(t, regular.Can(PermissionUserManage))
	assert.False(t, regular.IsManagerOrAdmin())
}

func TestIsValidRole(t *testing.T) {
	for _, r := range AllRoles() {
		assert.True(t, IsValidRole(r))
	}
	assert.False(t, IsValidRole(Role("owner")))
	assert.False(t, IsValidRole(Role("")))
}
