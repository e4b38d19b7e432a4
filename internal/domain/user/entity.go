package user

import "time"

type Role string

const (
	RoleIntern     Role = "intern"     // Internship participant
	RoleEmployee   Role = "employee"   // Branch staff without approval rights
	RoleSupervisor Role = "supervisor" // Supervises assigned interns
	RoleManager    Role = "manager"    // Branch management, acts on all interns
	RoleAdmin      Role = "admin"      // System administration
)

// AllRoles returns the closed set of assignable roles.
func AllRoles() []Role {
	return []Role{RoleIntern, RoleEmployee, RoleSupervisor, RoleManager, RoleAdmin}
}

// IsValidRole reports whether r is one of the assignable roles.
func IsValidRole(r Role) bool {
	switch r {
	case RoleIntern, RoleEmployee, RoleSupervisor, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	FirstName       string
	LastName        string
	Phone           *string
	Role            Role
	IsSuperuser     bool
	IsActive        bool
	OAuthProvider   *string
	OAuthProviderID *string
	EmailVerified   bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Principal is the authenticated identity a request acts as, reconstructed
// from JWT claims. Workflow services only ever read it.
type Principal struct {
	UserID          string
	Email           string
	Role            Role
	IsSuperuser     bool
	InternProfileID *string
}

// Can reports whether the principal holds the given permission. Superusers
// hold every permission.
func (p Principal) Can(perm Permission) bool {
	if p.IsSuperuser {
		return true
	}
	return HasPermission(p.Role, perm)
}

// IsManagerOrAdmin reports whether the principal may act on any intern,
// not just directly assigned ones.
func (p Principal) IsManagerOrAdmin() bool {
	return p.IsSuperuser || p.Role == RoleManager || p.Role == RoleAdmin
}
