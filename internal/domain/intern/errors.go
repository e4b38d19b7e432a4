package intern

import "errors"

// Intern domain errors
var (
	ErrProfileNotFound   = errors.New("intern profile not found")
	ErrProfileExists     = errors.New("user already has an intern profile")
	ErrNoBranchAssigned  = errors.New("intern has not been assigned to a branch")
	ErrNotAnIntern       = errors.New("user does not hold the intern role")
	ErrSupervisorInvalid = errors.New("assigned supervisor must hold the supervisor role")
)
