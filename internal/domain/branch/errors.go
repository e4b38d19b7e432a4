package branch

import "errors"

var (
	ErrBranchNotFound = errors.New("branch not found")
	ErrCodeExists     = errors.New("branch code already registered")
)
