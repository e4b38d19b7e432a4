package school

import "errors"

var (
	ErrSchoolNotFound = errors.New("school not found")
	ErrNameExists     = errors.New("school name already registered")
)
