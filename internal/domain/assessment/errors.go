package assessment

import "errors"

// Assessment domain errors
var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrDuplicateWeek      = errors.New("an assessment already exists for this intern and week")
	ErrInvalidScore       = errors.New("score must be between 0 and 100")
	ErrUnauthorized       = errors.New("unauthorized to access this assessment")
)
