package absence

import "errors"

// Absence request domain errors
var (
	ErrRequestNotFound     = errors.New("absence request not found")
	ErrAlreadyProcessed    = errors.New("absence request has already been processed")
	ErrRejectionNoteNeeded = errors.New("a note is required when rejecting an absence request")
	ErrUnauthorized        = errors.New("unauthorized to access this absence request")
)
