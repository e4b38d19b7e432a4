package school

import "time"

// School is the sending institution an intern belongs to.
type School struct {
	ID            string
	Name          string
	ContactPerson *string
	ContactEmail  *string
	ContactPhone  *string
	Address       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
