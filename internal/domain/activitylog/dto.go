package activitylog

import "time"

type ListFilter struct {
	// ActorID narrows the listing to entries written by one user.
	ActorID *string
	Page    int
	Limit   int
}

type EntryResponse struct {
	ID         string                 `json:"id"`
	ActorID    *string                `json:"actor_id,omitempty"`
	Action     string                 `json:"action"`
	EntityKind *EntityKind            `json:"entity_kind,omitempty"`
	EntityID   *string                `json:"entity_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	IPAddress  *string                `json:"ip_address,omitempty"`
	UserAgent  string                 `json:"user_agent,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

type ListResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Entries    []EntryResponse `json:"entries"`
}

func (e Entry) ToResponse() EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		ActorID:    e.ActorID,
		Action:     e.Action,
		EntityKind: e.EntityKind,
		EntityID:   e.EntityID,
		Metadata:   e.Metadata,
		IPAddress:  e.IPAddress,
		UserAgent:  e.UserAgent,
		CreatedAt:  e.CreatedAt,
	}
}
