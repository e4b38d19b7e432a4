package activitylog

import (
	"context"

	"github.com/internhub/internship-backend-go/internal/domain/user"
)

type Repository interface {
	Create(ctx context.Context, e Entry) error
	ListByActor(ctx context.Context, actorID string, page, limit int) ([]Entry, int64, error)
	List(ctx context.Context, page, limit int) ([]Entry, int64, error)
}

// Recorder is the write-side contract workflow services depend on. Record is
// fire-and-forget: it must never block or fail the triggering transition.
type Recorder interface {
	Record(ctx context.Context, actorID *string, action string, kind EntityKind, entityID string, metadata map[string]interface{})
}

// Service is the read side of the audit trail, admin only.
type Service interface {
	List(ctx context.Context, principal user.Principal, filter ListFilter) (ListResponse, error)
}
