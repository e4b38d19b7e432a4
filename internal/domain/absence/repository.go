package absence

import (
	"context"
	"time"
)

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// Decide transitions a pending request with a conditional update
	// (WHERE status = 'pending'). Returns false when the request was no
	// longer pending, so racing deciders cannot both win.
	Decide(ctx context.Context, id string, status Status, approverID *string, decidedAt time.Time, note string) (bool, error)

	List(ctx context.Context, filter RequestFilter) ([]Request, int64, error)

	// ListForSupervisor limits results to requests from interns directly
	// assigned to the supervisor.
	ListForSupervisor(ctx context.Context, supervisorID string, filter RequestFilter) ([]Request, int64, error)
}
