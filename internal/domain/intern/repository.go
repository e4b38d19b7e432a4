package intern

import "context"

type InternRepository interface {
	Create(ctx context.Context, p InternProfile) (InternProfile, error)
	GetByID(ctx context.Context, id string) (InternProfile, error)
	GetByUserID(ctx context.Context, userID string) (InternProfile, error)
	Update(ctx context.Context, p InternProfile) error
	List(ctx context.Context, filter ListInternFilter) ([]InternProfile, int64, error)

	// ListBySupervisor returns the profiles directly assigned to a supervisor.
	ListBySupervisor(ctx context.Context, supervisorID string) ([]InternProfile, error)
}
