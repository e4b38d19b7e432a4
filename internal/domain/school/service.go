package school

import (
	"context"

	"github.com/internhub/internship-backend-go/internal/domain/user"
)

type SchoolService interface {
	Create(ctx context.Context, principal user.Principal, req UpsertSchoolRequest) (SchoolResponse, error)
	Get(ctx context.Context, principal user.Principal, schoolID string) (SchoolResponse, error)
	Update(ctx context.Context, principal user.Principal, schoolID string, req UpsertSchoolRequest) (SchoolResponse, error)
	Delete(ctx context.Context, principal user.Principal, schoolID string) error
	List(ctx context.Context, principal user.Principal) ([]SchoolResponse, error)
}
