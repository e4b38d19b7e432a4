package branch

import (
	"context"

	"github.com/internhub/internship-backend-go/internal/domain/user"
)

type BranchService interface {
	Create(ctx context.Context, principal user.Principal, req UpsertBranchRequest) (BranchResponse, error)
	Get(ctx context.Context, principal user.Principal, branchID string) (BranchResponse, error)
	Update(ctx context.Context, principal user.Principal, branchID string, req UpsertBranchRequest) (BranchResponse, error)
	Delete(ctx context.Context, principal user.Principal, branchID string) error
	List(ctx context.Context, principal user.Principal) ([]BranchResponse, error)
}
