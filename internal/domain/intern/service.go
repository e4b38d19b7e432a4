package intern

import (
	"context"

	"github.com/internhub/internship-backend-go/internal/domain/user"
)

type InternService interface {
	// CreateProfile places a user as an intern. The user must hold the
	// intern role and must not already have a profile.
	CreateProfile(ctx context.Context, principal user.Principal, req CreateInternProfileRequest) (InternProfileResponse, error)

	Get(ctx context.Context, principal user.Principal, profileID string) (InternProfileResponse, error)

	// GetMine returns the calling intern's own profile.
	GetMine(ctx context.Context, principal user.Principal) (InternProfileResponse, error)

	Update(ctx context.Context, principal user.Principal, profileID string, req UpdateInternProfileRequest) (InternProfileResponse, error)

	// UploadDocument stores a profile photo or application letter and
	// records its path on the profile. Interns may upload to their own
	// profile; staff need intern management rights.
	UploadDocument(ctx context.Context, principal user.Principal, profileID string, req UploadDocumentRequest) (InternProfileResponse, error)

	List(ctx context.Context, principal user.Principal, filter ListInternFilter) (ListInternsResponse, error)

	// MyInterns returns the interns directly assigned to the calling
	// supervisor.
	MyInterns(ctx context.Context, principal user.Principal) ([]InternProfileResponse, error)
}
