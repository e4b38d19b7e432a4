package absence

import (
	"context"

	"github.com/internhub/internship-backend-go/internal/domain/user"
)

type RequestService interface {
	// Submit files a new leave request for the calling intern and notifies
	// the assigned supervisor.
	Submit(ctx context.Context, principal user.Principal, req SubmitRequest) (RequestResponse, error)

	// Decide approves or rejects a pending request. Supervisors may only act
	// on their directly assigned interns; managers/admins on any.
	Decide(ctx context.Context, principal user.Principal, requestID string, req DecideRequest) (RequestResponse, error)

	// Cancel withdraws the calling intern's own pending request.
	Cancel(ctx context.Context, principal user.Principal, requestID string) (RequestResponse, error)

	Get(ctx context.Context, principal user.Principal, requestID string) (RequestResponse, error)
	MyRequests(ctx context.Context, principal user.Principal, filter RequestFilter) (ListRequestsResponse, error)
	List(ctx context.Context, principal user.Principal, filter RequestFilter) (ListRequestsResponse, error)
}
