package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/internhub/internship-backend-go/internal/domain/activitylog"
	"github.com/internhub/internship-backend-go/internal/domain/user"
)

type RecorderImpl struct {
	repo   activitylog.Repository
	logger *slog.Logger
}

func NewRecorder(repo activitylog.Repository, logger *slog.Logger) activitylog.Recorder {
	return &RecorderImpl{repo: repo, logger: logger}
}

// Record implements activitylog.Recorder. Failures are logged and swallowed;
// an audit write must never fail the transition that triggered it.
func (r *RecorderImpl) Record(ctx context.Context, actorID *string, action string, kind activitylog.EntityKind, entityID string, metadata map[string]interface{}) {
	// The request context may already be cancelled by the time we get here.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	entry := activitylog.Entry{
		ActorID:  actorID,
		Action:   action,
		Metadata: metadata,
	}
	if kind != "" {
		entry.EntityKind = &kind
	}
	if entityID != "" {
		entry.EntityID = &entityID
	}

	if err := r.repo.Create(writeCtx, entry); err != nil {
		r.logger.Error("failed to write activity log entry",
			slog.String("action", action),
			slog.String("error", err.Error()))
	}
}

type ServiceImpl struct {
	repo activitylog.Repository
}

func NewService(repo activitylog.Repository) activitylog.Service {
	return &ServiceImpl{repo: repo}
}

// List implements activitylog.Service.
func (s *ServiceImpl) List(ctx context.Context, principal user.Principal, filter activitylog.ListFilter) (activitylog.ListResponse, error) {
	if !principal.IsSuperuser && principal.Role != user.RoleAdmin {
		return activitylog.ListResponse{}, user.ErrAdminAccessRequired
	}

	var (
		entries []activitylog.Entry
		total   int64
		err     error
	)
	if filter.ActorID != nil {
		entries, total, err = s.repo.ListByActor(ctx, *filter.ActorID, filter.Page, filter.Limit)
	} else {
		entries, total, err = s.repo.List(ctx, filter.Page, filter.Limit)
	}
	if err != nil {
		return activitylog.ListResponse{}, err
	}

	resp := activitylog.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Entries:    make([]activitylog.EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, e.ToResponse())
	}
	return resp, nil
}
