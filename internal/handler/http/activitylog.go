package http

import (
	"net/http"

	"github.com/internhub/internship-backend-go/internal/domain/activitylog"
	"github.com/internhub/internship-backend-go/internal/handler/http/response"
)

type ActivityLogHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type activityLogHandlerImpl struct {
	activityService activitylog.Service
}

func NewActivityLogHandler(activityService activitylog.Service) ActivityLogHandler {
	return &activityLogHandlerImpl{
		activityService: activityService,
	}
}

// List implements ActivityLogHandler.
func (h *activityLogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	filter := activitylog.ListFilter{}
	if actorID := r.URL.Query().Get("actor_id"); actorID != "" {
		filter.ActorID = &actorID
	}
	filter.Page, filter.Limit = parsePagination(r)

	result, err := h.activityService.List(r.Context(), principal, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
