package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/internhub/internship-backend-go/internal/domain/assessment"
	"github.com/internhub/internship-backend-go/internal/handler/http/response"
)

type AssessmentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	SelfAssess(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMyAssessments(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type assessmentHandlerImpl struct {
	assessmentService assessment.AssessmentService
}

func NewAssessmentHandler(assessmentService assessment.AssessmentService) AssessmentHandler {
	return &assessmentHandlerImpl{
		assessmentService: assessmentService,
	}
}

// Create implements AssessmentHandler.
func (h *assessmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req assessment.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.assessmentService.Create(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Assessment created", result)
}

// SelfAssess implements AssessmentHandler.
func (h *assessmentHandlerImpl) SelfAssess(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req assessment.SelfAssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.assessmentService.SelfAssess(r.Context(), principal, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Self-assessment submitted", result)
}

// Review implements AssessmentHandler.
func (h *assessmentHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req assessment.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.assessmentService.Review(r.Context(), principal, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Assessment reviewed", result)
}

// Get implements AssessmentHandler.
func (h *assessmentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	result, err := h.assessmentService.Get(r.Context(), principal, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyAssessments implements AssessmentHandler.
func (h *assessmentHandlerImpl) GetMyAssessments(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.assessmentService.MyAssessments(r.Context(), principal, parseAssessmentFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AssessmentHandler.
func (h *assessmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	filter := parseAssessmentFilter(r)
	if internID := r.URL.Query().Get("intern_id"); internID != "" {
		filter.InternID = &internID
	}

	result, err := h.assessmentService.List(r.Context(), principal, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func parseAssessmentFilter(r *http.Request) assessment.AssessmentFilter {
	filter := assessment.AssessmentFilter{}

	if status := r.URL.Query().Get("status"); status != "" {
		s := assessment.Status(status)
		filter.Status = &s
	}

	filter.Page, filter.Limit = parsePagination(r)
	return filter
}
