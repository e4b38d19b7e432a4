package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/internhub/internship-backend-go/internal/domain/branch"
	"github.com/internhub/internship-backend-go/internal/domain/school"
	"github.com/internhub/internship-backend-go/internal/handler/http/response"
)

// MasterHandler serves branch and school master data endpoints.
type MasterHandler interface {
	CreateBranch(w http.ResponseWriter, r *http.Request)
	GetBranch(w http.ResponseWriter, r *http.Request)
	UpdateBranch(w http.ResponseWriter, r *http.Request)
	DeleteBranch(w http.ResponseWriter, r *http.Request)
	ListBranches(w http.ResponseWriter, r *http.Request)

	CreateSchool(w http.ResponseWriter, r *http.Request)
	GetSchool(w http.ResponseWriter, r *http.Request)
	UpdateSchool(w http.ResponseWriter, r *http.Request)
	DeleteSchool(w http.ResponseWriter, r *http.Request)
	ListSchools(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	branchService branch.BranchService
	schoolService school.SchoolService
}

func NewMasterHandler(branchService branch.BranchService, schoolService school.SchoolService) MasterHandler {
	return &masterHandlerImpl{
		branchService: branchService,
		schoolService: schoolService,
	}
}

// CreateBranch implements MasterHandler.
func (h *masterHandlerImpl) CreateBranch(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req branch.UpsertBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.branchService.Create(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Branch created", result)
}

// GetBranch implements MasterHandler.
func (h *masterHandlerImpl) GetBranch(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.branchService.Get(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateBranch implements MasterHandler.
func (h *masterHandlerImpl) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req branch.UpsertBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.branchService.Update(r.Context(), principal, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch updated", result)
}

// DeleteBranch implements MasterHandler.
func (h *masterHandlerImpl) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if err := h.branchService.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch deleted", nil)
}

// ListBranches implements MasterHandler.
func (h *masterHandlerImpl) ListBranches(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.branchService.List(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateSchool implements MasterHandler.
func (h *masterHandlerImpl) CreateSchool(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req school.UpsertSchoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.schoolService.Create(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "School created", result)
}

// GetSchool implements MasterHandler.
func (h *masterHandlerImpl) GetSchool(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.schoolService.Get(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateSchool implements MasterHandler.
func (h *masterHandlerImpl) UpdateSchool(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req school.UpsertSchoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.schoolService.Update(r.Context(), principal, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "School updated", result)
}

// DeleteSchool implements MasterHandler.
func (h *masterHandlerImpl) DeleteSchool(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if err := h.schoolService.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "School deleted", nil)
}

// ListSchools implements MasterHandler.
func (h *masterHandlerImpl) ListSchools(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.schoolService.List(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
