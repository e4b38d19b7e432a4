package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/internhub/internship-backend-go/internal/domain/intern"
	"github.com/internhub/internship-backend-go/internal/handler/http/response"
)

type InternHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMine(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UploadDocument(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MyInterns(w http.ResponseWriter, r *http.Request)
}

type internHandlerImpl struct {
	internService intern.InternService
}

func NewInternHandler(internService intern.InternService) InternHandler {
	return &internHandlerImpl{
		internService: internService,
	}
}

// Create implements InternHandler.
func (h *internHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req intern.CreateInternProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.internService.CreateProfile(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Intern profile created", result)
}

// Get implements InternHandler.
func (h *internHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	result, err := h.internService.Get(r.Context(), principal, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMine implements InternHandler.
func (h *internHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.internService.GetMine(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements InternHandler.
func (h *internHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req intern.UpdateInternProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.internService.Update(r.Context(), principal, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Intern profile updated", result)
}

// UploadDocument implements InternHandler. Multipart with a 'file' field;
// the 'kind' form value selects profile photo or application letter.
func (h *internHandlerImpl) UploadDocument(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "A file is required", nil)
			return
		}
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req := intern.UploadDocumentRequest{
		Kind:        intern.DocumentKind(r.FormValue("kind")),
		File:        file,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.internService.UploadDocument(r.Context(), principal, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document uploaded", result)
}

// List implements InternHandler.
func (h *internHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	filter := intern.ListInternFilter{
		Search: r.URL.Query().Get("search"),
	}
	if branchID := r.URL.Query().Get("branch_id"); branchID != "" {
		filter.BranchID = &branchID
	}
	if supervisorID := r.URL.Query().Get("supervisor_id"); supervisorID != "" {
		filter.SupervisorID = &supervisorID
	}
	if schoolID := r.URL.Query().Get("school_id"); schoolID != "" {
		filter.SchoolID = &schoolID
	}
	filter.Page, filter.Limit = parsePagination(r)

	result, err := h.internService.List(r.Context(), principal, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyInterns implements InternHandler.
func (h *internHandlerImpl) MyInterns(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.internService.MyInterns(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
