package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/internhub/internship-backend-go/internal/domain/absence"
	"github.com/internhub/internship-backend-go/internal/handler/http/response"
)

type AbsenceHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type absenceHandlerImpl struct {
	requestService absence.RequestService
}

func NewAbsenceHandler(requestService absence.RequestService) AbsenceHandler {
	return &absenceHandlerImpl{
		requestService: requestService,
	}
}

// Submit implements AbsenceHandler. Accepts plain JSON, or multipart with a
// 'data' JSON field plus an optional 'document' file.
func (h *absenceHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req absence.SubmitRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		// Parse multipart form (max 10MB)
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}

		dataJSON := r.FormValue("data")
		if dataJSON == "" {
			response.BadRequest(w, "Field 'data' is required", nil)
			return
		}
		if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}

		file, fileHeader, err := r.FormFile("document")
		if err != nil && err != http.ErrMissingFile {
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
		if err == nil {
			defer file.Close()
			req.Document = file
			req.DocumentName = fileHeader.Filename
			req.DocumentContentType = fileHeader.Header.Get("Content-Type")
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.requestService.Submit(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence request submitted", result)
}

// Decide implements AbsenceHandler.
func (h *absenceHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req absence.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.requestService.Decide(r.Context(), principal, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request decision recorded", result)
}

// Cancel implements AbsenceHandler.
func (h *absenceHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	result, err := h.requestService.Cancel(r.Context(), principal, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request cancelled", result)
}

// Get implements AbsenceHandler.
func (h *absenceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	result, err := h.requestService.Get(r.Context(), principal, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyRequests implements AbsenceHandler.
func (h *absenceHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.requestService.MyRequests(r.Context(), principal, parseAbsenceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AbsenceHandler.
func (h *absenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	filter := parseAbsenceFilter(r)
	if internID := r.URL.Query().Get("intern_id"); internID != "" {
		filter.InternID = &internID
	}

	result, err := h.requestService.List(r.Context(), principal, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func parseAbsenceFilter(r *http.Request) absence.RequestFilter {
	filter := absence.RequestFilter{}

	if status := r.URL.Query().Get("status"); status != "" {
		s := absence.Status(status)
		filter.Status = &s
	}
	if from := r.URL.Query().Get("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := r.URL.Query().Get("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.DateTo = &t
		}
	}

	filter.Page, filter.Limit = parsePagination(r)
	return filter
}
