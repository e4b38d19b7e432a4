package absence

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/internhub/internship-backend-go/internal/domain/absence"
	"github.com/internhub/internship-backend-go/internal/domain/activitylog"
	"github.com/internhub/internship-backend-go/internal/domain/intern"
	"github.com/internhub/internship-backend-go/internal/domain/notification"
	"github.com/internhub/internship-backend-go/internal/domain/user"
	"github.com/internhub/internship-backend-go/internal/pkg/storage"
	"github.com/internhub/internship-backend-go/internal/pkg/validator"
)

type RequestServiceImpl struct {
	absence.RequestRepository
	intern.InternRepository
	notifier notification.Service
	recorder activitylog.Recorder
	files    storage.FileStorage
}

func NewRequestService(
	requestRepo absence.RequestRepository,
	internRepo intern.InternRepository,
	notifier notification.Service,
	recorder activitylog.Recorder,
	files storage.FileStorage,
) absence.RequestService {
	return &RequestServiceImpl{
		RequestRepository: requestRepo,
		InternRepository:  internRepo,
		notifier:          notifier,
		recorder:          recorder,
		files:             files,
	}
}

func toResponse(req absence.Request) absence.RequestResponse {
	resp := absence.RequestResponse{
		ID:           req.ID,
		InternID:     req.InternID,
		InternName:   req.InternName,
		Reason:       req.Reason,
		StartDate:    req.StartDate.Format("2006-01-02"),
		EndDate:      req.EndDate.Format("2006-01-02"),
		Status:       string(req.Status),
		ApproverID:   req.ApproverID,
		SubmittedAt:  req.SubmittedAt.Format(time.RFC3339),
		DecisionNote: req.DecisionNote,
	}
	if req.DecisionAt != nil {
		s := req.DecisionAt.Format(time.RFC3339)
		resp.DecisionAt = &s
	}
	if req.SupportingDocumentPath != nil {
		resp.SupportingDocumentURL = req.SupportingDocumentPath
	}
	return resp
}

// Submit implements absence.RequestService.
func (s *RequestServiceImpl) Submit(ctx context.Context, principal user.Principal, req absence.SubmitRequest) (absence.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.RequestResponse{}, err
	}
	if !principal.Can(user.PermissionAbsenceSubmit) || principal.InternProfileID == nil {
		return absence.RequestResponse{}, absence.ErrUnauthorized
	}

	profile, err := s.InternRepository.GetByID(ctx, *principal.InternProfileID)
	if err != nil {
		return absence.RequestResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	var documentPath *string
	if req.Document != nil {
		path := fmt.Sprintf("absence-documents/%s/%s%s", profile.ID, uuid.NewString(), filepath.Ext(req.DocumentName))
		stored, err := s.files.Upload(ctx, req.Document, path, req.DocumentContentType)
		if err != nil {
			return absence.RequestResponse{}, fmt.Errorf("failed to store supporting document: %w", err)
		}
		documentPath = &stored
	}

	created, err := s.RequestRepository.Create(ctx, absence.Request{
		InternID:               profile.ID,
		Reason:                 req.Reason,
		StartDate:              start,
		EndDate:                end,
		Status:                 absence.StatusPending,
		SupportingDocumentPath: documentPath,
		SubmittedAt:            time.Now(),
	})
	if err != nil {
		return absence.RequestResponse{}, err
	}

	if profile.SupervisorID != nil {
		kind := notification.EntityAbsenceRequest
		name := "An intern"
		if profile.FullName != nil && *profile.FullName != "" {
			name = *profile.FullName
		}
		s.notify(ctx, notification.CreateNotificationRequest{
			RecipientID: *profile.SupervisorID,
			Title:       "Absence request submitted",
			Message:     fmt.Sprintf("%s requested leave from %s to %s.", name, req.StartDate, req.EndDate),
			Type:        notification.TypeInfo,
			Category:    notification.CategoryAbsenteeism,
			ActionURL:   "/absence-requests/" + created.ID,
			EntityKind:  &kind,
			EntityID:    &created.ID,
			SendEmail:   true,
		})
	}

	s.recorder.Record(ctx, &principal.UserID, "absence.submit", activitylog.EntityAbsenceRequest, created.ID, map[string]interface{}{
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
	})

	return toResponse(created), nil
}

// Decide implements absence.RequestService.
func (s *RequestServiceImpl) Decide(ctx context.Context, principal user.Principal, requestID string, req absence.DecideRequest) (absence.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.RequestResponse{}, err
	}
	if !principal.Can(user.PermissionAbsenceApprove) {
		return absence.RequestResponse{}, absence.ErrUnauthorized
	}

	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return absence.RequestResponse{}, err
	}

	profile, err := s.InternRepository.GetByID(ctx, request.InternID)
	if err != nil {
		return absence.RequestResponse{}, err
	}
	if !principal.IsManagerOrAdmin() {
		if profile.SupervisorID == nil || *profile.SupervisorID != principal.UserID {
			return absence.RequestResponse{}, absence.ErrUnauthorized
		}
	}

	if request.IsDecided() {
		return absence.RequestResponse{}, absence.ErrAlreadyProcessed
	}

	status := absence.StatusApproved
	if !req.Approve {
		status = absence.StatusRejected
	}

	now := time.Now()
	updated, err := s.RequestRepository.Decide(ctx, requestID, status, &principal.UserID, now, req.Note)
	if err != nil {
		return absence.RequestResponse{}, err
	}
	if !updated {
		return absence.RequestResponse{}, absence.ErrAlreadyProcessed
	}

	request, err = s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return absence.RequestResponse{}, err
	}

	kind := notification.EntityAbsenceRequest
	nType := notification.TypeSuccess
	title := "Absence request approved"
	message := fmt.Sprintf("Your leave from %s to %s was approved.",
		request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"))
	if status == absence.StatusRejected {
		nType = notification.TypeError
		title = "Absence request rejected"
		message = fmt.Sprintf("Your leave from %s to %s was rejected: %s",
			request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"), req.Note)
	}
	s.notify(ctx, notification.CreateNotificationRequest{
		RecipientID: profile.UserID,
		Title:       title,
		Message:     message,
		Type:        nType,
		Category:    notification.CategoryAbsenteeism,
		ActionURL:   "/absence-requests/" + request.ID,
		EntityKind:  &kind,
		EntityID:    &request.ID,
		SendEmail:   true,
	})

	s.recorder.Record(ctx, &principal.UserID, "absence."+string(status), activitylog.EntityAbsenceRequest, request.ID, nil)

	return toResponse(request), nil
}

// Cancel implements absence.RequestService.
func (s *RequestServiceImpl) Cancel(ctx context.Context, principal user.Principal, requestID string) (absence.RequestResponse, error) {
	if principal.InternProfileID == nil {
		return absence.RequestResponse{}, absence.ErrUnauthorized
	}

	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return absence.RequestResponse{}, err
	}
	if request.InternID != *principal.InternProfileID {
		return absence.RequestResponse{}, absence.ErrUnauthorized
	}
	if request.IsDecided() {
		return absence.RequestResponse{}, absence.ErrAlreadyProcessed
	}

	updated, err := s.RequestRepository.Decide(ctx, requestID, absence.StatusCancelled, nil, time.Now(), "")
	if err != nil {
		return absence.RequestResponse{}, err
	}
	if !updated {
		return absence.RequestResponse{}, absence.ErrAlreadyProcessed
	}

	request, err = s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return absence.RequestResponse{}, err
	}

	s.recorder.Record(ctx, &principal.UserID, "absence.cancel", activitylog.EntityAbsenceRequest, request.ID, nil)

	return toResponse(request), nil
}

// Get implements absence.RequestService.
func (s *RequestServiceImpl) Get(ctx context.Context, principal user.Principal, requestID string) (absence.RequestResponse, error) {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return absence.RequestResponse{}, err
	}

	if principal.InternProfileID != nil && request.InternID == *principal.InternProfileID {
		return toResponse(request), nil
	}
	if !principal.Can(user.PermissionAbsenceViewAll) && !principal.Can(user.PermissionAbsenceApprove) {
		return absence.RequestResponse{}, absence.ErrUnauthorized
	}
	if !principal.IsManagerOrAdmin() && principal.Role == user.RoleSupervisor {
		profile, err := s.InternRepository.GetByID(ctx, request.InternID)
		if err != nil {
			return absence.RequestResponse{}, err
		}
		if profile.SupervisorID == nil || *profile.SupervisorID != principal.UserID {
			return absence.RequestResponse{}, absence.ErrUnauthorized
		}
	}

	return toResponse(request), nil
}

// MyRequests implements absence.RequestService.
func (s *RequestServiceImpl) MyRequests(ctx context.Context, principal user.Principal, filter absence.RequestFilter) (absence.ListRequestsResponse, error) {
	if principal.InternProfileID == nil {
		return absence.ListRequestsResponse{}, absence.ErrUnauthorized
	}

	filter.InternID = principal.InternProfileID
	requests, total, err := s.RequestRepository.List(ctx, filter)
	if err != nil {
		return absence.ListRequestsResponse{}, err
	}

	return listResponse(requests, total, filter), nil
}

// List implements absence.RequestService.
func (s *RequestServiceImpl) List(ctx context.Context, principal user.Principal, filter absence.RequestFilter) (absence.ListRequestsResponse, error) {
	if !principal.Can(user.PermissionAbsenceViewAll) && !principal.Can(user.PermissionAbsenceApprove) {
		return absence.ListRequestsResponse{}, absence.ErrUnauthorized
	}

	var requests []absence.Request
	var total int64
	var err error
	if !principal.IsManagerOrAdmin() && principal.Role == user.RoleSupervisor {
		requests, total, err = s.RequestRepository.ListForSupervisor(ctx, principal.UserID, filter)
	} else {
		requests, total, err = s.RequestRepository.List(ctx, filter)
	}
	if err != nil {
		return absence.ListRequestsResponse{}, err
	}

	return listResponse(requests, total, filter), nil
}

func (s *RequestServiceImpl) notify(ctx context.Context, req notification.CreateNotificationRequest) {
	_, _ = s.notifier.Notify(ctx, req)
}

func listResponse(requests []absence.Request, total int64, filter absence.RequestFilter) absence.ListRequestsResponse {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	responses := make([]absence.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toResponse(req))
	}

	return absence.ListRequestsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		Requests:   responses,
	}
}
