package assessment

import (
	"context"
	"fmt"
	"time"

	"github.com/internhub/internship-backend-go/internal/domain/activitylog"
	"github.com/internhub/internship-backend-go/internal/domain/assessment"
	"github.com/internhub/internship-backend-go/internal/domain/intern"
	"github.com/internhub/internship-backend-go/internal/domain/notification"
	"github.com/internhub/internship-backend-go/internal/domain/user"
	"github.com/internhub/internship-backend-go/internal/pkg/validator"
)

type AssessmentServiceImpl struct {
	assessment.AssessmentRepository
	intern.InternRepository
	notifier notification.Service
	recorder activitylog.Recorder
}

func NewAssessmentService(
	assessmentRepo assessment.AssessmentRepository,
	internRepo intern.InternRepository,
	notifier notification.Service,
	recorder activitylog.Recorder,
) assessment.AssessmentService {
	return &AssessmentServiceImpl{
		AssessmentRepository: assessmentRepo,
		InternRepository:     internRepo,
		notifier:             notifier,
		recorder:             recorder,
	}
}

func datePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func toResponse(a assessment.PerformanceAssessment) assessment.AssessmentResponse {
	return assessment.AssessmentResponse{
		ID:                  a.ID,
		InternID:            a.InternID,
		InternName:          a.InternName,
		AssessedBy:          a.AssessedBy,
		AssessmentDate:      a.AssessmentDate.Format("2006-01-02"),
		PeriodStart:         datePtrToString(a.PeriodStart),
		PeriodEnd:           datePtrToString(a.PeriodEnd),
		WeekNumber:          a.WeekNumber,
		Status:              string(a.Status),
		SupervisorScore:     a.SupervisorScore,
		SupervisorNote:      a.SupervisorNote,
		InternScore:         a.InternScore,
		InternNote:          a.InternNote,
		AcknowledgementNote: a.AcknowledgementNote,
		IsCompleted:         a.IsCompleted(),
	}
}

// Create implements assessment.AssessmentService.
func (s *AssessmentServiceImpl) Create(ctx context.Context, principal user.Principal, req assessment.CreateRequest) (assessment.AssessmentResponse, error) {
	if err := req.Validate(); err != nil {
		return assessment.AssessmentResponse{}, err
	}
	if !principal.Can(user.PermissionAssessmentCreate) {
		return assessment.AssessmentResponse{}, assessment.ErrUnauthorized
	}

	profile, err := s.InternRepository.GetByID(ctx, req.InternID)
	if err != nil {
		return assessment.AssessmentResponse{}, err
	}
	if !principal.IsManagerOrAdmin() {
		if profile.SupervisorID == nil || *profile.SupervisorID != principal.UserID {
			return assessment.AssessmentResponse{}, assessment.ErrUnauthorized
		}
	}

	week := req.WeekNumber
	if week == 0 {
		week, err = s.AssessmentRepository.NextWeekNumber(ctx, profile.ID)
		if err != nil {
			return assessment.AssessmentResponse{}, err
		}
	}

	a := assessment.PerformanceAssessment{
		InternID:       profile.ID,
		AssessedBy:     &principal.UserID,
		AssessmentDate: time.Now(),
		WeekNumber:     week,
		Status:         assessment.StatusDraft,
	}
	if req.PeriodStart != nil && *req.PeriodStart != "" {
		if d, ok := validator.IsValidDate(*req.PeriodStart); ok {
			a.PeriodStart = &d
		}
	}
	if req.PeriodEnd != nil && *req.PeriodEnd != "" {
		if d, ok := validator.IsValidDate(*req.PeriodEnd); ok {
			a.PeriodEnd = &d
		}
	}

	created, err := s.AssessmentRepository.Create(ctx, a)
	if err != nil {
		return assessment.AssessmentResponse{}, err
	}

	kind := notification.EntityAssessment
	s.notify(ctx, notification.CreateNotificationRequest{
		RecipientID: profile.UserID,
		Title:       "Weekly assessment opened",
		Message:     fmt.Sprintf("Your week %d assessment is ready for your self-assessment.", week),
		Type:        notification.TypeInfo,
		Category:    notification.CategoryAssessment,
		ActionURL:   "/assessments/" + created.ID,
		EntityKind:  &kind,
		EntityID:    &created.ID,
		SendEmail:   true,
	})

	s.recorder.Record(ctx, &principal.UserID, "assessment.create", activitylog.EntityAssessment, created.ID, map[string]interface{}{
		"week_number": week,
	})

	return toResponse(created), nil
}

// SelfAssess implements assessment.AssessmentService.
func (s *AssessmentServiceImpl) SelfAssess(ctx context.Context, principal user.Principal, assessmentID string, req assessment.SelfAssessRequest) (assessment.AssessmentResponse, error) {
	if err := req.Validate(); err != nil {
		return assessment.AssessmentResponse{}, err
	}
	if principal.InternProfileID == nil {
		return assessment.AssessmentResponse{}, assessment.ErrUnauthorized
	}

	a, err := s.AssessmentRepository.GetByID(ctx, assessmentID)
	if err != nil {
		return assessment.AssessmentResponse{}, err
	}
	if a.InternID != *principal.InternProfileID {
		return assessment.AssessmentResponse{}, assessment.ErrUnauthorized
	}

	updated, err := s.AssessmentRepository.SetSelfAssessment(ctx, assessmentID, req.Score, req.Note)
	if err != nil {
		return assessment.AssessmentResponse{}, err
	}

	if a.AssessedBy != nil {
		kind := notification.EntityAssessment
		s.notify(ctx, notification.CreateNotificationRequest{
			RecipientID: *a.AssessedBy,
			Title:       "Self-assessment submitted",
			Message:     fmt.Sprintf("Week %d self-assessment was submitted and awaits your review.", a.WeekNumber),
			Type:        notification.TypeInfo,
			Category:    notification.CategoryAssessment,
			ActionURL:   "/assessments/" + a.ID,
			EntityKind:  &kind,
			EntityID:    &a.ID,
			SendEmail:   true,
		})
	}

	s.recorder.Record(ctx, &principal.UserID, "assessment.self_assess", activitylog.EntityAssessment, a.ID, map[string]interface{}{
		"score": req.Score,
	})

	return toResponse(updated), nil
}

// Review implements assessment.AssessmentService.
func (s *AssessmentServiceImpl) Review(ctx context.Context, principal user.Principal, assessmentID string, req assessment.ReviewRequest) (assessment.AssessmentResponse, error) {
	if err := req.Validate(); err != nil {
		return assessment.AssessmentResponse{}, err
	}
	if !principal.Can(user.PermissionAssessmentReview) {
		return assessment.AssessmentResponse{}, assessment.ErrUnauthorized
	}

	a, err := s.AssessmentRepository.GetByID(ctx, assessmentID)
	if err != nil {
		return assessment.AssessmentResponse{}, err
	}
	if !principal.IsManagerOrAdmin() {
		if a.AssessedBy == nil || *a.AssessedBy != principal.UserID {
			return assessment.AssessmentResponse{}, assessment.ErrUnauthorized
		}
	}

	updated, err := s.AssessmentRepository.SetReview(ctx, assessmentID, req.Score, req.Note, req.AcknowledgementNote)
	if err != nil {
		return assessment.AssessmentResponse{}, err
	}

	profile, err := s.InternRepository.GetByID(ctx, a.InternID)
	if err == nil {
		kind := notification.EntityAssessment
		s.notify(ctx, notification.CreateNotificationRequest{
			RecipientID: profile.UserID,
			Title:       "Assessment reviewed",
			Message:     fmt.Sprintf("Your week %d assessment was reviewed with a score of %d.", a.WeekNumber, req.Score),
			Type:        notification.TypeSuccess,
			Category:    notification.CategoryAssessment,
			ActionURL:   "/assessments/" + a.ID,
			EntityKind:  &kind,
			EntityID:    &a.ID,
			SendEmail:   true,
		})
	}

	s.recorder.Record(ctx, &principal.UserID, "assessment.review", activitylog.EntityAssessment, a.ID, map[string]interface{}{
		"score": req.Score,
	})

	return toResponse(updated), nil
}

// Get implements assessment.AssessmentService.
func (s *AssessmentServiceImpl) Get(ctx context.Context, principal user.Principal, assessmentID string) (assessment.AssessmentResponse, error) {
	a, err := s.AssessmentRepository.GetByID(ctx, assessmentID)
	if err != nil {
		return assessment.AssessmentResponse{}, err
	}

	if principal.InternProfileID != nil && a.InternID == *principal.InternProfileID {
		return toResponse(a), nil
	}
	if !principal.Can(user.PermissionAssessmentViewAll) {
		return assessment.AssessmentResponse{}, assessment.ErrUnauthorized
	}
	if !principal.IsManagerOrAdmin() && principal.Role == user.RoleSupervisor {
		profile, err := s.InternRepository.GetByID(ctx, a.InternID)
		if err != nil {
			return assessment.AssessmentResponse{}, err
		}
		if profile.SupervisorID == nil || *profile.SupervisorID != principal.UserID {
			return assessment.AssessmentResponse{}, assessment.ErrUnauthorized
		}
	}

	return toResponse(a), nil
}

// MyAssessments implements assessment.AssessmentService.
func (s *AssessmentServiceImpl) MyAssessments(ctx context.Context, principal user.Principal, filter assessment.AssessmentFilter) (assessment.ListAssessmentsResponse, error) {
	if principal.InternProfileID == nil {
		return assessment.ListAssessmentsResponse{}, assessment.ErrUnauthorized
	}

	filter.InternID = principal.InternProfileID
	assessments, total, err := s.AssessmentRepository.List(ctx, filter)
	if err != nil {
		return assessment.ListAssessmentsResponse{}, err
	}

	return listResponse(assessments, total, filter), nil
}

// List implements assessment.AssessmentService.
func (s *AssessmentServiceImpl) List(ctx context.Context, principal user.Principal, filter assessment.AssessmentFilter) (assessment.ListAssessmentsResponse, error) {
	if !principal.Can(user.PermissionAssessmentViewAll) {
		return assessment.ListAssessmentsResponse{}, assessment.ErrUnauthorized
	}

	if !principal.IsManagerOrAdmin() && principal.Role == user.RoleSupervisor {
		filter.SupervisorID = &principal.UserID
	}

	assessments, total, err := s.AssessmentRepository.List(ctx, filter)
	if err != nil {
		return assessment.ListAssessmentsResponse{}, err
	}

	return listResponse(assessments, total, filter), nil
}

func (s *AssessmentServiceImpl) notify(ctx context.Context, req notification.CreateNotificationRequest) {
	_, _ = s.notifier.Notify(ctx, req)
}

func listResponse(assessments []assessment.PerformanceAssessment, total int64, filter assessment.AssessmentFilter) assessment.ListAssessmentsResponse {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	responses := make([]assessment.AssessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		responses = append(responses, toResponse(a))
	}

	return assessment.ListAssessmentsResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		Assessments: responses,
	}
}
