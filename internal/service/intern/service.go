package intern

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/internhub/internship-backend-go/internal/domain/activitylog"
	"github.com/internhub/internship-backend-go/internal/domain/branch"
	"github.com/internhub/internship-backend-go/internal/domain/intern"
	"github.com/internhub/internship-backend-go/internal/domain/school"
	"github.com/internhub/internship-backend-go/internal/domain/user"
	"github.com/internhub/internship-backend-go/internal/pkg/storage"
	"github.com/internhub/internship-backend-go/internal/pkg/validator"
)

type InternServiceImpl struct {
	intern.InternRepository
	user.UserRepository
	branch.BranchRepository
	school.SchoolRepository
	recorder activitylog.Recorder
	files    storage.FileStorage
}

func NewInternService(
	internRepo intern.InternRepository,
	userRepo user.UserRepository,
	branchRepo branch.BranchRepository,
	schoolRepo school.SchoolRepository,
	recorder activitylog.Recorder,
	files storage.FileStorage,
) intern.InternService {
	return &InternServiceImpl{
		InternRepository: internRepo,
		UserRepository:   userRepo,
		BranchRepository: branchRepo,
		SchoolRepository: schoolRepo,
		recorder:         recorder,
		files:            files,
	}
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	if d, ok := validator.IsValidDate(*s); ok {
		return &d
	}
	return nil
}

func toResponse(p intern.InternProfile) intern.InternProfileResponse {
	resp := intern.InternProfileResponse{
		ID:                     p.ID,
		UserID:                 p.UserID,
		SchoolID:               p.SchoolID,
		SchoolName:             p.SchoolName,
		BranchID:               p.BranchID,
		BranchName:             p.BranchName,
		SupervisorID:           p.SupervisorID,
		AcademicSupervisorName: p.AcademicSupervisorName,
		InternType:             string(p.InternType),
		IsActive:               p.IsActive(time.Now()),
	}
	if p.FullName != nil {
		resp.FullName = *p.FullName
	}
	if p.Email != nil {
		resp.Email = *p.Email
	}
	if p.StartDate != nil {
		s := p.StartDate.Format("2006-01-02")
		resp.StartDate = &s
	}
	if p.EndDate != nil {
		s := p.EndDate.Format("2006-01-02")
		resp.EndDate = &s
	}
	if p.ProfilePhotoPath != nil {
		resp.ProfilePhotoURL = p.ProfilePhotoPath
	}
	return resp
}

// CreateProfile implements intern.InternService.
func (s *InternServiceImpl) CreateProfile(ctx context.Context, principal user.Principal, req intern.CreateInternProfileRequest) (intern.InternProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return intern.InternProfileResponse{}, err
	}
	if !principal.Can(user.PermissionInternManage) {
		return intern.InternProfileResponse{}, user.ErrPermissionDenied
	}

	u, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return intern.InternProfileResponse{}, err
	}
	if u.Role != user.RoleIntern {
		return intern.InternProfileResponse{}, intern.ErrNotAnIntern
	}

	if err := s.validateReferences(ctx, req.SchoolID, req.BranchID, req.SupervisorID); err != nil {
		return intern.InternProfileResponse{}, err
	}

	internType := intern.InternType(req.InternType)
	if req.InternType == "" {
		internType = intern.TypeOther
	}

	created, err := s.InternRepository.Create(ctx, intern.InternProfile{
		UserID:                 req.UserID,
		SchoolID:               req.SchoolID,
		BranchID:               req.BranchID,
		SupervisorID:           req.SupervisorID,
		AcademicSupervisorName: req.AcademicSupervisorName,
		InternType:             internType,
		StartDate:              parseDate(req.StartDate),
		EndDate:                parseDate(req.EndDate),
		EmergencyContactName:   req.EmergencyContactName,
		EmergencyContactPhone:  req.EmergencyContactPhone,
	})
	if err != nil {
		return intern.InternProfileResponse{}, err
	}

	s.recorder.Record(ctx, &principal.UserID, "intern.create_profile", activitylog.EntityInternProfile, created.ID, map[string]interface{}{
		"user_id": req.UserID,
	})

	full := *s.mustGet(ctx, created.ID, &created)
	return toResponse(full), nil
}

// Get implements intern.InternService.
func (s *InternServiceImpl) Get(ctx context.Context, principal user.Principal, profileID string) (intern.InternProfileResponse, error) {
	p, err := s.InternRepository.GetByID(ctx, profileID)
	if err != nil {
		return intern.InternProfileResponse{}, err
	}

	if principal.InternProfileID != nil && p.ID == *principal.InternProfileID {
		return toResponse(p), nil
	}
	if !principal.Can(user.PermissionInternViewAll) {
		return intern.InternProfileResponse{}, user.ErrPermissionDenied
	}

	return toResponse(p), nil
}

// GetMine implements intern.InternService.
func (s *InternServiceImpl) GetMine(ctx context.Context, principal user.Principal) (intern.InternProfileResponse, error) {
	p, err := s.InternRepository.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return intern.InternProfileResponse{}, err
	}
	return toResponse(p), nil
}

// Update implements intern.InternService.
func (s *InternServiceImpl) Update(ctx context.Context, principal user.Principal, profileID string, req intern.UpdateInternProfileRequest) (intern.InternProfileResponse, error) {
	if !principal.Can(user.PermissionInternManage) {
		return intern.InternProfileResponse{}, user.ErrPermissionDenied
	}

	p, err := s.InternRepository.GetByID(ctx, profileID)
	if err != nil {
		return intern.InternProfileResponse{}, err
	}

	if err := s.validateReferences(ctx, req.SchoolID, req.BranchID, req.SupervisorID); err != nil {
		return intern.InternProfileResponse{}, err
	}

	if req.SchoolID != nil {
		p.SchoolID = req.SchoolID
	}
	if req.BranchID != nil {
		p.BranchID = req.BranchID
	}
	if req.SupervisorID != nil {
		p.SupervisorID = req.SupervisorID
	}
	if req.AcademicSupervisorName != nil {
		p.AcademicSupervisorName = req.AcademicSupervisorName
	}
	if req.InternType != nil && *req.InternType != "" {
		p.InternType = intern.InternType(*req.InternType)
	}
	if d := parseDate(req.StartDate); d != nil {
		p.StartDate = d
	}
	if d := parseDate(req.EndDate); d != nil {
		p.EndDate = d
	}
	if req.EmergencyContactName != nil {
		p.EmergencyContactName = req.EmergencyContactName
	}
	if req.EmergencyContactPhone != nil {
		p.EmergencyContactPhone = req.EmergencyContactPhone
	}

	if err := s.InternRepository.Update(ctx, p); err != nil {
		return intern.InternProfileResponse{}, err
	}

	s.recorder.Record(ctx, &principal.UserID, "intern.update_profile", activitylog.EntityInternProfile, p.ID, nil)

	full := *s.mustGet(ctx, p.ID, &p)
	return toResponse(full), nil
}

// UploadDocument implements intern.InternService.
func (s *InternServiceImpl) UploadDocument(ctx context.Context, principal user.Principal, profileID string, req intern.UploadDocumentRequest) (intern.InternProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return intern.InternProfileResponse{}, err
	}

	ownProfile := principal.InternProfileID != nil && *principal.InternProfileID == profileID
	if !ownProfile && !principal.Can(user.PermissionInternManage) {
		return intern.InternProfileResponse{}, user.ErrPermissionDenied
	}

	p, err := s.InternRepository.GetByID(ctx, profileID)
	if err != nil {
		return intern.InternProfileResponse{}, err
	}

	path := fmt.Sprintf("intern-profiles/%s/%s%s", profileID, req.Kind, filepath.Ext(req.Filename))
	stored, err := s.files.Upload(ctx, req.File, path, req.ContentType)
	if err != nil {
		return intern.InternProfileResponse{}, fmt.Errorf("failed to store document: %w", err)
	}

	switch req.Kind {
	case intern.DocumentProfilePhoto:
		p.ProfilePhotoPath = &stored
	case intern.DocumentApplicationLetter:
		p.ApplicationLetterPath = &stored
	}

	if err := s.InternRepository.Update(ctx, p); err != nil {
		return intern.InternProfileResponse{}, err
	}

	s.recorder.Record(ctx, &principal.UserID, "intern.upload_document", activitylog.EntityInternProfile, profileID, map[string]interface{}{
		"kind": string(req.Kind),
	})

	full := *s.mustGet(ctx, p.ID, &p)
	return toResponse(full), nil
}

// List implements intern.InternService.
func (s *InternServiceImpl) List(ctx context.Context, principal user.Principal, filter intern.ListInternFilter) (intern.ListInternsResponse, error) {
	if !principal.Can(user.PermissionInternViewAll) {
		return intern.ListInternsResponse{}, user.ErrPermissionDenied
	}

	if !principal.IsManagerOrAdmin() && principal.Role == user.RoleSupervisor {
		filter.SupervisorID = &principal.UserID
	}

	profiles, total, err := s.InternRepository.List(ctx, filter)
	if err != nil {
		return intern.ListInternsResponse{}, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	responses := make([]intern.InternProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, toResponse(p))
	}

	return intern.ListInternsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		Interns:    responses,
	}, nil
}

// MyInterns implements intern.InternService.
func (s *InternServiceImpl) MyInterns(ctx context.Context, principal user.Principal) ([]intern.InternProfileResponse, error) {
	profiles, err := s.InternRepository.ListBySupervisor(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	responses := make([]intern.InternProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, toResponse(p))
	}
	return responses, nil
}

// validateReferences checks that the referenced school, branch and
// supervisor exist, and that the supervisor actually holds the role.
func (s *InternServiceImpl) validateReferences(ctx context.Context, schoolID, branchID, supervisorID *string) error {
	if schoolID != nil && *schoolID != "" {
		if _, err := s.SchoolRepository.GetByID(ctx, *schoolID); err != nil {
			return err
		}
	}
	if branchID != nil && *branchID != "" {
		if _, err := s.BranchRepository.GetByID(ctx, *branchID); err != nil {
			return err
		}
	}
	if supervisorID != nil && *supervisorID != "" {
		sup, err := s.UserRepository.GetByID(ctx, *supervisorID)
		if err != nil {
			return err
		}
		if sup.Role != user.RoleSupervisor && sup.Role != user.RoleManager {
			return intern.ErrSupervisorInvalid
		}
	}
	return nil
}

// mustGet re-reads a profile to pick up its display joins, falling back to
// the bare profile when the read fails.
func (s *InternServiceImpl) mustGet(ctx context.Context, id string, fallback *intern.InternProfile) *intern.InternProfile {
	p, err := s.InternRepository.GetByID(ctx, id)
	if err != nil {
		return fallback
	}
	return &p
}
