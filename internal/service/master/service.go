package master

import (
	"context"

	"github.com/internhub/internship-backend-go/internal/domain/activitylog"
	"github.com/internhub/internship-backend-go/internal/domain/branch"
	"github.com/internhub/internship-backend-go/internal/domain/school"
	"github.com/internhub/internship-backend-go/internal/domain/user"
)

// BranchServiceImpl manages branch site master data.
type BranchServiceImpl struct {
	branch.BranchRepository
	recorder activitylog.Recorder
}

func NewBranchService(repo branch.BranchRepository, recorder activitylog.Recorder) *BranchServiceImpl {
	return &BranchServiceImpl{BranchRepository: repo, recorder: recorder}
}

func toBranchResponse(b branch.Branch) branch.BranchResponse {
	return branch.BranchResponse{
		ID:                       b.ID,
		Name:                     b.Name,
		Code:                     b.Code,
		AddressLine1:             b.AddressLine1,
		AddressLine2:             b.AddressLine2,
		City:                     b.City,
		State:                    b.State,
		Country:                  b.Country,
		Latitude:                 b.Latitude,
		Longitude:                b.Longitude,
		ProximityThresholdMeters: b.ProximityThresholdMeters,
	}
}

func branchFromRequest(req branch.UpsertBranchRequest) branch.Branch {
	threshold := req.ProximityThresholdMeters
	if threshold == 0 {
		threshold = branch.DefaultProximityThresholdMeters
	}
	return branch.Branch{
		Name:                     req.Name,
		Code:                     req.Code,
		AddressLine1:             req.AddressLine1,
		AddressLine2:             req.AddressLine2,
		City:                     req.City,
		State:                    req.State,
		Country:                  req.Country,
		Latitude:                 req.Latitude,
		Longitude:                req.Longitude,
		ProximityThresholdMeters: threshold,
	}
}

func (s *BranchServiceImpl) Create(ctx context.Context, principal user.Principal, req branch.UpsertBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}
	if !principal.Can(user.PermissionMasterManage) {
		return branch.BranchResponse{}, user.ErrPermissionDenied
	}

	created, err := s.BranchRepository.Create(ctx, branchFromRequest(req))
	if err != nil {
		return branch.BranchResponse{}, err
	}

	s.recorder.Record(ctx, &principal.UserID, "branch.create", activitylog.EntityBranch, created.ID, map[string]interface{}{
		"code": created.Code,
	})

	return toBranchResponse(created), nil
}

func (s *BranchServiceImpl) Get(ctx context.Context, principal user.Principal, branchID string) (branch.BranchResponse, error) {
	if !principal.Can(user.PermissionMasterView) {
		return branch.BranchResponse{}, user.ErrPermissionDenied
	}
	b, err := s.BranchRepository.GetByID(ctx, branchID)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return toBranchResponse(b), nil
}

func (s *BranchServiceImpl) Update(ctx context.Context, principal user.Principal, branchID string, req branch.UpsertBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}
	if !principal.Can(user.PermissionMasterManage) {
		return branch.BranchResponse{}, user.ErrPermissionDenied
	}

	b := branchFromRequest(req)
	b.ID = branchID
	if err := s.BranchRepository.Update(ctx, b); err != nil {
		return branch.BranchResponse{}, err
	}

	s.recorder.Record(ctx, &principal.UserID, "branch.update", activitylog.EntityBranch, branchID, nil)

	updated, err := s.BranchRepository.GetByID(ctx, branchID)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return toBranchResponse(updated), nil
}

func (s *BranchServiceImpl) Delete(ctx context.Context, principal user.Principal, branchID string) error {
	if !principal.Can(user.PermissionMasterManage) {
		return user.ErrPermissionDenied
	}
	if err := s.BranchRepository.Delete(ctx, branchID); err != nil {
		return err
	}
	s.recorder.Record(ctx, &principal.UserID, "branch.delete", activitylog.EntityBranch, branchID, nil)
	return nil
}

func (s *BranchServiceImpl) List(ctx context.Context, principal user.Principal) ([]branch.BranchResponse, error) {
	if !principal.Can(user.PermissionMasterView) {
		return nil, user.ErrPermissionDenied
	}
	branches, err := s.BranchRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, toBranchResponse(b))
	}
	return out, nil
}

// SchoolServiceImpl manages sending-institution master data.
type SchoolServiceImpl struct {
	school.SchoolRepository
	recorder activitylog.Recorder
}

func NewSchoolService(repo school.SchoolRepository, recorder activitylog.Recorder) *SchoolServiceImpl {
	return &SchoolServiceImpl{SchoolRepository: repo, recorder: recorder}
}

func toSchoolResponse(s school.School) school.SchoolResponse {
	return school.SchoolResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		ContactEmail:  s.ContactEmail,
		ContactPhone:  s.ContactPhone,
		Address:       s.Address,
	}
}

func (s *SchoolServiceImpl) Create(ctx context.Context, principal user.Principal, req school.UpsertSchoolRequest) (school.SchoolResponse, error) {
	if err := req.Validate(); err != nil {
		return school.SchoolResponse{}, err
	}
	if !principal.Can(user.PermissionMasterManage) {
		return school.SchoolResponse{}, user.ErrPermissionDenied
	}

	created, err := s.SchoolRepository.Create(ctx, school.School{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Address:       req.Address,
	})
	if err != nil {
		return school.SchoolResponse{}, err
	}

	s.recorder.Record(ctx, &principal.UserID, "school.create", activitylog.EntitySchool, created.ID, map[string]interface{}{
		"name": created.Name,
	})

	return toSchoolResponse(created), nil
}

func (s *SchoolServiceImpl) Get(ctx context.Context, principal user.Principal, schoolID string) (school.SchoolResponse, error) {
	if !principal.Can(user.PermissionMasterView) {
		return school.SchoolResponse{}, user.ErrPermissionDenied
	}
	sch, err := s.SchoolRepository.GetByID(ctx, schoolID)
	if err != nil {
		return school.SchoolResponse{}, err
	}
	return toSchoolResponse(sch), nil
}

func (s *SchoolServiceImpl) Update(ctx context.Context, principal user.Principal, schoolID string, req school.UpsertSchoolRequest) (school.SchoolResponse, error) {
	if err := req.Validate(); err != nil {
		return school.SchoolResponse{}, err
	}
	if !principal.Can(user.PermissionMasterManage) {
		return school.SchoolResponse{}, user.ErrPermissionDenied
	}

	if err := s.SchoolRepository.Update(ctx, school.School{
		ID:            schoolID,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Address:       req.Address,
	}); err != nil {
		return school.SchoolResponse{}, err
	}

	s.recorder.Record(ctx, &principal.UserID, "school.update", activitylog.EntitySchool, schoolID, nil)

	updated, err := s.SchoolRepository.GetByID(ctx, schoolID)
	if err != nil {
		return school.SchoolResponse{}, err
	}
	return toSchoolResponse(updated), nil
}

func (s *SchoolServiceImpl) Delete(ctx context.Context, principal user.Principal, schoolID string) error {
	if !principal.Can(user.PermissionMasterManage) {
		return user.ErrPermissionDenied
	}
	if err := s.SchoolRepository.Delete(ctx, schoolID); err != nil {
		return err
	}
	s.recorder.Record(ctx, &principal.UserID, "school.delete", activitylog.EntitySchool, schoolID, nil)
	return nil
}

func (s *SchoolServiceImpl) List(ctx context.Context, principal user.Principal) ([]school.SchoolResponse, error) {
	if !principal.Can(user.PermissionMasterView) {
		return nil, user.ErrPermissionDenied
	}
	schools, err := s.SchoolRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]school.SchoolResponse, 0, len(schools))
	for _, sch := range schools {
		out = append(out, toSchoolResponse(sch))
	}
	return out, nil
}
