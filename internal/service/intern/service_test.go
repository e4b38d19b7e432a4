package intern

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/internship-backend-go/internal/domain/activitylog"
	"github.com/internhub/internship-backend-go/internal/domain/branch"
	"github.com/internhub/internship-backend-go/internal/domain/intern"
	"github.com/internhub/internship-backend-go/internal/domain/school"
	"github.com/internhub/internship-backend-go/internal/domain/user"
)

type fakeInternRepo struct {
	seq      int
	profiles map[string]intern.InternProfile
}

func newFakeInternRepo() *fakeInternRepo {
	return &fakeInternRepo{profiles: map[string]intern.InternProfile{}}
}

func (f *fakeInternRepo) Create(_ context.Context, p intern.InternProfile) (intern.InternProfile, error) {
	for _, existing := range f.profiles {
		if existing.UserID == p.UserID {
			return intern.InternProfile{}, intern.ErrProfileExists
		}
	}
	f.seq++
	p.ID = fmt.Sprintf("intern-%d", f.seq)
	f.profiles[p.ID] = p
	return p, nil
}

func (f *fakeInternRepo) GetByID(_ context.Context, id string) (intern.InternProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return intern.InternProfile{}, intern.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeInternRepo) GetByUserID(_ context.Context, userID string) (intern.InternProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return intern.InternProfile{}, intern.ErrProfileNotFound
}

func (f *fakeInternRepo) Update(_ context.Context, p intern.InternProfile) error {
	if _, ok := f.profiles[p.ID]; !ok {
		return intern.ErrProfileNotFound
	}
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeInternRepo) List(_ context.Context, filter intern.ListInternFilter) ([]intern.InternProfile, int64, error) {
	var out []intern.InternProfile
	for _, p := range f.profiles {
		if filter.SupervisorID != nil && (p.SupervisorID == nil || *p.SupervisorID != *filter.SupervisorID) {
			continue
		}
		if filter.BranchID != nil && (p.BranchID == nil || *p.BranchID != *filter.BranchID) {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeInternRepo) ListBySupervisor(_ context.Context, supervisorID string) ([]intern.InternProfile, error) {
	var out []intern.InternProfile
	for _, p := range f.profiles {
		if p.SupervisorID != nil && *p.SupervisorID == supervisorID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByOAuth(_ context.Context, _, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id string, role user.Role) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Role = role
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _ *user.Role, _, _ int) ([]user.User, int64, error) {
	var out []user.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

type fakeBranchRepo struct {
	branches map[string]branch.Branch
}

func (f *fakeBranchRepo) Create(_ context.Context, b branch.Branch) (branch.Branch, error) {
	f.branches[b.ID] = b
	return b, nil
}

func (f *fakeBranchRepo) GetByID(_ context.Context, id string) (branch.Branch, error) {
	b, ok := f.branches[id]
	if !ok {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return b, nil
}

func (f *fakeBranchRepo) GetByCode(_ context.Context, _ string) (branch.Branch, error) {
	return branch.Branch{}, branch.ErrBranchNotFound
}

func (f *fakeBranchRepo) Update(_ context.Context, b branch.Branch) error {
	f.branches[b.ID] = b
	return nil
}

func (f *fakeBranchRepo) Delete(_ context.Context, id string) error {
	delete(f.branches, id)
	return nil
}

func (f *fakeBranchRepo) List(_ context.Context) ([]branch.Branch, error) {
	return nil, nil
}

type fakeSchoolRepo struct {
	schools map[string]school.School
}

func (f *fakeSchoolRepo) Create(_ context.Context, s school.School) (school.School, error) {
	f.schools[s.ID] = s
	return s, nil
}

func (f *fakeSchoolRepo) GetByID(_ context.Context, id string) (school.School, error) {
	s, ok := f.schools[id]
	if !ok {
		return school.School{}, school.ErrSchoolNotFound
	}
	return s, nil
}

func (f *fakeSchoolRepo) Update(_ context.Context, s school.School) error {
	f.schools[s.ID] = s
	return nil
}

func (f *fakeSchoolRepo) Delete(_ context.Context, id string) error {
	delete(f.schools, id)
	return nil
}

func (f *fakeSchoolRepo) List(_ context.Context) ([]school.School, error) {
	return nil, nil
}

type fakeFileStorage struct {
	uploads map[string][]byte
}

func (f *fakeFileStorage) Upload(_ context.Context, file io.Reader, path string, _ string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.uploads[path] = data
	return path, nil
}

func (f *fakeFileStorage) Download(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := f.uploads[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeFileStorage) Delete(_ context.Context, path string) error {
	delete(f.uploads, path)
	return nil
}

func (f *fakeFileStorage) GetURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "/files/" + path, nil
}

func (f *fakeFileStorage) Exists(_ context.Context, path string) (bool, error) {
	_, ok := f.uploads[path]
	return ok, nil
}

type noopRecorder struct{}

func (noopRecorder) Record(_ context.Context, _ *string, _ string, _ activitylog.EntityKind, _ string, _ map[string]interface{}) {
}

func strPtr(s string) *string { return &s }

type fixture struct {
	interns  *fakeInternRepo
	users    *fakeUserRepo
	branches *fakeBranchRepo
	schools  *fakeSchoolRepo
	files    *fakeFileStorage
	svc      intern.InternService
}

func newFixture() *fixture {
	f := &fixture{
		interns: newFakeInternRepo(),
		users: &fakeUserRepo{users: map[string]user.User{
			"user-intern-1": {ID: "user-intern-1", Email: "ayu@example.test", FirstName: "Ayu", LastName: "Lestari", Role: user.RoleIntern},
			"user-intern-2": {ID: "user-intern-2", Email: "budi@example.test", FirstName: "Budi", Role: user.RoleIntern},
			"user-sup-1":    {ID: "user-sup-1", Email: "sup@example.test", Role: user.RoleSupervisor},
			"user-emp-1":    {ID: "user-emp-1", Email: "emp@example.test", Role: user.RoleEmployee},
			"user-mgr-1":    {ID: "user-mgr-1", Email: "mgr@example.test", Role: user.RoleManager},
		}},
		branches: &fakeBranchRepo{branches: map[string]branch.Branch{
			"branch-1": {ID: "branch-1", Name: "Jakarta HQ", Code: "JKT-01"},
		}},
		schools: &fakeSchoolRepo{schools: map[string]school.School{
			"school-1": {ID: "school-1", Name: "Politeknik Negeri Jakarta"},
		}},
		files: &fakeFileStorage{uploads: map[string][]byte{}},
	}
	f.svc = NewInternService(f.interns, f.users, f.branches, f.schools, noopRecorder{}, f.files)
	return f
}

func managerPrincipal() user.Principal {
	return user.Principal{UserID: "user-mgr-1", Role: user.RoleManager}
}

func internPrincipal(userID, profileID string) user.Principal {
	return user.Principal{UserID: userID, Role: user.RoleIntern, InternProfileID: &profileID}
}

func TestCreateProfile(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateProfile(context.Background(), managerPrincipal(), intern.CreateInternProfileRequest{
		UserID:       "user-intern-1",
		SchoolID:     strPtr("school-1"),
		BranchID:     strPtr("branch-1"),
		SupervisorID: strPtr("user-sup-1"),
		InternType:   "clinical",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "user-intern-1", resp.UserID)
	assert.Equal(t, "clinical", resp.InternType)
	require.NotNil(t, resp.SupervisorID)
	assert.Equal(t, "user-sup-1", *resp.SupervisorID)
}

func TestCreateProfileDefaultsTypeOther(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateProfile(context.Background(), managerPrincipal(), intern.CreateInternProfileRequest{
		UserID: "user-intern-1",
	})
	require.NoError(t, err)
	assert.Equal(t, string(intern.TypeOther), resp.InternType)
}

func TestCreateProfileRejectsNonIntern(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateProfile(context.Background(), managerPrincipal(), intern.CreateInternProfileRequest{
		UserID: "user-sup-1",
	})
	assert.ErrorIs(t, err, intern.ErrNotAnIntern)
}

func TestCreateProfileRejectsDuplicate(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateProfile(context.Background(), managerPrincipal(), intern.CreateInternProfileRequest{
		UserID: "user-intern-1",
	})
	require.NoError(t, err)

	_, err = f.svc.CreateProfile(context.Background(), managerPrincipal(), intern.CreateInternProfileRequest{
		UserID: "user-intern-1",
	})
	assert.ErrorIs(t, err, intern.ErrProfileExists)
}

func TestCreateProfileRejectsNonSupervisorAssignment(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateProfile(context.Background(), managerPrincipal(), intern.CreateInternProfileRequest{
		UserID:       "user-intern-1",
		SupervisorID: strPtr("user-emp-1"),
	})
	assert.ErrorIs(t, err, intern.ErrSupervisorInvalid)
}

func TestCreateProfileRequiresInternManage(t *testing.T) {
	f := newFixture()
	supervisor := user.Principal{UserID: "user-sup-1", Role: user.RoleSupervisor}

	_, err := f.svc.CreateProfile(context.Background(), supervisor, intern.CreateInternProfileRequest{
		UserID: "user-intern-1",
	})
	assert.ErrorIs(t, err, user.ErrPermissionDenied)
}

func TestGetOwnProfileWithoutViewAll(t *testing.T) {
	f := newFixture()

	created, err := f.svc.CreateProfile(context.Background(), managerPrincipal(), intern.CreateInternProfileRequest{
		UserID: "user-intern-1",
	})
	require.NoError(t, err)

	own, err := f.svc.Get(context.Background(), internPrincipal("user-intern-1", created.ID), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, own.ID)

	_, err = f.svc.Get(context.Background(), internPrincipal("user-intern-2", "intern-other"), created.ID)
	assert.ErrorIs(t, err, user.ErrPermissionDenied)
}

func TestGetMine(t *testing.T) {
	f := newFixture()

	created, err := f.svc.CreateProfile(context.Background(), managerPrincipal(), intern.CreateInternProfileRequest{
		UserID: "user-intern-1",
	})
	require.NoError(t, err)

	mine, err := f.svc.GetMine(context.Background(), internPrincipal("user-intern-1", created.ID))
	require.NoError(t, err)
	assert.Equal(t, created.ID, mine.ID)
}

func TestUpdateLeavesUnsetFieldsAlone(t *testing.T) {
	f := newFixture()

	created, err := f.svc.CreateProfile(context.Background(), managerPrincipal(), intern.CreateInternProfileRequest{
		UserID:       "user-intern-1",
		BranchID:     strPtr("branch-1"),
		SupervisorID: strPtr("user-sup-1"),
	})
	require.NoError(t, err)

	updated, err := f.svc.Update(context.Background(), managerPrincipal(), created.ID, intern.UpdateInternProfileRequest{
		AcademicSupervisorName: strPtr("Dr. Rahma"),
	})
	require.NoError(t, err)

	require.NotNil(t, updated.BranchID)
	assert.Equal(t, "branch-1", *updated.BranchID)
	require.NotNil(t, updated.AcademicSupervisorName)
	assert.Equal(t, "Dr. Rahma", *updated.AcademicSupervisorName)
}

func TestListScopesSupervisor(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateProfile(context.Background(), managerPrincipal(), intern.CreateInternProfileRequest{
		UserID:       "user-intern-1",
		SupervisorID: strPtr("user-sup-1"),
	})
	require.NoError(t, err)
	_, err = f.svc.CreateProfile(context.Background(), managerPrincipal(), intern.CreateInternProfileRequest{
		UserID: "user-intern-2",
	})
	require.NoError(t, err)

	supervisor := user.Principal{UserID: "user-sup-1", Role: user.RoleSupervisor}
	scoped, err := f.svc.List(context.Background(), supervisor, intern.ListInternFilter{})
	require.NoError(t, err)
	require.Len(t, scoped.Interns, 1)
	assert.Equal(t, "user-intern-1", scoped.Interns[0].UserID)

	all, err := f.svc.List(context.Background(), managerPrincipal(), intern.ListInternFilter{})
	require.NoError(t, err)
	assert.Len(t, all.Interns, 2)
}

func TestMyInterns(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateProfile(context.Background(), managerPrincipal(), intern.CreateInternProfileRequest{
		UserID:       "user-intern-1",
		SupervisorID: strPtr("user-sup-1"),
	})
	require.NoError(t, err)

	supervisor := user.Principal{UserID: "user-sup-1", Role: user.RoleSupervisor}
	mine, err := f.svc.MyInterns(context.Background(), supervisor)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "user-intern-1", mine[0].UserID)
}

func TestUploadProfilePhoto(t *testing.T) {
	f := newFixture()

	created, err := f.svc.CreateProfile(context.Background(), managerPrincipal(), intern.CreateInternProfileRequest{
		UserID: "user-intern-1",
	})
	require.NoError(t, err)

	resp, err := f.svc.UploadDocument(context.Background(), internPrincipal("user-intern-1", created.ID), created.ID, intern.UploadDocumentRequest{
		Kind:        intern.DocumentProfilePhoto,
		File:        strings.NewReader("jpeg bytes"),
		Filename:    "me.jpg",
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.ProfilePhotoURL)
	assert.Contains(t, *resp.ProfilePhotoURL, "profile_photo")
	assert.Contains(t, *resp.ProfilePhotoURL, ".jpg")
	assert.Len(t, f.files.uploads, 1)
}

func TestUploadDocumentForbiddenForOtherIntern(t *testing.T) {
	f := newFixture()

	created, err := f.svc.CreateProfile(context.Background(), managerPrincipal(), intern.CreateInternProfileRequest{
		UserID: "user-intern-1",
	})
	require.NoError(t, err)

	_, err = f.svc.UploadDocument(context.Background(), internPrincipal("user-intern-2", "intern-other"), created.ID, intern.UploadDocumentRequest{
		Kind:        intern.DocumentApplicationLetter,
		File:        strings.NewReader("pdf bytes"),
		Filename:    "letter.pdf",
		ContentType: "application/pdf",
	})
	assert.ErrorIs(t, err, user.ErrPermissionDenied)
}

func TestUploadDocumentRejectsUnknownKind(t *testing.T) {
	f := newFixture()

	created, err := f.svc.CreateProfile(context.Background(), managerPrincipal(), intern.CreateInternProfileRequest{
		UserID: "user-intern-1",
	})
	require.NoError(t, err)

	_, err = f.svc.UploadDocument(context.Background(), managerPrincipal(), created.ID, intern.UploadDocumentRequest{
		Kind: intern.DocumentKind("resume"),
		File: strings.NewReader("x"),
	})
	require.Error(t, err)
}
