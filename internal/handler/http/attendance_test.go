package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/internship-backend-go/internal/domain/attendance"
	"github.com/internhub/internship-backend-go/internal/domain/user"
	"github.com/internhub/internship-backend-go/internal/handler/http/middleware"
)

type fakeAttendanceService struct {
	checkInResult attendance.AttendanceResponse
	checkInErr    error
	lastFilter    attendance.AttendanceFilter
	listResult    attendance.ListAttendanceResponse
}

func (f *fakeAttendanceService) CheckIn(ctx context.Context, principal user.Principal, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	return f.checkInResult, f.checkInErr
}

func (f *fakeAttendanceService) Decide(ctx context.Context, principal user.Principal, attendanceID string, req attendance.DecideRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) CheckOut(ctx context.Context, principal user.Principal, attendanceID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) Get(ctx context.Context, principal user.Principal, attendanceID string) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) MyAttendance(ctx context.Context, principal user.Principal, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	f.lastFilter = filter
	return f.listResult, nil
}

func (f *fakeAttendanceService) List(ctx context.Context, principal user.Principal, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	f.lastFilter = filter
	return f.listResult, nil
}

func internRequest(method, target string, body []byte) *http.Request {
	profileID := "intern-1"
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := middleware.WithPrincipal(req.Context(), user.Principal{
		UserID:          "user-1",
		Email:           "intern@example.com",
		Role:            user.RoleIntern,
		InternProfileID: &profileID,
	})
	return req.WithContext(ctx)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestCheckInReturnsCreatedEnvelope(t *testing.T) {
	svc := &fakeAttendanceService{
		checkInResult: attendance.AttendanceResponse{
			ID:             "att-1",
			InternID:       "intern-1",
			BranchID:       "branch-1",
			ApprovalStatus: "approved",
			AutoApproved:   true,
		},
	}
	handler := NewAttendanceHandler(svc)

	body, _ := json.Marshal(attendance.CheckInRequest{Latitude: -6.2, Longitude: 106.8})
	req := internRequest(http.MethodPost, "/api/v1/attendances/check-in", body)
	rec := httptest.NewRecorder()
	handler.CheckIn(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "Check-in recorded", envelope["message"])
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "att-1", data["id"])
	assert.Equal(t, true, data["auto_approved"])
}

func TestCheckInRejectsOutOfRangeCoordinates(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{})

	body, _ := json.Marshal(attendance.CheckInRequest{Latitude: 200, Longitude: 106.8})
	req := internRequest(http.MethodPost, "/api/v1/attendances/check-in", body)
	rec := httptest.NewRecorder()
	handler.CheckIn(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["success"])
	errDetail := envelope["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errDetail["code"])
	details := errDetail["details"].(map[string]interface{})
	assert.Contains(t, details, "latitude")
}

func TestCheckInWithoutPrincipalFails(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{})

	body, _ := json.Marshal(attendance.CheckInRequest{Latitude: -6.2, Longitude: 106.8})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendances/check-in", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.CheckIn(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMyAttendancePaginationDefaultsAndCap(t *testing.T) {
	svc := &fakeAttendanceService{}
	handler := NewAttendanceHandler(svc)

	req := internRequest(http.MethodGet, "/api/v1/attendances/my", nil)
	handler.GetMyAttendance(httptest.NewRecorder(), req)
	assert.Equal(t, 1, svc.lastFilter.Page)
	assert.Equal(t, 20, svc.lastFilter.Limit)

	req = internRequest(http.MethodGet, "/api/v1/attendances/my?page=3&limit=500", nil)
	handler.GetMyAttendance(httptest.NewRecorder(), req)
	assert.Equal(t, 3, svc.lastFilter.Page)
	assert.Equal(t, 20, svc.lastFilter.Limit, "limit above the cap falls back to the default")
}

func TestMyAttendanceStatusFilter(t *testing.T) {
	svc := &fakeAttendanceService{}
	handler := NewAttendanceHandler(svc)

	req := internRequest(http.MethodGet, "/api/v1/attendances/my?status=pending", nil)
	handler.GetMyAttendance(httptest.NewRecorder(), req)
	require.NotNil(t, svc.lastFilter.Status)
	assert.Equal(t, attendance.StatusPending, *svc.lastFilter.Status)
}

func TestRequirePermissionBlocksMissingCapability(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guarded := middleware.RequirePermission(user.PermissionMasterManage)(next)

	req := internRequest(http.MethodPost, "/api/v1/branches", nil)
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/branches", nil)
	ctx := middleware.WithPrincipal(req.Context(), user.Principal{UserID: "user-2", Role: user.RoleManager})
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
}
