package assessment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/internship-backend-go/internal/domain/activitylog"
	"github.com/internhub/internship-backend-go/internal/domain/assessment"
	"github.com/internhub/internship-backend-go/internal/domain/intern"
	"github.com/internhub/internship-backend-go/internal/domain/notification"
	"github.com/internhub/internship-backend-go/internal/domain/user"
)

type fakeAssessmentRepo struct {
	mu          sync.Mutex
	seq         int
	assessments map[string]assessment.PerformanceAssessment
}

func (f *fakeAssessmentRepo) Create(_ context.Context, a assessment.PerformanceAssessment) (assessment.PerformanceAssessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.assessments {
		if existing.InternID == a.InternID && existing.WeekNumber == a.WeekNumber {
			return assessment.PerformanceAssessment{}, assessment.ErrDuplicateWeek
		}
	}
	f.seq++
	a.ID = fmt.Sprintf("assessment-%d", f.seq)
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.assessments[a.ID] = a
	return a, nil
}

func (f *fakeAssessmentRepo) GetByID(_ context.Context, id string) (assessment.PerformanceAssessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assessments[id]
	if !ok {
		return assessment.PerformanceAssessment{}, assessment.ErrAssessmentNotFound
	}
	return a, nil
}

func (f *fakeAssessmentRepo) NextWeekNumber(_ context.Context, internID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	max := 0
	for _, a := range f.assessments {
		if a.InternID == internID && a.WeekNumber > max {
			max = a.WeekNumber
		}
	}
	return max + 1, nil
}

func (f *fakeAssessmentRepo) SetSelfAssessment(_ context.Context, id string, score int, note string) (assessment.PerformanceAssessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assessments[id]
	if !ok {
		return assessment.PerformanceAssessment{}, assessment.ErrAssessmentNotFound
	}
	a.InternScore = &score
	a.InternNote = note
	if a.Status == assessment.StatusDraft {
		a.Status = assessment.StatusSubmitted
	}
	f.assessments[id] = a
	return a, nil
}

func (f *fakeAssessmentRepo) SetReview(_ context.Context, id string, score int, note, ackNote string) (assessment.PerformanceAssessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assessments[id]
	if !ok {
		return assessment.PerformanceAssessment{}, assessment.ErrAssessmentNotFound
	}
	a.SupervisorScore = &score
	a.SupervisorNote = note
	a.AcknowledgementNote = ackNote
	a.Status = assessment.StatusReviewed
	f.assessments[id] = a
	return a, nil
}

func (f *fakeAssessmentRepo) List(_ context.Context, filter assessment.AssessmentFilter) ([]assessment.PerformanceAssessment, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []assessment.PerformanceAssessment
	for _, a := range f.assessments {
		if filter.InternID != nil && a.InternID != *filter.InternID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

type fakeInternRepo struct {
	profiles map[string]intern.InternProfile
}

func (f *fakeInternRepo) Create(_ context.Context, p intern.InternProfile) (intern.InternProfile, error) {
	return p, nil
}

func (f *fakeInternRepo) GetByID(_ context.Context, id string) (intern.InternProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return intern.InternProfile{}, intern.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeInternRepo) GetByUserID(_ context.Context, _ string) (intern.InternProfile, error) {
	return intern.InternProfile{}, intern.ErrProfileNotFound
}

func (f *fakeInternRepo) Update(_ context.Context, _ intern.InternProfile) error { return nil }

func (f *fakeInternRepo) List(_ context.Context, _ intern.ListInternFilter) ([]intern.InternProfile, int64, error) {
	return nil, 0, nil
}

func (f *fakeInternRepo) ListBySupervisor(_ context.Context, _ string) ([]intern.InternProfile, error) {
	return nil, nil
}

type capturingNotifier struct {
	mu   sync.Mutex
	sent []notification.CreateNotificationRequest
}

func (c *capturingNotifier) Notify(_ context.Context, req notification.CreateNotificationRequest) (*notification.Notification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, req)
	return &notification.Notification{RecipientID: req.RecipientID}, nil
}

func (c *capturingNotifier) GetNotifications(_ context.Context, _ string, _, _ int, _ bool) (*notification.NotificationListResponse, error) {
	return &notification.NotificationListResponse{}, nil
}
func (c *capturingNotifier) GetUnreadCount(_ context.Context, _ string) (int, error) { return 0, nil }
func (c *capturingNotifier) MarkAsRead(_ context.Context, _ string, _ notification.MarkAsReadRequest) error {
	return nil
}
func (c *capturingNotifier) MarkAllAsRead(_ context.Context, _ string) error    { return nil }
func (c *capturingNotifier) Delete(_ context.Context, _ string, _ string) error { return nil }
func (c *capturingNotifier) GetPreferences(_ context.Context, _ string) (notification.PreferenceResponse, error) {
	return notification.PreferenceResponse{}, nil
}
func (c *capturingNotifier) UpdatePreferences(_ context.Context, _ string, _ notification.UpdatePreferenceRequest) error {
	return nil
}
func (c *capturingNotifier) Subscribe(_ context.Context, _ string) (<-chan notification.SSEEvent, func()) {
	return make(chan notification.SSEEvent), func() {}
}
func (c *capturingNotifier) Stop() {}

type noopRecorder struct{}

func (noopRecorder) Record(_ context.Context, _ *string, _ string, _ activitylog.EntityKind, _ string, _ map[string]interface{}) {
}

func strPtr(s string) *string { return &s }

func testFixture() (*capturingNotifier, assessment.AssessmentService) {
	interns := &fakeInternRepo{profiles: map[string]intern.InternProfile{
		"intern-1": {
			ID:           "intern-1",
			UserID:       "user-intern-1",
			SupervisorID: strPtr("user-sup-1"),
		},
	}}
	repo := &fakeAssessmentRepo{assessments: map[string]assessment.PerformanceAssessment{}}
	notifier := &capturingNotifier{}
	svc := NewAssessmentService(repo, interns, notifier, noopRecorder{})
	return notifier, svc
}

func supervisorPrincipal() user.Principal {
	return user.Principal{UserID: "user-sup-1", Role: user.RoleSupervisor}
}

func internPrincipal() user.Principal {
	id := "intern-1"
	return user.Principal{UserID: "user-intern-1", Role: user.RoleIntern, InternProfileID: &id}
}

func create(t *testing.T, svc assessment.AssessmentService, week int) assessment.AssessmentResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), supervisorPrincipal(), assessment.CreateRequest{
		InternID:   "intern-1",
		WeekNumber: week,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateAutoIncrementsWeekNumber(t *testing.T) {
	notifier, svc := testFixture()

	first := create(t, svc, 0)
	assert.Equal(t, 1, first.WeekNumber)
	assert.Equal(t, string(assessment.StatusDraft), first.Status)

	second := create(t, svc, 0)
	assert.Equal(t, 2, second.WeekNumber)

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, "user-intern-1", notifier.sent[0].RecipientID)
	assert.Equal(t, notification.CategoryAssessment, notifier.sent[0].Category)
}

func TestCreateDuplicateWeekFails(t *testing.T) {
	_, svc := testFixture()

	create(t, svc, 3)
	_, err := svc.Create(context.Background(), supervisorPrincipal(), assessment.CreateRequest{
		InternID:   "intern-1",
		WeekNumber: 3,
	})
	assert.ErrorIs(t, err, assessment.ErrDuplicateWeek)
}

func TestCreateUnassignedSupervisorFails(t *testing.T) {
	_, svc := testFixture()

	other := user.Principal{UserID: "user-sup-2", Role: user.RoleSupervisor}
	_, err := svc.Create(context.Background(), other, assessment.CreateRequest{InternID: "intern-1"})
	assert.ErrorIs(t, err, assessment.ErrUnauthorized)
}

func TestCreateInternForbidden(t *testing.T) {
	_, svc := testFixture()

	_, err := svc.Create(context.Background(), internPrincipal(), assessment.CreateRequest{InternID: "intern-1"})
	assert.ErrorIs(t, err, assessment.ErrUnauthorized)
}

func TestSelfAssessAdvancesDraftToSubmitted(t *testing.T) {
	notifier, svc := testFixture()
	created := create(t, svc, 1)

	resp, err := svc.SelfAssess(context.Background(), internPrincipal(), created.ID, assessment.SelfAssessRequest{
		Score: 85,
		Note:  "good week",
	})
	require.NoError(t, err)

	assert.Equal(t, string(assessment.StatusSubmitted), resp.Status)
	require.NotNil(t, resp.InternScore)
	assert.Equal(t, 85, *resp.InternScore)

	// Creation notice to intern, submission notice back to the assessor.
	require.Len(t, notifier.sent, 2)
	assert.Equal(t, "user-sup-1", notifier.sent[1].RecipientID)
}

func TestSelfAssessScoreBounds(t *testing.T) {
	_, svc := testFixture()
	created := create(t, svc, 1)

	_, err := svc.SelfAssess(context.Background(), internPrincipal(), created.ID, assessment.SelfAssessRequest{Score: 101})
	assert.Error(t, err)

	_, err = svc.SelfAssess(context.Background(), internPrincipal(), created.ID, assessment.SelfAssessRequest{Score: 0})
	assert.NoError(t, err, "zero is a valid score")

	_, err = svc.SelfAssess(context.Background(), internPrincipal(), created.ID, assessment.SelfAssessRequest{Score: 100})
	assert.NoError(t, err, "one hundred is a valid score")
}

func TestSelfAssessOtherInternForbidden(t *testing.T) {
	_, svc := testFixture()
	created := create(t, svc, 1)

	otherID := "intern-2"
	other := user.Principal{UserID: "user-intern-2", Role: user.RoleIntern, InternProfileID: &otherID}
	_, err := svc.SelfAssess(context.Background(), other, created.ID, assessment.SelfAssessRequest{Score: 50})
	assert.ErrorIs(t, err, assessment.ErrUnauthorized)
}

func TestReviewClosesAssessment(t *testing.T) {
	notifier, svc := testFixture()
	created := create(t, svc, 1)

	_, err := svc.SelfAssess(context.Background(), internPrincipal(), created.ID, assessment.SelfAssessRequest{Score: 80})
	require.NoError(t, err)

	resp, err := svc.Review(context.Background(), supervisorPrincipal(), created.ID, assessment.ReviewRequest{
		Score: 90,
		Note:  "strong performance",
	})
	require.NoError(t, err)

	assert.Equal(t, string(assessment.StatusReviewed), resp.Status)
	assert.True(t, resp.IsCompleted)

	last := notifier.sent[len(notifier.sent)-1]
	assert.Equal(t, "user-intern-1", last.RecipientID)
}

func TestReviewDraftJumpsStraightToReviewed(t *testing.T) {
	_, svc := testFixture()
	created := create(t, svc, 1)

	resp, err := svc.Review(context.Background(), supervisorPrincipal(), created.ID, assessment.ReviewRequest{Score: 70})
	require.NoError(t, err)
	assert.Equal(t, string(assessment.StatusReviewed), resp.Status)
	assert.Nil(t, resp.InternScore)
}

func TestReviewByNonAssessorFails(t *testing.T) {
	_, svc := testFixture()
	created := create(t, svc, 1)

	other := user.Principal{UserID: "user-sup-2", Role: user.RoleSupervisor}
	_, err := svc.Review(context.Background(), other, created.ID, assessment.ReviewRequest{Score: 70})
	assert.ErrorIs(t, err, assessment.ErrUnauthorized)

	manager := user.Principal{UserID: "user-mgr", Role: user.RoleManager}
	_, err = svc.Review(context.Background(), manager, created.ID, assessment.ReviewRequest{Score: 70})
	assert.NoError(t, err, "managers may review any assessment")
}

func TestSelfAssessAfterReviewKeepsReviewedStatus(t *testing.T) {
	_, svc := testFixture()
	created := create(t, svc, 1)

	_, err := svc.Review(context.Background(), supervisorPrincipal(), created.ID, assessment.ReviewRequest{Score: 70})
	require.NoError(t, err)

	resp, err := svc.SelfAssess(context.Background(), internPrincipal(), created.ID, assessment.SelfAssessRequest{Score: 60})
	require.NoError(t, err)
	assert.Equal(t, string(assessment.StatusReviewed), resp.Status, "status never regresses")
}

func TestMyAssessmentsOnlyOwn(t *testing.T) {
	_, svc := testFixture()
	create(t, svc, 1)

	list, err := svc.MyAssessments(context.Background(), internPrincipal(), assessment.AssessmentFilter{})
	require.NoError(t, err)
	require.Len(t, list.Assessments, 1)
	assert.Equal(t, "intern-1", list.Assessments[0].InternID)
}
