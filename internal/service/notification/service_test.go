package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internhub/internship-backend-go/internal/domain/notification"
	"github.com/internhub/internship-backend-go/internal/domain/user"
	"github.com/internhub/internship-backend-go/internal/pkg/sse"
)

type fakeNotificationRepo struct {
	mu            sync.Mutex
	seq           int
	notifications map[string]*notification.Notification
	preferences   map[string]*notification.Preference
	emailSent     map[string]bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		notifications: map[string]*notification.Notification{},
		preferences:   map[string]*notification.Preference{},
		emailSent:     map[string]bool{},
	}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	n.ID = fmt.Sprintf("notif-%d", f.seq)
	n.CreatedAt = time.Now()
	stored := *n
	f.notifications[n.ID] = &stored
	return nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id string) (*notification.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notifications[id]
	if !ok {
		return nil, notification.ErrNotificationNotFound
	}
	return n, nil
}

func (f *fakeNotificationRepo) GetByRecipient(_ context.Context, userID string, _, _ int, unreadOnly bool) ([]*notification.Notification, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*notification.Notification
	for _, n := range f.notifications {
		if n.RecipientID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, len(out), nil
}

func (f *fakeNotificationRepo) GetUnreadCount(_ context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, n := range f.notifications {
		if n.RecipientID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, ids []string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		if n, ok := f.notifications[id]; ok && n.RecipientID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.RecipientID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notifications[id]
	if !ok || n.RecipientID != userID {
		return notification.ErrNotificationNotFound
	}
	delete(f.notifications, id)
	return nil
}

func (f *fakeNotificationRepo) MarkEmailSent(_ context.Context, id string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emailSent[id] = true
	if n, ok := f.notifications[id]; ok {
		n.EmailSent = true
	}
	return nil
}

func (f *fakeNotificationRepo) GetPreference(_ context.Context, userID string) (*notification.Preference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.preferences[userID]
	if !ok {
		return nil, notification.ErrPreferenceNotFound
	}
	return p, nil
}

func (f *fakeNotificationRepo) UpsertPreference(_ context.Context, pref *notification.Preference) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.preferences[pref.UserID] = pref
	return nil
}

type fakeUserRepo struct{}

func (fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }
func (fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	return user.User{ID: id, Email: id + "@example.test", FirstName: "Test", LastName: "User"}, nil
}
func (fakeUserRepo) GetByEmail(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (fakeUserRepo) GetByOAuth(_ context.Context, _, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (fakeUserRepo) Update(_ context.Context, _ user.User) error               { return nil }
func (fakeUserRepo) UpdateRole(_ context.Context, _ string, _ user.Role) error { return nil }
func (fakeUserRepo) List(_ context.Context, _ *user.Role, _, _ int) ([]user.User, int64, error) {
	return nil, 0, nil
}

type capturingEmailSender struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (c *capturingEmailSender) SendNotification(to, _, title, _, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("smtp unreachable")
	}
	c.sent = append(c.sent, to+": "+title)
	return nil
}

func (c *capturingEmailSender) SendOnboarding(_, _, _ string) error { return nil }

func testService(t *testing.T, sender *capturingEmailSender) (*fakeNotificationRepo, notification.Service) {
	t.Helper()
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo, fakeUserRepo{}, sender, sse.NewHub(), slog.Default(), 1)
	t.Cleanup(svc.Stop)
	return repo, svc
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestNotifyCreatesRecordAndQueuesEmail(t *testing.T) {
	sender := &capturingEmailSender{}
	repo, svc := testService(t, sender)

	n, err := svc.Notify(context.Background(), notification.CreateNotificationRequest{
		RecipientID: "user-1",
		Title:       "Attendance approved",
		Message:     "Your check-in was approved.",
		Type:        notification.TypeSuccess,
		Category:    notification.CategoryAttendance,
		SendEmail:   true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, n.ID)

	waitFor(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return repo.emailSent[n.ID]
	})

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "user-1@example.test")
}

func TestNotifyEmailFailureKeepsRecord(t *testing.T) {
	sender := &capturingEmailSender{fail: true}
	repo, svc := testService(t, sender)

	n, err := svc.Notify(context.Background(), notification.CreateNotificationRequest{
		RecipientID: "user-1",
		Title:       "Assessment reviewed",
		Category:    notification.CategoryAssessment,
		SendEmail:   true,
	})
	require.NoError(t, err, "email failure never fails the caller")

	svc.Stop() // drain the queue

	stored, err := repo.GetByID(context.Background(), n.ID)
	require.NoError(t, err)
	assert.False(t, stored.EmailSent)
}

func TestNotifyRespectsCategoryOptOut(t *testing.T) {
	sender := &capturingEmailSender{}
	repo, svc := testService(t, sender)

	pref := notification.DefaultPreference("user-1")
	pref.EmailOnAbsenceStatus = false
	require.NoError(t, repo.UpsertPreference(context.Background(), &pref))

	_, err := svc.Notify(context.Background(), notification.CreateNotificationRequest{
		RecipientID: "user-1",
		Title:       "Absence request rejected",
		Category:    notification.CategoryAbsenteeism,
		SendEmail:   true,
	})
	require.NoError(t, err)

	svc.Stop()

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Empty(t, sender.sent)
}

func TestNotifyMasterOptOutSuppressesEmail(t *testing.T) {
	sender := &capturingEmailSender{}
	repo, svc := testService(t, sender)

	pref := notification.DefaultPreference("user-1")
	pref.InAppNotifications = false
	require.NoError(t, repo.UpsertPreference(context.Background(), &pref))

	_, err := svc.Notify(context.Background(), notification.CreateNotificationRequest{
		RecipientID: "user-1",
		Title:       "Attendance approved",
		Category:    notification.CategoryAttendance,
		SendEmail:   true,
	})
	require.NoError(t, err)

	svc.Stop()

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Empty(t, sender.sent)
}

func TestNotifyDefaultPreferenceAllowsEmail(t *testing.T) {
	sender := &capturingEmailSender{}
	repo, svc := testService(t, sender)

	n, err := svc.Notify(context.Background(), notification.CreateNotificationRequest{
		RecipientID: "user-without-prefs",
		Title:       "Weekly assessment opened",
		Category:    notification.CategoryAssessment,
		SendEmail:   true,
	})
	require.NoError(t, err)

	waitFor(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return repo.emailSent[n.ID]
	})
}

func TestNotifyPublishesToSubscribers(t *testing.T) {
	sender := &capturingEmailSender{}
	_, svc := testService(t, sender)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, cleanup := svc.Subscribe(ctx, "user-1")
	defer cleanup()

	_, err := svc.Notify(context.Background(), notification.CreateNotificationRequest{
		RecipientID: "user-1",
		Title:       "Live update",
		Category:    notification.CategoryGeneral,
	})
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, "notification", ev.Event)
		assert.Equal(t, "Live update", ev.Data.Title)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestMarkAsReadScopedToRecipient(t *testing.T) {
	sender := &capturingEmailSender{}
	repo, svc := testService(t, sender)

	n, err := svc.Notify(context.Background(), notification.CreateNotificationRequest{
		RecipientID: "user-1",
		Title:       "hello",
		Category:    notification.CategoryGeneral,
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkAsRead(context.Background(), "user-2", notification.MarkAsReadRequest{
		NotificationIDs: []string{n.ID},
	}))
	count, err := repo.GetUnreadCount(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "another user's mark-as-read has no effect")

	require.NoError(t, svc.MarkAsRead(context.Background(), "user-1", notification.MarkAsReadRequest{
		NotificationIDs: []string{n.ID},
	}))
	count, err = repo.GetUnreadCount(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUpdateAndGetPreferences(t *testing.T) {
	sender := &capturingEmailSender{}
	_, svc := testService(t, sender)

	prefs, err := svc.GetPreferences(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, prefs.EmailOnAttendanceApproval, "defaults apply before any save")

	err = svc.UpdatePreferences(context.Background(), "user-1", notification.UpdatePreferenceRequest{
		InAppNotifications: true,
	})
	require.NoError(t, err)

	prefs, err = svc.GetPreferences(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, prefs.EmailOnAttendanceApproval)
	assert.True(t, prefs.InAppNotifications)
}
