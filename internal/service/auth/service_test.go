package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/internhub/internship-backend-go/internal/domain/activitylog"
	"github.com/internhub/internship-backend-go/internal/domain/auth"
	"github.com/internhub/internship-backend-go/internal/domain/intern"
	"github.com/internhub/internship-backend-go/internal/domain/notification"
	"github.com/internhub/internship-backend-go/internal/domain/user"
	"github.com/internhub/internship-backend-go/internal/pkg/oauth"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]user.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailExists
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByOAuth(_ context.Context, provider, providerID string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.OAuthProvider != nil && *u.OAuthProvider == provider &&
			u.OAuthProviderID != nil && *u.OAuthProviderID == providerID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id string, role user.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Role = role
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _ *user.Role, _, _ int) ([]user.User, int64, error) {
	return nil, 0, nil
}

type fakeInternRepo struct{}

func (fakeInternRepo) Create(_ context.Context, p intern.InternProfile) (intern.InternProfile, error) {
	return p, nil
}
func (fakeInternRepo) GetByID(_ context.Context, _ string) (intern.InternProfile, error) {
	return intern.InternProfile{}, intern.ErrProfileNotFound
}
func (fakeInternRepo) GetByUserID(_ context.Context, _ string) (intern.InternProfile, error) {
	return intern.InternProfile{}, intern.ErrProfileNotFound
}
func (fakeInternRepo) Update(_ context.Context, _ intern.InternProfile) error { return nil }
func (fakeInternRepo) List(_ context.Context, _ intern.ListInternFilter) ([]intern.InternProfile, int64, error) {
	return nil, 0, nil
}
func (fakeInternRepo) ListBySupervisor(_ context.Context, _ string) ([]intern.InternProfile, error) {
	return nil, nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]auth.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]auth.RefreshToken{}}
}

func (f *fakeTokenRepo) Store(_ context.Context, token auth.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeTokenRepo) Get(_ context.Context, token string) (auth.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rt, ok := f.tokens[token]
	if !ok {
		return auth.RefreshToken{}, auth.ErrInvalidToken
	}
	return rt, nil
}

func (f *fakeTokenRepo) Revoke(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rt, ok := f.tokens[token]; ok {
		rt.Revoked = true
		f.tokens[token] = rt
	}
	return nil
}

func (f *fakeTokenRepo) RevokeAllForUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, rt := range f.tokens {
		if rt.UserID == userID {
			rt.Revoked = true
			f.tokens[k] = rt
		}
	}
	return nil
}

type fakeJWT struct {
	mu  sync.Mutex
	seq int
}

func (f *fakeJWT) next(prefix string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeJWT) GenerateAccessToken(u user.User, _ *string) (string, int64, error) {
	return f.next("access-" + u.ID), time.Now().Add(15 * time.Minute).Unix(), nil
}
func (f *fakeJWT) GenerateRefreshToken(userID string) (string, int64, error) {
	return f.next("refresh-" + userID), time.Now().Add(24 * time.Hour).Unix(), nil
}
func (f *fakeJWT) GenerateSSEToken(userID string) (string, int, error) {
	return f.next("sse-" + userID), 60, nil
}
func (f *fakeJWT) ValidateSSEToken(_ string) (string, error)         { return "", auth.ErrInvalidToken }
func (f *fakeJWT) JWTAuth() *jwtauth.JWTAuth                         { return nil }
func (f *fakeJWT) RefreshTokenCookie(_ string, _ int64) *http.Cookie { return &http.Cookie{} }
func (f *fakeJWT) RevokeToken(_ string)                              {}
func (f *fakeJWT) IsTokenRevoked(_ string) bool                      { return false }

type fakeGoogle struct {
	info oauth.GoogleInformation
	err  error
}

func (f *fakeGoogle) GenerateState(_ string) string { return "state" }
func (f *fakeGoogle) RedirectURL(_ string) string   { return "https://accounts.google.test" }
func (f *fakeGoogle) VerifyToken(_ context.Context, _ string) (*oauth2.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &oauth2.Token{AccessToken: "ya29"}, nil
}
func (f *fakeGoogle) VerifyUser(_ context.Context, _ *oauth2.Token) (oauth.GoogleInformation, error) {
	return f.info, f.err
}

type capturingEmailSender struct {
	mu         sync.Mutex
	onboarding []string
}

func (c *capturingEmailSender) SendNotification(_, _, _, _, _ string) error { return nil }
func (c *capturingEmailSender) SendOnboarding(to, _, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onboarding = append(c.onboarding, to)
	return nil
}

type capturingNotifier struct {
	mu   sync.Mutex
	sent []notification.CreateNotificationRequest
}

func (c *capturingNotifier) Notify(_ context.Context, req notification.CreateNotificationRequest) (*notification.Notification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, req)
	return &notification.Notification{}, nil
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

type fixture struct {
	users    *fakeUserRepo
	tokens   *fakeTokenRepo
	google   *fakeGoogle
	emails   *capturingEmailSender
	notifier *capturingNotifier
	svc      auth.AuthService
}

func newFixture() *fixture {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	google := &fakeGoogle{}
	emails := &capturingEmailSender{}
	notifier := &capturingNotifier{}
	svc := NewAuthService(users, fakeInternRepo{}, tokens, &fakeJWT{}, google, emails, notifier, noopRecorder{})
	return &fixture{users: users, tokens: tokens, google: google, emails: emails, notifier: notifier, svc: svc}
}

func (f *fixture) seedUser(t *testing.T, email, password string, role user.Role, superuser bool) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)
	u, err := f.users.Create(context.Background(), user.User{
		Email:        email,
		PasswordHash: &hashStr,
		FirstName:    "Seed",
		LastName:     "User",
		Role:         role,
		IsSuperuser:  superuser,
		IsActive:     true,
	})
	require.NoError(t, err)
	return u
}

func TestLogin(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "ayu@example.test", "correct-horse", user.RoleIntern, false)

	resp, err := f.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ayu@example.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "intern", resp.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "ayu@example.test", "correct-horse", user.RoleIntern, false)

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ayu@example.test",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.test",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	f := newFixture()
	u := f.seedUser(t, "gone@example.test", "correct-horse", user.RoleIntern, false)
	u.IsActive = false
	require.NoError(t, f.users.Update(context.Background(), u))

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "gone@example.test",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, auth.ErrUserInactive)
}

func TestLoginWithGoogleLinksByVerifiedEmail(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "ayu@example.test", "irrelevant", user.RoleIntern, false)
	f.google.info = oauth.GoogleInformation{GoogleID: "g-123", Email: "ayu@example.test", VerifiedEmail: true}

	resp, err := f.svc.LoginWithGoogle(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "ayu@example.test", resp.Email)

	linked, err := f.users.GetByOAuth(context.Background(), "google", "g-123")
	require.NoError(t, err)
	assert.True(t, linked.EmailVerified)
}

func TestLoginWithGoogleUnregisteredAccountFails(t *testing.T) {
	f := newFixture()
	f.google.info = oauth.GoogleInformation{GoogleID: "g-999", Email: "stranger@example.test", VerifiedEmail: true}

	_, err := f.svc.LoginWithGoogle(context.Background(), "auth-code")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestLoginWithGoogleUnverifiedEmailFails(t *testing.T) {
	f := newFixture()
	f.google.info = oauth.GoogleInformation{GoogleID: "g-1", Email: "x@example.test", VerifiedEmail: false}

	_, err := f.svc.LoginWithGoogle(context.Background(), "auth-code")
	assert.ErrorIs(t, err, auth.ErrOAuthEmailMissing)
}

func TestRegisterRequiresUserManagePermission(t *testing.T) {
	f := newFixture()
	sup := f.seedUser(t, "sup@example.test", "password-1", user.RoleSupervisor, false)

	_, err := f.svc.Register(context.Background(), sup.ID, auth.RegisterUserRequest{
		Email:     "new@example.test",
		FirstName: "New",
	})
	assert.ErrorIs(t, err, user.ErrAdminAccessRequired)
}

func TestRegisterGeneratesPasswordAndEmailsIt(t *testing.T) {
	f := newFixture()
	admin := f.seedUser(t, "admin@example.test", "password-1", user.RoleAdmin, false)

	resp, err := f.svc.Register(context.Background(), admin.ID, auth.RegisterUserRequest{
		Email:     "new@example.test",
		FirstName: "New",
		Role:      "intern",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.UserID)

	f.emails.mu.Lock()
	defer f.emails.mu.Unlock()
	require.Len(t, f.emails.onboarding, 1)
	assert.Equal(t, "new@example.test", f.emails.onboarding[0])

	f.notifier.mu.Lock()
	defer f.notifier.mu.Unlock()
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, notification.CategoryOnboarding, f.notifier.sent[0].Category)
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	f := newFixture()
	admin := f.seedUser(t, "admin@example.test", "password-1", user.RoleAdmin, false)

	_, err := f.svc.Register(context.Background(), admin.ID, auth.RegisterUserRequest{
		Email:     "new@example.test",
		FirstName: "New",
		Role:      "superhero",
	})
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture()
	admin := f.seedUser(t, "admin@example.test", "password-1", user.RoleAdmin, false)
	f.seedUser(t, "taken@example.test", "password-1", user.RoleIntern, false)

	_, err := f.svc.Register(context.Background(), admin.ID, auth.RegisterUserRequest{
		Email:     "taken@example.test",
		FirstName: "Dup",
	})
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "ayu@example.test", "correct-horse", user.RoleIntern, false)

	login, err := f.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ayu@example.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	pair, err := f.svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, pair.RefreshToken)

	// Old token is single-use.
	_, err = f.svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "ayu@example.test", "correct-horse", user.RoleIntern, false)

	login, err := f.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ayu@example.test",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), login.RefreshToken))

	_, err = f.svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
