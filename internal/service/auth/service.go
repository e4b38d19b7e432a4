package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/internhub/internship-backend-go/internal/domain/activitylog"
	"github.com/internhub/internship-backend-go/internal/domain/auth"
	"github.com/internhub/internship-backend-go/internal/domain/intern"
	"github.com/internhub/internship-backend-go/internal/domain/notification"
	"github.com/internhub/internship-backend-go/internal/domain/user"
	"github.com/internhub/internship-backend-go/internal/pkg/email"
	"github.com/internhub/internship-backend-go/internal/pkg/jwt"
	"github.com/internhub/internship-backend-go/internal/pkg/oauth"
)

type AuthServiceImpl struct {
	users    user.UserRepository
	interns  intern.InternRepository
	tokens   auth.RefreshTokenRepository
	jwt      jwt.Service
	google   oauth.GoogleService
	emails   email.EmailService
	notifier notification.Service
	recorder activitylog.Recorder
}

func NewAuthService(
	users user.UserRepository,
	interns intern.InternRepository,
	tokens auth.RefreshTokenRepository,
	jwtService jwt.Service,
	google oauth.GoogleService,
	emails email.EmailService,
	notifier notification.Service,
	recorder activitylog.Recorder,
) auth.AuthService {
	return &AuthServiceImpl{
		users:    users,
		interns:  interns,
		tokens:   tokens,
		jwt:      jwtService,
		google:   google,
		emails:   emails,
		notifier: notifier,
		recorder: recorder,
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Same error as a wrong password so login cannot probe for
			// registered emails.
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if u.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrUserInactive
	}

	resp, err := s.issueSession(ctx, u)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	s.recorder.Record(ctx, &u.ID, "auth.login", activitylog.EntityUser, u.ID, nil)

	return resp, nil
}

// LoginWithGoogle implements auth.AuthService.
func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.LoginResponse, error) {
	token, err := s.google.VerifyToken(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to verify oauth code: %w", err)
	}

	info, err := s.google.VerifyUser(ctx, token)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to verify oauth user: %w", err)
	}
	if !info.VerifiedEmail || info.Email == "" {
		return auth.LoginResponse{}, auth.ErrOAuthEmailMissing
	}

	u, err := s.users.GetByOAuth(ctx, "google", info.GoogleID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, err
		}
		// First Google sign-in: link by verified email. Accounts are created
		// by admins, never by the OAuth flow itself.
		u, err = s.users.GetByEmail(ctx, info.Email)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return auth.LoginResponse{}, auth.ErrUserNotFound
			}
			return auth.LoginResponse{}, err
		}
		provider := "google"
		u.OAuthProvider = &provider
		u.OAuthProviderID = &info.GoogleID
		u.EmailVerified = true
		if err := s.users.Update(ctx, u); err != nil {
			return auth.LoginResponse{}, err
		}
	}

	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrUserInactive
	}

	resp, err := s.issueSession(ctx, u)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	s.recorder.Record(ctx, &u.ID, "auth.login_google", activitylog.EntityUser, u.ID, nil)

	return resp, nil
}

// Register implements auth.AuthService.
func (s *AuthServiceImpl) Register(ctx context.Context, actorUserID string, req auth.RegisterUserRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	actor, err := s.users.GetByID(ctx, actorUserID)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	if !actor.IsSuperuser && !user.HasPermission(actor.Role, user.PermissionUserManage) {
		return auth.LoginResponse{}, user.ErrAdminAccessRequired
	}

	role := user.Role(req.Role)
	if req.Role == "" {
		role = user.RoleIntern
	}
	if !user.IsValidRole(role) {
		return auth.LoginResponse{}, user.ErrInvalidRole
	}

	password := req.Password
	generated := false
	if password == "" {
		password, err = generatePassword()
		if err != nil {
			return auth.LoginResponse{}, err
		}
		generated = true
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	created, err := s.users.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: &hashStr,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return auth.LoginResponse{}, err
	}

	s.notify(ctx, notification.CreateNotificationRequest{
		RecipientID: created.ID,
		Title:       "Welcome aboard",
		Message:     "Your account has been created. Complete your profile to get started.",
		Type:        notification.TypeInfo,
		Category:    notification.CategoryOnboarding,
		SendEmail:   false,
	})
	if generated {
		// Credentials go out through email only, never through the API.
		// Delivery failure is not fatal; the admin can trigger a reset.
		_ = s.emails.SendOnboarding(created.Email, created.FullName(), password)
	}

	s.recorder.Record(ctx, &actorUserID, "user.register", activitylog.EntityUser, created.ID, map[string]interface{}{
		"role": string(role),
	})

	return auth.LoginResponse{
		UserID:   created.ID,
		Email:    created.Email,
		FullName: created.FullName(),
		Role:     string(created.Role),
	}, nil
}

// Refresh implements auth.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	if refreshToken == "" {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}

	stored, err := s.tokens.Get(ctx, refreshToken)
	if err != nil {
		return auth.TokenPair{}, err
	}
	if stored.Revoked {
		return auth.TokenPair{}, auth.ErrRefreshTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return auth.TokenPair{}, auth.ErrTokenExpired
	}

	u, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return auth.TokenPair{}, err
	}
	if !u.IsActive {
		return auth.TokenPair{}, auth.ErrUserInactive
	}

	// Rotate: the old token is single-use.
	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return auth.TokenPair{}, err
	}

	return s.issueTokens(ctx, u)
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokens.Revoke(ctx, refreshToken)
}

func (s *AuthServiceImpl) issueSession(ctx context.Context, u user.User) (auth.LoginResponse, error) {
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		TokenPair: pair,
		UserID:    u.ID,
		Email:     u.Email,
		FullName:  u.FullName(),
		Role:      string(u.Role),
	}, nil
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.TokenPair, error) {
	var internProfileID *string
	if u.Role == user.RoleIntern {
		profile, err := s.interns.GetByUserID(ctx, u.ID)
		if err == nil {
			internProfileID = &profile.ID
		} else if !errors.Is(err, intern.ErrProfileNotFound) {
			return auth.TokenPair{}, err
		}
	}

	access, accessExp, err := s.jwt.GenerateAccessToken(u, internProfileID)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, refreshExp, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.tokens.Store(ctx, auth.RefreshToken{
		UserID:    u.ID,
		Token:     refresh,
		ExpiresAt: time.Unix(refreshExp, 0),
	}); err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *AuthServiceImpl) notify(ctx context.Context, req notification.CreateNotificationRequest) {
	_, _ = s.notifier.Notify(ctx, req)
}

func generatePassword() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
