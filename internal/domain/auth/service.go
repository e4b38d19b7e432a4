package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// LoginWithGoogle exchanges an OAuth code for a session. The Google
	// account must already be linked to a registered user.
	LoginWithGoogle(ctx context.Context, code string) (LoginResponse, error)

	// Register creates a user account. Admin-only; onboarding a new user
	// triggers an onboarding notification to them.
	Register(ctx context.Context, actorUserID string, req RegisterUserRequest) (LoginResponse, error)

	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type RefreshTokenRepository interface {
	Store(ctx context.Context, token RefreshToken) error
	Get(ctx context.Context, token string) (RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
