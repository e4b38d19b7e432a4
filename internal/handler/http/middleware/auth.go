package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/internhub/internship-backend-go/internal/domain/auth"
	"github.com/internhub/internship-backend-go/internal/domain/user"
	"github.com/internhub/internship-backend-go/internal/handler/http/response"
)

type contextKey string

const principalKey contextKey = "principal"

// AuthRequired rejects requests without a valid access token and places the
// reconstructed principal in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			principal, ok := principalFromClaims(claims)
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

func principalFromClaims(claims map[string]interface{}) (user.Principal, bool) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Principal{}, false
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return user.Principal{}, false
	}
	role := user.Role(roleStr)
	if !user.IsValidRole(role) {
		return user.Principal{}, false
	}

	p := user.Principal{
		UserID: userID,
		Role:   role,
	}
	if email, ok := claims["email"].(string); ok {
		p.Email = email
	}
	if superuser, ok := claims["is_superuser"].(bool); ok {
		p.IsSuperuser = superuser
	}
	if profileID, ok := claims["intern_profile_id"].(string); ok && profileID != "" {
		p.InternProfileID = &profileID
	}
	return p, true
}

// PrincipalFromContext returns the authenticated principal placed by
// AuthRequired. The boolean is false on routes that skipped the middleware.
func PrincipalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey).(user.Principal)
	return p, ok
}

// WithPrincipal injects a principal directly, for handler tests.
func WithPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}
