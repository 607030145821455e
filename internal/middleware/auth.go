// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/carterperez-dev/mercadito/internal/core"
)

const (
	CurrentUserKey contextKey = "current_user"
)

type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (string, error)
}

// UserLoader resolves a verified token subject to an account. Lookups
// must not filter on the active flag; RequireActive applies that rule.
type UserLoader interface {
	LoadByUsername(ctx context.Context, username string) (*CurrentUser, error)
}

type CurrentUser struct {
	ID       int64
	Username string
	Email    string
	Active   bool
}

// Authenticator resolves the bearer token to an account and stores it
// in the request context. A missing header, a bad token and an unknown
// subject all produce the identical 401 envelope so the response never
// reveals which check failed.
func Authenticator(
	verifier TokenVerifier,
	users UserLoader,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := resolveUser(r, verifier, users)
			if !ok {
				core.JSONError(w, core.TokenInvalidError())
				return
			}

			ctx := context.WithValue(r.Context(), CurrentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves the caller when a valid token is present and
// otherwise continues anonymously. It never fails the request.
func OptionalAuth(
	verifier TokenVerifier,
	users UserLoader,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, ok := resolveUser(r, verifier, users); ok {
				ctx := context.WithValue(r.Context(), CurrentUserKey, user)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireActive rejects soft-deactivated accounts. Distinguished from
// authentication failures as a 400-class outcome.
func RequireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetCurrentUser(r.Context())
		if user == nil {
			core.JSONError(w, core.TokenInvalidError())
			return
		}

		if !user.Active {
			core.JSONError(w, core.InactiveAccountError())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func resolveUser(
	r *http.Request,
	verifier TokenVerifier,
	users UserLoader,
) (*CurrentUser, bool) {
	token := ExtractToken(r)
	if token == "" {
		return nil, false
	}

	subject, err := verifier.VerifyAccessToken(r.Context(), token)
	if err != nil {
		return nil, false
	}

	user, err := users.LoadByUsername(r.Context(), subject)
	if err != nil {
		return nil, false
	}

	return user, true
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func GetCurrentUser(ctx context.Context) *CurrentUser {
	if user, ok := ctx.Value(CurrentUserKey).(*CurrentUser); ok {
		return user
	}
	return nil
}

func GetUserID(ctx context.Context) int64 {
	if user := GetCurrentUser(ctx); user != nil {
		return user.ID
	}
	return 0
}

func GetUsername(ctx context.Context) string {
	if user := GetCurrentUser(ctx); user != nil {
		return user.Username
	}
	return ""
}

func IsAuthenticated(ctx context.Context) bool {
	return GetCurrentUser(ctx) != nil
}
