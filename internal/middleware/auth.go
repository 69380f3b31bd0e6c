package middleware

import (
	"context"
	"net/http"
	"strings"

	"talenthub-api/internal/model"
	"talenthub-api/pkg/apierror"
)

// IdentityKey is the context key for the resolved session identity.
const IdentityKey contextKey = "identity"

// SessionResolver resolves a bearer token to an identity. Implemented
// by service.SessionService; an interface here so tests can fake it.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*model.SessionData, error)
}

// NewAuthMiddleware creates an authentication middleware. The resolver
// is injected via closure; there is no ambient global identity state.
func NewAuthMiddleware(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, apierror.Unauthorized("Authentication required. Use Authorization: Bearer <token>."))
				return
			}

			if resolver == nil {
				writeError(w, apierror.ServiceUnavailable("session store unavailable"))
				return
			}

			identity, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				writeError(w, apierror.Unauthorized("Invalid or expired session"))
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route group to one or more roles. Must run after
// the auth middleware.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				writeError(w, apierror.Unauthorized(""))
				return
			}
			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, apierror.Forbidden(""))
		})
	}
}

// GetIdentity retrieves the resolved identity from request context.
func GetIdentity(ctx context.Context) *model.SessionData {
	if data, ok := ctx.Value(IdentityKey).(*model.SessionData); ok {
		return data
	}
	return nil
}

// BearerToken extracts the bearer credential from a request, if any.
func BearerToken(r *http.Request) string {
	return bearerToken(r)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// writeError writes an API error response.
func writeError(w http.ResponseWriter, err *apierror.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	w.Write(err.ToJSON())
}
