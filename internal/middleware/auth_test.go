package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub-api/internal/model"
)

type mapResolver struct {
	sessions map[string]*model.SessionData
}

func (r *mapResolver) Resolve(ctx context.Context, token string) (*model.SessionData, error) {
	if data, ok := r.sessions[token]; ok {
		return data, nil
	}
	return nil, errors.New("session not found or expired")
}

func echoIdentity(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentity(r.Context())
		require.NotNil(t, identity)
		w.Write([]byte(identity.UserID))
	})
}

func TestAuthMiddleware(t *testing.T) {
	resolver := &mapResolver{sessions: map[string]*model.SessionData{
		"tht_valid": {UserID: "u1", Role: model.RoleInvestor},
	}}
	handler := NewAuthMiddleware(resolver)(echoIdentity(t))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic dXNlcjpwdw==", http.StatusUnauthorized, ""},
		{"unknown token", "Bearer tht_bogus", http.StatusUnauthorized, ""},
		{"valid token", "Bearer tht_valid", http.StatusOK, "u1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareNilResolver(t *testing.T) {
	handler := NewAuthMiddleware(nil)(echoIdentity(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer tht_valid")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	gated := RequireRole(model.RoleTalent, model.RoleAdmin)(ok)

	serve := func(identity *model.SessionData) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/showcases", nil)
		if identity != nil {
			req = req.WithContext(context.WithValue(req.Context(), IdentityKey, identity))
		}
		rec := httptest.NewRecorder()
		gated.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, serve(nil).Code)
	assert.Equal(t, http.StatusForbidden, serve(&model.SessionData{UserID: "u1", Role: model.RoleInvestor}).Code)
	assert.Equal(t, http.StatusNoContent, serve(&model.SessionData{UserID: "u2", Role: model.RoleTalent}).Code)
	assert.Equal(t, http.StatusNoContent, serve(&model.SessionData{UserID: "u3", Role: model.RoleAdmin}).Code)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", BearerToken(req))

	req.Header.Set("Authorization", "Bearer tht_abc")
	assert.Equal(t, "tht_abc", BearerToken(req))

	req.Header.Set("Authorization", "Token tht_abc")
	assert.Equal(t, "", BearerToken(req))
}
