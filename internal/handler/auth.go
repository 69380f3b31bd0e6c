package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"talenthub-api/internal/middleware"
	"talenthub-api/internal/model"
	"talenthub-api/internal/service"
	"talenthub-api/pkg/apierror"
	"talenthub-api/pkg/response"
)

// AuthHandler handles account and session HTTP requests.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// SessionResponse represents the response for register and login.
type SessionResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expires_in"`
	User      *model.User `json:"user"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	var details []apierror.FieldError
	if req.Name == "" {
		details = append(details, apierror.FieldError{Field: "name", Message: "name is required"})
	}
	if req.Email == "" {
		details = append(details, apierror.FieldError{Field: "email", Message: "email is required"})
	}
	if len(req.Password) < 8 {
		details = append(details, apierror.FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}
	role, ok := model.ParseRole(req.Role)
	if !ok {
		details = append(details, apierror.FieldError{Field: "role", Message: "role must be talent, mentor, investor or admin"})
	}
	if len(details) > 0 {
		response.Error(w, apierror.ValidationError("invalid registration", details...))
		return
	}

	user, token, err := h.authService.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		Category: req.Category,
		Location: req.Location,
		Bio:      req.Bio,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Error(w, apierror.Conflict("email already registered"))
			return
		}
		response.Error(w, apierror.InternalError("registration failed"))
		return
	}

	response.Created(w, SessionResponse{
		Token:     token,
		ExpiresIn: 86400,
		User:      user,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if req.Email == "" || req.Password == "" {
		response.Error(w, apierror.BadRequest("email and password are required"))
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(w, apierror.Unauthorized("invalid email or password"))
			return
		}
		response.Error(w, apierror.InternalError("login failed"))
		return
	}

	response.OK(w, SessionResponse{
		Token:     token,
		ExpiresIn: 86400,
		User:      user,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		response.Error(w, apierror.BadRequest("Authorization header required"))
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		response.Error(w, apierror.InternalError("failed to revoke session"))
		return
	}

	response.OK(w, map[string]string{"status": "logged_out"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	user, err := h.authService.GetUser(r.Context(), identity.UserID)
	if err != nil {
		if service.IsNotFound(err) {
			response.Error(w, apierror.NotFound("account no longer exists"))
			return
		}
		response.Error(w, apierror.InternalError("failed to load account"))
		return
	}

	response.OK(w, user)
}
