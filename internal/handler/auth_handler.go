package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/brightforge/agency-backend/internal/logger"
	"github.com/brightforge/agency-backend/internal/middleware"
	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/response"
	"github.com/brightforge/agency-backend/internal/service"
	"github.com/brightforge/agency-backend/internal/validator"
)

// AuthHandler handles admin login, logout and session introspection.
type AuthHandler struct {
	authService *service.AuthService
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// Login godoc
// POST /api/admin/login
// Checks the credentials and returns an opaque session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.log.Info().Str("username", req.Username).Msg("Rejected admin login")
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}
	if err != nil {
		failInternal(c, h.log, err, "Login failed")
		return
	}

	h.log.Info().
		Str("username", session.Username).
		Str("token", logger.TokenPrefix(session.Token)).
		Msg("Admin logged in")

	response.SuccessWith(c, http.StatusOK, gin.H{
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
		"message":   "Login successful",
	})
}

// Logout godoc
// POST /api/admin/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, err := h.authService.RevokeSession(c.Request.Context(), middleware.GetToken(c)); err != nil {
		failInternal(c, h.log, err, "Logout failed")
		return
	}
	response.SuccessMessage(c, http.StatusOK, nil, "Logged out successfully")
}

// Session godoc
// GET /api/admin/session
// Returns the user behind the presented token and when the session ends.
func (h *AuthHandler) Session(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized)
		return
	}

	response.SuccessWith(c, http.StatusOK, gin.H{
		"user":      model.AdminProfile{Username: session.Username},
		"expiresAt": session.ExpiresAt,
	})
}

// CreateDefault godoc
// POST /api/admin/create-default
// Bootstraps the first admin account. Refused once any admin exists.
func (h *AuthHandler) CreateDefault(c *gin.Context) {
	var req model.CreateAdminRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.authService.CreateFirstAdmin(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrAdminExists) {
		response.FailMessage(c, http.StatusConflict, response.ErrConflict, "Admin user already exists")
		return
	}
	if err != nil {
		failInternal(c, h.log, err, "Failed to create admin user")
		return
	}

	h.log.Info().Str("username", user.Username).Msg("Default admin created")
	response.SuccessMessage(c, http.StatusOK, model.AdminProfile{Username: user.Username}, "Default admin user created successfully")
}
