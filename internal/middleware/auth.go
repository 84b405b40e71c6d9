package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/response"
	"github.com/brightforge/agency-backend/internal/service"
)

const (
	// ContextKeySession is the Gin context key for the validated admin session.
	ContextKeySession = "admin_session"
	// ContextKeyToken is the Gin context key for the raw bearer token.
	ContextKeyToken = "admin_token"
)

// RequireAdminSession validates the opaque session token from the Authorization header.
// Missing, unknown and expired tokens all produce the same 401.
func RequireAdminSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, authService, BearerToken(c))
	}
}

// RequireAdminWSSession validates a session token from the query param ?token=...
// Used for WebSocket upgrade requests, which cannot carry custom headers from browsers.
func RequireAdminWSSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			token = c.Query("token")
		}
		authenticate(c, authService, token)
	}
}

func authenticate(c *gin.Context, authService *service.AuthService, token string) {
	if token == "" {
		response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthorized)
		return
	}

	session, err := authService.ValidateSession(c.Request.Context(), token)
	if err != nil {
		response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthorized)
		return
	}

	c.Set(ContextKeySession, session)
	c.Set(ContextKeyToken, token)
	c.Next()
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetSession retrieves the admin session from the Gin context.
func GetSession(c *gin.Context) *model.AdminSession {
	val, exists := c.Get(ContextKeySession)
	if !exists {
		return nil
	}
	session, ok := val.(*model.AdminSession)
	if !ok {
		return nil
	}
	return session
}

// GetToken retrieves the raw session token stored by RequireAdminSession.
func GetToken(c *gin.Context) string {
	return c.GetString(ContextKeyToken)
}
