package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/brightforge/agency-backend/internal/response"
)

// RequireWebhookJWT verifies an HS256 bearer token signed with secret.
// An empty secret leaves the receiver open, matching deployments without n8n credentials.
func RequireWebhookJWT(secret string) gin.HandlerFunc {
	if secret == "" {
		return func(c *gin.Context) { c.Next() }
	}

	key := []byte(secret)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	return func(c *gin.Context) {
		tokenStr := BearerToken(c)
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthorized)
			return
		}

		_, err := parser.Parse(tokenStr, func(*jwt.Token) (interface{}, error) {
			return key, nil
		})
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthorized)
			return
		}

		c.Next()
	}
}
