package middleware

import (
	"errors"
	"net/http"
	"strings"

	"ZramManager/internal/pkg/jwt"
	"ZramManager/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

var (
	errMissingToken  = errors.New("authorization header is required")
	errInvalidFormat = errors.New("invalid authorization format")
)

// JWTAuthMiddleware creates a middleware that accepts only tokens signed by issuer.
// WebSocket clients may pass the token as the "token" query parameter.
func JWTAuthMiddleware(issuer *jwt.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := tokenFromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := issuer.Verify(token)
		if err != nil {
			reason := jwt.ReasonRejected
			var tokenErr *jwt.TokenError
			if errors.As(err, &tokenErr) {
				reason = tokenErr.Reason
			}
			logger.Warn("Rejected JWT token",
				logger.String("reason", string(reason)),
				logger.String("error", err.Error()),
				logger.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": rejectMessage(reason)})
			return
		}

		// Store username in context for the handlers
		c.Set("username", claims.Username)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) (string, error) {
	if c.Request.Header.Get("Upgrade") == "websocket" {
		if token := c.Query("token"); token != "" {
			return token, nil
		}
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errInvalidFormat
	}
	return parts[1], nil
}

func rejectMessage(reason jwt.Reason) string {
	switch reason {
	case jwt.ReasonExpired:
		return "Token expired"
	case jwt.ReasonMalformed:
		return "Malformed token"
	default:
		return "Invalid token"
	}
}
