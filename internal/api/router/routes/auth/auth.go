package auth

import (
	"crypto/subtle"
	"net/http"

	"ZramManager/internal/pkg/config"
	"ZramManager/internal/pkg/jwt"
	"ZramManager/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthRegistrar registers authentication routes
type AuthRegistrar struct{}

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register adds POST /api/auth/login, which trades the agent credentials for a bearer token
func (r *AuthRegistrar) Register(engine *gin.Engine, cfg *config.Config) error {
	issuer := jwt.IssuerFromConfig(cfg)
	authGroup := engine.Group("/api/auth")
	{
		authGroup.POST("/login", func(c *gin.Context) {
			var creds credentials
			if err := c.ShouldBindJSON(&creds); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
				return
			}

			if !matches(creds, cfg.Agent.Auth) {
				logger.Warn("Failed authentication attempt",
					logger.String("username", creds.Username),
					logger.String("ip", c.ClientIP()))
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}

			token, err := issuer.Issue(creds.Username)
			if err != nil {
				logger.Error("Failed to generate token", logger.String("error", err.Error()))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"status":     "success",
				"token":      token,
				"expires_in": issuer.TTL().Seconds(),
			})
		})
	}

	return nil
}

func matches(creds credentials, expected config.AuthConfig) bool {
	if expected.User == "" || expected.Pass == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(expected.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(expected.Pass)) == 1
	return userOK && passOK
}
