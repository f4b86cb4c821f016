package api

import (
	"net/http"
	"strings"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const identityKey = "identity"

// TokenVerifier turns a bearer token into a username
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// authMiddleware verifies the bearer token and loads the caller
func authMiddleware(verifier TokenVerifier, users service.UserService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" || token == header {
			respond(c, http.StatusUnauthorized, models.CodeUnauthorized, "", nil)
			c.Abort()
			return
		}

		username, err := verifier.Verify(token)
		if err != nil {
			log.Debug().Err(err).Str("request_id", requestID(c)).Msg("Rejected token")
			respond(c, http.StatusUnauthorized, models.CodeUnauthorized, "", nil)
			c.Abort()
			return
		}

		who, err := users.Resolve(c.Request.Context(), username)
		if err != nil {
			fail(c, log, err)
			c.Abort()
			return
		}

		c.Set(identityKey, who)
		c.Next()
	}
}

// requireAdmin rejects callers whose phone is not in the admin set
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !identity(c).Admin {
			respond(c, http.StatusForbidden, models.CodePublishArticleNoPermission, "admin privilege required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// identity returns the caller set by authMiddleware
func identity(c *gin.Context) *models.Identity {
	if v, ok := c.Get(identityKey); ok {
		if who, ok := v.(*models.Identity); ok {
			return who
		}
	}
	return &models.Identity{}
}
