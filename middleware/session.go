// middleware/session.go

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/gimme-oss/gimme/logging"
	"github.com/gimme-oss/gimme/model"
	"github.com/gimme-oss/gimme/util"
)

// Session lifts the bearer token and session id off the request and makes
// them available to the grant pipeline. It performs no authorization: the
// domain check is a pipeline step inside the grant service, not middleware.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authz, "Bearer ")
		if authz == "" || token == authz {
			logger.Warn("Request without a bearer token",
				zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		sessionID, err := c.Cookie("session")
		if err != nil {
			sessionID = c.GetHeader("X-Session-ID")
		}

		util.SetSessionAuth(c, model.SessionAuth{
			SessionID:   sessionID,
			AccessToken: token,
		})

		c.Next()
	}
}
