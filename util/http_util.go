// util/http_util.go
package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	gimme_errors "github.com/gimme-oss/gimme/errors"
	logger "github.com/gimme-oss/gimme/logging"
	"github.com/gimme-oss/gimme/model"
)

const sessionAuthKey = "sessionAuth"

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// SetSessionAuth stores the session credentials on the request context.
func SetSessionAuth(c *gin.Context, auth model.SessionAuth) {
	c.Set(sessionAuthKey, auth)
}

// GetSessionAuth retrieves the session credentials placed on the request
// context by the session middleware.
func GetSessionAuth(c *gin.Context) (model.SessionAuth, error) {
	value, exists := c.Get(sessionAuthKey)
	if !exists {
		return model.SessionAuth{}, gimme_errors.ErrUnauthorized
	}
	auth, ok := value.(model.SessionAuth)
	if !ok {
		return model.SessionAuth{}, gimme_errors.ErrUnauthorized
	}
	return auth, nil
}
