package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

// ErrorMiddleware renders errors pushed by handlers via c.Error. Validation
// failures become a 400 with an "errors" array, other taxonomy errors a
// `{msg}` body with their mapped status, and anything unexpected a plain
// "Server Error" so internals never leak to the client.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			status := apperror.ToHTTPStatus(appErr)

			if len(appErr.Violations) > 0 {
				c.JSON(status, gin.H{"errors": appErr.Violations})
				return
			}
			if status == http.StatusInternalServerError {
				log.Error("Request failed", appErr, zap.String("path", c.FullPath()), zap.String("request_id", c.GetString(GinContextKeyRequestID)))
				c.String(status, "Server Error")
				return
			}
			c.JSON(status, gin.H{"msg": appErr.Message})
			return
		}

		log.Error("Unhandled error", err, zap.String("path", c.FullPath()), zap.String("request_id", c.GetString(GinContextKeyRequestID)))
		c.String(http.StatusInternalServerError, "Server Error")
	}
}
