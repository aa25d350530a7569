package middleware

import (
	"errors"
	"net/http"

	"go-matching-backend/internal/delivery/http/response"
	"go-matching-backend/internal/domain"
	"go-matching-backend/pkg/apperror"
	"go-matching-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		reqID := c.GetString(string(domain.KeyRequestID))

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.ErrorContext(c.Request.Context(), "request failed",
					"request_id", reqID, "path", c.FullPath(), "status", appErr.Code, "error", err)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// Never expose internal error details to clients
		logger.Log.ErrorContext(c.Request.Context(), "internal server error",
			"request_id", reqID, "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}

// abortWithError writes err in the standard envelope and stops the chain.
// Used by middleware that runs before handlers can c.Error.
func abortWithError(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.Code, err.Message, nil)
	c.Abort()
}
