package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "comptable/internal/errors"
	"comptable/internal/logger"
	"comptable/internal/session"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into consistent JSON error responses. AppErrors are returned with
// their code and message; unexpected errors are logged and return a generic
// internal error to avoid leaking details. Errors that are not a domain-rule
// violation are also recorded as the session's last error.
func ErrorHandler(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"message", appErr.Message,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
			if reportable(appErr.Kind) {
				sess.ReportError(appErr)
			}
			c.JSON(appErr.StatusCode, errorBody(appErr))
			return
		}

		// Unexpected error: log full details, return generic message
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		sess.ReportError(apperrors.ErrInternalServer)
		c.JSON(apperrors.ErrInternalServer.StatusCode, errorBody(apperrors.ErrInternalServer))
	}
}

func reportable(kind apperrors.Kind) bool {
	switch kind {
	case apperrors.KindInternal, apperrors.KindConnection, apperrors.KindTransaction:
		return true
	}
	return false
}

func errorBody(e *apperrors.AppError) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    e.Code,
			"message": e.Message,
		},
	}
}
