package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "matrimony-backend/internal/common/errors"
	"matrimony-backend/internal/common/logger"
)

// RequestID attaches a request id, generating one when the client did not
// send it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Recovery converts panics into a logged 500 response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Str("request_id", getRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		RespondError(c, apperrors.New(apperrors.ErrCodeInternal, "Internal server error"))
	})
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Success   bool                `json:"success"`
	Error     *apperrors.AppError `json:"error"`
	Timestamp time.Time           `json:"timestamp"`
	RequestID string              `json:"request_id"`
}

// RespondError renders an application error with the mapped HTTP status and
// aborts the request.
func RespondError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Wrap(err, apperrors.ErrCodeInternal, "Internal server error")
	}

	logError(c, appErr)

	c.AbortWithStatusJSON(httpStatus(appErr.Code), ErrorResponse{
		Success:   false,
		Error:     appErr,
		Timestamp: time.Now().UTC(),
		RequestID: getRequestID(c),
	})
}

func httpStatus(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeInvalidFileType:
		return http.StatusBadRequest
	case apperrors.ErrCodeInvalidCredentials, apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden, apperrors.ErrCodePendingApproval, apperrors.ErrCodeRejectedAccount:
		return http.StatusForbidden
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeDuplicateUser:
		return http.StatusConflict
	case apperrors.ErrCodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case apperrors.ErrCodeStorageQuotaExceeded:
		return http.StatusInsufficientStorage
	case apperrors.ErrCodeUploadFailed:
		return http.StatusBadGateway
	case apperrors.ErrCodeInfrastructure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func logError(c *gin.Context, appErr *apperrors.AppError) {
	event := logger.Info()
	if appErr.IsInternal() {
		event = logger.Error()
	}

	event.
		Str("request_id", getRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code)).
		Str("error_message", appErr.Message).
		Err(appErr.Cause).
		Msg("Request failed")
}

func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return "unknown"
}
