package utils

import (
	"errors"
	"net/http"

	"alertwatch/internal/api/dto/common"
	"alertwatch/internal/logging"
	"alertwatch/internal/repository"
	"alertwatch/internal/service"

	"github.com/gin-gonic/gin"
)

// LogError logs an error with a message using the singleton logger
func LogError(err error, message string) {
	logger := logging.GetLogger()
	logger.Error("%s: %v", message, err)
}

// HandleServiceError maps well-known service errors to HTTP responses and
// falls back to HandleAPIError for everything else.
func HandleServiceError(c *gin.Context, err error, defaultMessage string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeValidation, err.Error(), nil))
	case errors.Is(err, service.ErrNotFound), repository.IsNotFound(err):
		c.JSON(http.StatusNotFound, common.NewErrorResponse(common.ErrCodeNotFound, "Resource not found", nil))
	case errors.Is(err, service.ErrNotActive):
		c.JSON(http.StatusConflict, common.NewErrorResponse(common.ErrCodeConflict, err.Error(), nil))
	case errors.Is(err, service.ErrSetupComplete):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.ErrCodeBadRequest, err.Error(), nil))
	default:
		HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, defaultMessage)
	}
}

// HandleAPIError is a utility function for consistent error handling across the API
// It handles common error types and ensures sensitive error details are only exposed in non-production environments
func HandleAPIError(c *gin.Context, err error, defaultStatus int, defaultCode common.ErrorCode, defaultMessage string) {
	if repository.IsNotFound(err) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse(common.ErrCodeNotFound, "Resource not found", nil))
		return
	}

	logger := logging.GetLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		defaultStatus,
		defaultMessage,
		err,
	)

	// In production, don't expose error details
	var errorDetails interface{} = nil
	if gin.Mode() != gin.ReleaseMode {
		errorDetails = err.Error()
	}

	c.JSON(defaultStatus, common.NewErrorResponse(defaultCode, defaultMessage, errorDetails))
}
