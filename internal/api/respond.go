package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/credipyme/risk-api/internal/errors"
)

// statusForCode maps application error codes onto HTTP statuses.
var statusForCode = map[string]int{
	apperrors.ErrCodeNotFound:        http.StatusNotFound,
	apperrors.ErrCodeInvalidInput:    http.StatusBadRequest,
	apperrors.ErrCodeValidationError: http.StatusBadRequest,
	apperrors.ErrCodeUnauthorized:    http.StatusUnauthorized,
	apperrors.ErrCodeForbidden:       http.StatusForbidden,
	apperrors.ErrCodeConflict:        http.StatusConflict,
	apperrors.ErrCodeServiceError:    http.StatusBadGateway,
}

// respondError writes a service-layer error as a JSON response. Unknown
// error types become a 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status, ok := statusForCode[appErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		body := gin.H{"error": appErr.Message}
		if appErr.Details != "" {
			body["details"] = appErr.Details
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
