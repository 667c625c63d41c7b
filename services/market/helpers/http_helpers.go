package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"bookstall/internal/marketerrors"
	"bookstall/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, marketerrors.ErrBookNotFound):
		return http.StatusNotFound, "book not found"
	case errors.Is(err, marketerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, marketerrors.ErrValidation):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, marketerrors.ErrInvalidState):
		return http.StatusBadRequest, "operation not allowed in current status"
	case errors.Is(err, marketerrors.ErrInsufficientStock):
		return http.StatusBadRequest, "requested quantity not available"
	case errors.Is(err, marketerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "please authenticate"
	case errors.Is(err, marketerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, marketerrors.ErrForbidden):
		return http.StatusForbidden, "access denied"
	case errors.Is(err, marketerrors.ErrEmailTaken):
		return http.StatusConflict, "email already registered"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// HandleServiceError writes the mapped error envelope and logs the failure
func HandleServiceError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
