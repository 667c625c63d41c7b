package server

import (
	"fmt"
	"strings"
	"time"

	"bookstall/internal/identity"
	"bookstall/internal/marketerrors"
	model "bookstall/internal/models"
	"bookstall/services/market/helpers"
	"bookstall/utils"

	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-ID"

// RequestLoggerMiddleware logs incoming requests with timing and a request id
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = utils.GenerateID()
	}
	c.Header(requestIDHeader, requestID)

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"request_id": requestID,
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
	})
}

// AuthMiddleware resolves the bearer token and stores the caller on the request
func AuthMiddleware(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			rejectUnauthorized(c, fmt.Errorf("%w - missing bearer token", marketerrors.ErrUnauthorized))
			return
		}

		caller, err := resolver.Resolve(strings.TrimSpace(token))
		if err != nil {
			rejectUnauthorized(c, err)
			return
		}

		helpers.SetIdentity(c, caller)
		c.Next()
	}
}

// RequireRole rejects callers without role. Must run after AuthMiddleware.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := helpers.CurrentIdentity(c)
		if !ok {
			rejectUnauthorized(c, fmt.Errorf("%w - no identity on request", marketerrors.ErrUnauthorized))
			return
		}
		if caller.Role != role {
			helpers.HandleServiceError(c, "RequireRole", fmt.Errorf("%w - %s role required", marketerrors.ErrForbidden, role), map[string]any{
				"user_id": caller.UserID,
				"path":    c.Request.URL.Path,
			})
			return
		}
		c.Next()
	}
}

func rejectUnauthorized(c *gin.Context, err error) {
	helpers.HandleServiceError(c, "AuthMiddleware", err, map[string]any{"path": c.Request.URL.Path})
}
