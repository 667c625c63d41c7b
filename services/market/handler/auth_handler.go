package handler

import (
	"net/http"

	"bookstall/internal/identity"
	model "bookstall/internal/models"
	"bookstall/services/market/helpers"
	"bookstall/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service AccountServiceInterface
}

func NewAuthHandler(service AccountServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterHandler returns the handler for POST /api/auth/<role>/register
func (h *AuthHandler) RegisterHandler(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req helpers.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.HandleBindError(c, "RegisterHandler", err)
			return
		}

		result, err := h.service.Register(c.Request.Context(), identity.RegisterInput{
			Username:    req.Username,
			Email:       req.Email,
			Password:    req.Password,
			Role:        role,
			AdminSecret: req.AdminSecret,
		})
		if err != nil {
			helpers.HandleServiceError(c, "RegisterHandler", err, map[string]any{
				"email": req.Email,
				"role":  role,
			})
			return
		}

		utils.JSONResponse(c, http.StatusCreated, result, "registered successfully")
		helpers.LogSuccess("RegisterHandler", "registered successfully", map[string]any{
			"user_id": result.UserID,
			"role":    result.Role,
		})
	}
}

// LoginHandler returns the handler for POST /api/auth/<role>/login
func (h *AuthHandler) LoginHandler(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req helpers.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.HandleBindError(c, "LoginHandler", err)
			return
		}

		result, err := h.service.Login(c.Request.Context(), req.Email, req.Password, role)
		if err != nil {
			helpers.HandleServiceError(c, "LoginHandler", err, map[string]any{
				"email": req.Email,
				"role":  role,
			})
			return
		}

		utils.JSONResponse(c, http.StatusOK, result, "logged in successfully")
		helpers.LogSuccess("LoginHandler", "logged in successfully", map[string]any{
			"user_id": result.UserID,
			"role":    result.Role,
		})
	}
}
