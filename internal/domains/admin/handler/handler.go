package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"megheza-backend/internal/domains/admin/model"
	"megheza-backend/internal/domains/admin/service"
	"megheza-backend/internal/shared/middleware"
	"megheza-backend/internal/shared/response"
)

// =====================================================
// ADMIN SESSION HANDLER
// =====================================================

type AdminHandler struct {
	authService service.AuthService
}

func NewAdminHandler(authService service.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// Login opens an admin session
// POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		status, code, msg := mapAuthError(err)
		response.ErrorResponse(c, status, code, msg)
		return
	}

	response.Success(c, http.StatusOK, token)
}

// Logout revokes the current session
// POST /api/admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	claims, ok := middleware.AdminClaims(c)
	if !ok {
		response.ErrorResponse(c, http.StatusUnauthorized, model.ErrCodeUnauthorized, "Admin session required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		status, code, msg := mapAuthError(err)
		response.ErrorResponse(c, status, code, msg)
		return
	}

	c.Status(http.StatusNoContent)
}

func mapAuthError(err error) (int, string, string) {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, model.ErrCodeInvalidCredentials, "Invalid password"
	case errors.Is(err, model.ErrUnauthorized), errors.Is(err, model.ErrTokenRevoked):
		return http.StatusUnauthorized, model.ErrCodeUnauthorized, "Admin session required"
	case errors.Is(err, model.ErrAuthUnavailable):
		return http.StatusServiceUnavailable, model.ErrCodeAuthUnavailable, "Please try again later"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Please try again later"
	}
}
