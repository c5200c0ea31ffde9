package handlers

import (
	"net/http"

	"catalogadmin/internal/common"
	"catalogadmin/internal/models"
	"catalogadmin/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService services.AuthService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// Login handles user login
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   result.Token,
		User:    result.User,
	})
}

// Me returns the identity decoded from the caller's token
func (h *AuthHandlers) Me(c echo.Context) error {
	identity, ok := common.GetIdentityFromContext(c.Request().Context())
	if !ok {
		return common.NewUnauthorizedError("Access token required")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    identity,
	})
}
