package auth

import (
	"errors"
	"net/http"

	"WashroomMonitor/pkg/validate"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service *UserService
	log     *zap.Logger
}

func NewAuthHandler(service *UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, log: log}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": validate.Message(err)})
	}

	err := h.service.RegisterUser(c.Request().Context(), req)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, map[string]any{"success": true, "message": "User registered successfully"})
	case errors.Is(err, ErrUserExists):
		return c.JSON(http.StatusConflict, map[string]any{"success": false, "message": "Username already registered"})
	default:
		h.log.Error("register user", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]any{"success": false, "message": "Registration failed"})
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var cred Credential
	if err := c.Bind(&cred); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid request"})
	}
	if err := c.Validate(&cred); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": validate.Message(err)})
	}

	token, err := h.service.AuthenticateUser(c.Request().Context(), cred)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]any{"success": true, "token": token})
	case errors.Is(err, ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid credentials"})
	default:
		h.log.Error("authenticate user", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]any{"success": false, "message": "Login failed"})
	}
}
