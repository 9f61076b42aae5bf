package notification

import (
	"net/http"

	"WashroomMonitor/pkg/validate"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the problem feed and action messages.
type Handler struct {
	service *Service
	log     *zap.Logger
}

// NewHandler creates a new notification Handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Problems lists today's active problems, deduplicated.
func (h *Handler) Problems(c echo.Context) error {
	problems, err := h.service.ActiveProblems(c.Request().Context())
	if err != nil {
		h.log.Error("list problems", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Failed to fetch problems"})
	}
	return c.JSON(http.StatusOK, problems)
}

// Notifications lists today's active problems with their read flag.
func (h *Handler) Notifications(c echo.Context) error {
	notifications, err := h.service.Notifications(c.Request().Context())
	if err != nil {
		h.log.Error("list notifications", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Failed to fetch notifications"})
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkRead flags the posted ids as read.
func (h *Handler) MarkRead(c echo.Context) error {
	var req MarkReadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	marked, err := h.service.MarkRead(c.Request().Context(), req.IDs)
	if err != nil {
		h.log.Error("mark notifications read", zap.Int("marked", marked), zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Failed to mark notifications"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Notifications marked as read"})
}

// SendAction forwards the message to the maintenance contact.
func (h *Handler) SendAction(c echo.Context) error {
	var req ActionMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "error": validate.Message(err)})
	}

	sid, err := h.service.SendAction(c.Request().Context(), req.Message)
	if err != nil {
		h.log.Error("send action message", zap.Error(err))
		return c.JSON(http.StatusBadGateway, map[string]any{"success": false, "error": "Failed to send message"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message_sid": sid})
}
