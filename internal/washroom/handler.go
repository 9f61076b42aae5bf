package washroom

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler serves the washroom configuration endpoints.
type Handler struct {
	service *Service
	log     *zap.Logger
}

// NewHandler creates a new washroom Handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Configurations lists configured washrooms with their ids.
func (h *Handler) Configurations(c echo.Context) error {
	configs, err := h.service.ListConfigurations(c.Request().Context())
	if err != nil {
		h.log.Error("list configurations", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Failed to load configurations"})
	}
	return c.JSON(http.StatusOK, configs)
}

// Washrooms lists the configured (floor, toiletType) pairs.
func (h *Handler) Washrooms(c echo.Context) error {
	washrooms, err := h.service.ListWashrooms(c.Request().Context())
	if err != nil {
		h.log.Error("list washrooms", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Failed to load washrooms"})
	}
	return c.JSON(http.StatusOK, washrooms)
}
