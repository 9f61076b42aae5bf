package stats

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler serves the live dashboard rollups.
type Handler struct {
	service *Service
	log     *zap.Logger
}

// NewHandler creates a new stats Handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) fail(c echo.Context, op string, err error) error {
	h.log.Error(op, zap.Error(err))
	return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Failed to load " + op})
}

// AllUsages handles GET /all-usages.
func (h *Handler) AllUsages(c echo.Context) error {
	out, err := h.service.AllUsages(c.Request().Context())
	if err != nil {
		return h.fail(c, "usages", err)
	}
	return c.JSON(http.StatusOK, out)
}

// TopUsages handles GET /usages.
func (h *Handler) TopUsages(c echo.Context) error {
	out, err := h.service.TopUsages(c.Request().Context())
	if err != nil {
		return h.fail(c, "usages", err)
	}
	return c.JSON(http.StatusOK, out)
}

// Feedbacks handles GET /feedbacks.
func (h *Handler) Feedbacks(c echo.Context) error {
	out, err := h.service.RecentFeedback(c.Request().Context())
	if err != nil {
		return h.fail(c, "feedbacks", err)
	}
	return c.JSON(http.StatusOK, out)
}

// WashroomStats handles GET /washroom-stats.
func (h *Handler) WashroomStats(c echo.Context) error {
	out, err := h.service.WashroomStats(c.Request().Context())
	if err != nil {
		return h.fail(c, "washroom stats", err)
	}
	return c.JSON(http.StatusOK, out)
}
