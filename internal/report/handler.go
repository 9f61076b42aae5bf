package report

import (
	"errors"
	"net/http"

	"WashroomMonitor/internal/clock"
	"WashroomMonitor/internal/washroom"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler serves GET /report.
type Handler struct {
	resolver *Resolver
	log      *zap.Logger
}

// NewHandler creates a new report Handler.
func NewHandler(resolver *Resolver, log *zap.Logger) *Handler {
	return &Handler{resolver: resolver, log: log}
}

// Report answers with a series, a chart, the no-data message, or a 400 for malformed input.
func (h *Handler) Report(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	res, err := h.resolver.Resolve(c.Request().Context(), req)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, res.Payload())
	case errors.Is(err, ErrNoData):
		return c.JSON(http.StatusOK, map[string]string{"message": "No data available"})
	case errors.Is(err, washroom.ErrInvalidIdentity),
		errors.Is(err, clock.ErrInvalidDate),
		errors.Is(err, ErrUnsupportedReportType):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		h.log.Error("build report", zap.Any("request", req), zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Failed to build report"})
	}
}
