package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaCore/internal/modules/availability/application"
	resdomain "mesaYaCore/internal/modules/reservations/domain"
	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	"mesaYaCore/internal/shared/clock"
	"mesaYaCore/internal/shared/httputil"
)

// AvailabilityHandler exposes the availability engine over HTTP.
type AvailabilityHandler struct {
	engine *application.Engine
	mapper *httputil.ErrorMapper
}

func NewAvailabilityHandler(engine *application.Engine) *AvailabilityHandler {
	mapper := httputil.NewErrorMapper().
		WithMapping(restaurants.ErrRestaurantNotFound, http.StatusNotFound, "").
		WithMapping(resdomain.ErrInvalidGuestCount, http.StatusBadRequest, "").
		WithMapping(clock.ErrInvalidTimeOfDay, http.StatusBadRequest, "")
	return &AvailabilityHandler{engine: engine, mapper: mapper}
}

// Register wires the availability route onto the Echo instance.
func (h *AvailabilityHandler) Register(e *echo.Echo) {
	e.POST("/check_Availability", h.CheckAvailability)
}

type checkAvailabilityRequest struct {
	RestaurantID string `json:"restaurantId"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Guests       int    `json:"guests"`
}

func (h *AvailabilityHandler) CheckAvailability(c echo.Context) error {
	var req checkAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "invalid request body"})
	}
	if req.RestaurantID == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "restaurantId is required"})
	}
	result, err := h.engine.Check(c.Request().Context(), application.CheckInput{
		RestaurantID: req.RestaurantID,
		Date:         req.Date,
		Time:         req.Time,
		Guests:       req.Guests,
	})
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	return httputil.OK(c, http.StatusOK, "", map[string]any{
		"available":    result.Available,
		"tables":       result.Tables,
		"alternatives": result.Alternatives,
	})
}
