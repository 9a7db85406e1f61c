package transport

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	clients "mesaYaCore/internal/modules/clients/domain"
	"mesaYaCore/internal/modules/reservations/application"
	"mesaYaCore/internal/modules/reservations/domain"
	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	"mesaYaCore/internal/shared/clock"
	"mesaYaCore/internal/shared/httputil"
)

// ReservationHandler exposes the reservation store over HTTP.
type ReservationHandler struct {
	store  *application.Store
	mapper *httputil.ErrorMapper
}

func NewReservationHandler(store *application.Store) *ReservationHandler {
	mapper := httputil.NewErrorMapper().
		WithMapping(domain.ErrReservationNotFound, http.StatusNotFound, "").
		WithMapping(restaurants.ErrRestaurantNotFound, http.StatusNotFound, "").
		WithMapping(domain.ErrRestaurantClosed, http.StatusBadRequest, "").
		WithMapping(domain.ErrInvalidGuestCount, http.StatusBadRequest, "").
		WithMapping(domain.ErrInvalidStatus, http.StatusBadRequest, "").
		WithMapping(domain.ErrInvalidTransition, http.StatusBadRequest, "").
		WithMapping(clients.ErrClientNotFound, http.StatusBadRequest, "").
		WithMapping(clients.ErrUnknownClientKind, http.StatusBadRequest, "").
		WithMapping(clock.ErrInvalidTimeOfDay, http.StatusBadRequest, "")
	return &ReservationHandler{store: store, mapper: mapper}
}

// Register wires the reservation routes onto the Echo instance.
func (h *ReservationHandler) Register(e *echo.Echo) {
	e.POST("/create_Reservation", h.CreateReservation)
	e.GET("/reservations/:reservation_id", h.GetReservation)
	e.PUT("/reservations/:reservation_id/status", h.UpdateStatus)
	e.POST("/reservations/:reservation_id/cancel", h.Cancel)
}

type createReservationRequest struct {
	RestaurantID    string `json:"restaurantId"`
	ClientKind      string `json:"clientKind"`
	ClientID        string `json:"clientId"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Guests          int    `json:"guests"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"durationMinutes"`
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.RestaurantID == "" {
		return badRequest(c, "restaurantId is required")
	}
	start, err := parseStartTime(req.Date, req.Time)
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}

	res, err := h.store.Create(c.Request().Context(), application.CreateInput{
		RestaurantID:    req.RestaurantID,
		Client:          clients.ClientRef{Kind: clients.ClientKind(req.ClientKind), ID: req.ClientID},
		GuestName:       req.Name,
		GuestEmail:      req.Email,
		GuestPhone:      req.Phone,
		Guests:          req.Guests,
		StartTime:       start,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	return httputil.OK(c, http.StatusCreated, "reservation created", map[string]any{"reservation": res})
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	res, err := h.store.GetByID(c.Request().Context(), c.Param("reservation_id"))
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	return httputil.OK(c, http.StatusOK, "", map[string]any{"reservation": res})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Status == "" {
		return badRequest(c, "status is required")
	}
	res, err := h.store.UpdateStatus(c.Request().Context(), c.Param("reservation_id"), req.Status)
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	return httputil.OK(c, http.StatusOK, "reservation status updated", map[string]any{"reservation": res})
}

func (h *ReservationHandler) Cancel(c echo.Context) error {
	res, err := h.store.Cancel(c.Request().Context(), c.Param("reservation_id"))
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	return httputil.OK(c, http.StatusOK, "reservation cancelled", map[string]any{"reservation": res})
}

// parseStartTime combines the calendar date and the (12-hour or 24-hour)
// time-of-day string into a UTC instant.
func parseStartTime(date, timeOfDay string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, clock.ErrInvalidTimeOfDay
	}
	minutes, err := clock.ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": message})
}
