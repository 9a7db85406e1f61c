package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	restaurants "mesaYaCore/internal/modules/restaurants/domain"
	"mesaYaCore/internal/modules/tables/application"
	"mesaYaCore/internal/modules/tables/domain"
	"mesaYaCore/internal/shared/httputil"
)

// TableHandler exposes the table registry over HTTP.
type TableHandler struct {
	registry *application.Registry
	mapper   *httputil.ErrorMapper
}

func NewTableHandler(registry *application.Registry) *TableHandler {
	mapper := httputil.NewErrorMapper().
		WithMapping(domain.ErrTableNotFound, http.StatusNotFound, "").
		WithMapping(restaurants.ErrRestaurantNotFound, http.StatusNotFound, "").
		WithMapping(domain.ErrDuplicateTable, http.StatusBadRequest, "").
		WithMapping(domain.ErrInvalidShape, http.StatusBadRequest, "").
		WithMapping(domain.ErrInvalidShapeDimensions, http.StatusBadRequest, "").
		WithMapping(domain.ErrInvalidSeatCount, http.StatusBadRequest, "").
		WithMapping(domain.ErrInvalidStatus, http.StatusBadRequest, "").
		WithMapping(domain.ErrHasCurrentReservation, http.StatusBadRequest, "").
		WithMapping(domain.ErrHasFutureReservations, http.StatusBadRequest, "").
		WithMapping(domain.ErrVersionConflict, http.StatusBadRequest, "")
	return &TableHandler{registry: registry, mapper: mapper}
}

// Register wires the table routes onto the Echo instance.
func (h *TableHandler) Register(e *echo.Echo) {
	e.GET("/restaurant/:id/tables", h.ListTables)
	e.GET("/restaurant/:id/floor-layout", h.FloorLayout)
	e.PUT("/restaurant/:id/floor-layout", h.UpdateFloorLayout)
	e.GET("/tables/:table_id/reservations", h.TableReservations)
	e.POST("/tables", h.CreateTable)
	e.PUT("/tables/:table_id/position", h.UpdatePosition)
	e.PUT("/tables/:table_id/details", h.UpdateDetails)
	e.PUT("/tables/:table_id/status", h.SetStatus)
	e.DELETE("/tables/:table_id", h.DeleteTable)
}

func (h *TableHandler) ListTables(c echo.Context) error {
	date, ok := queryDate(c)
	if !ok {
		return badRequest(c, "invalid date, expected YYYY-MM-DD")
	}
	listing, err := h.registry.ListByRestaurant(c.Request().Context(), c.Param("id"), date)
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	return httputil.OK(c, http.StatusOK, "", map[string]any{
		"restaurantId": listing.RestaurantID,
		"date":         listing.Date,
		"schedule":     listing.Schedule,
		"tables":       listing.Tables,
	})
}

func (h *TableHandler) FloorLayout(c echo.Context) error {
	date, ok := queryDate(c)
	if !ok {
		return badRequest(c, "invalid date, expected YYYY-MM-DD")
	}
	layout, err := h.registry.Layout(c.Request().Context(), c.Param("id"), date)
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	return httputil.OK(c, http.StatusOK, "", map[string]any{"layout": json.RawMessage(layout)})
}

type updateLayoutRequest struct {
	Positions []application.TablePosition `json:"positions"`
}

func (h *TableHandler) UpdateFloorLayout(c echo.Context) error {
	var req updateLayoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(req.Positions) == 0 {
		return badRequest(c, "positions are required")
	}
	if err := h.registry.UpdateLayout(c.Request().Context(), c.Param("id"), req.Positions); err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	return httputil.OK(c, http.StatusOK, "floor layout updated", nil)
}

func (h *TableHandler) TableReservations(c echo.Context) error {
	date, ok := queryDate(c)
	if !ok {
		return badRequest(c, "invalid date, expected YYYY-MM-DD")
	}
	reservations, err := h.registry.ReservationsForTable(c.Request().Context(), c.Param("table_id"), date)
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	return httputil.OK(c, http.StatusOK, "", map[string]any{
		"tableId":      c.Param("table_id"),
		"date":         date.Format("2006-01-02"),
		"reservations": reservations,
	})
}

type createTableRequest struct {
	RestaurantID string  `json:"restaurantId"`
	Number       int     `json:"number"`
	Seats        int     `json:"seats"`
	Shape        string  `json:"shape"`
	Radius       float64 `json:"radius"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	PosX         float64 `json:"posX"`
	PosY         float64 `json:"posY"`
	Section      string  `json:"section"`
	Status       string  `json:"status"`
}

func (h *TableHandler) CreateTable(c echo.Context) error {
	var req createTableRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.RestaurantID == "" {
		return badRequest(c, "restaurantId is required")
	}
	table, err := h.registry.Create(c.Request().Context(), application.CreateTableInput{
		RestaurantID: req.RestaurantID,
		Number:       req.Number,
		Seats:        req.Seats,
		Shape:        req.Shape,
		Dims:         domain.Dimensions{Radius: req.Radius, Width: req.Width, Height: req.Height},
		PosX:         req.PosX,
		PosY:         req.PosY,
		Section:      req.Section,
		Status:       req.Status,
	})
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	return httputil.OK(c, http.StatusCreated, "table created", map[string]any{"table": table})
}

type updatePositionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (h *TableHandler) UpdatePosition(c echo.Context) error {
	var req updatePositionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	table, err := h.registry.UpdatePosition(c.Request().Context(), c.Param("table_id"), req.X, req.Y)
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	return httputil.OK(c, http.StatusOK, "table position updated", map[string]any{"table": table})
}

type updateDetailsRequest struct {
	Seats   *int     `json:"seats"`
	Shape   *string  `json:"shape"`
	Radius  *float64 `json:"radius"`
	Width   *float64 `json:"width"`
	Height  *float64 `json:"height"`
	Section *string  `json:"section"`
	Status  *string  `json:"status"`
}

func (h *TableHandler) UpdateDetails(c echo.Context) error {
	var req updateDetailsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	table, err := h.registry.UpdateDetails(c.Request().Context(), c.Param("table_id"), application.UpdateDetailsInput{
		Seats:   req.Seats,
		Shape:   req.Shape,
		Radius:  req.Radius,
		Width:   req.Width,
		Height:  req.Height,
		Section: req.Section,
		Status:  req.Status,
	})
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	return httputil.OK(c, http.StatusOK, "table details updated", map[string]any{"table": table})
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h *TableHandler) SetStatus(c echo.Context) error {
	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Status == "" {
		return badRequest(c, "status is required")
	}
	table, err := h.registry.SetStatus(c.Request().Context(), c.Param("table_id"), req.Status)
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	return httputil.OK(c, http.StatusOK, "table status updated", map[string]any{"table": table})
}

func (h *TableHandler) DeleteTable(c echo.Context) error {
	if err := h.registry.Delete(c.Request().Context(), c.Param("table_id")); err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	return httputil.OK(c, http.StatusOK, "table deleted", nil)
}

// queryDate reads the optional date query parameter, defaulting to today.
func queryDate(c echo.Context) (time.Time, bool) {
	raw := c.QueryParam("date")
	if raw == "" {
		return time.Now().UTC(), true
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": message})
}
