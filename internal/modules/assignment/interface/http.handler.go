package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaCore/internal/modules/assignment/application"
	"mesaYaCore/internal/modules/assignment/domain"
	resdomain "mesaYaCore/internal/modules/reservations/domain"
	tablesdomain "mesaYaCore/internal/modules/tables/domain"
	"mesaYaCore/internal/shared/httputil"
)

// AssignmentHandler exposes the assignment coordinator over HTTP.
type AssignmentHandler struct {
	coordinator *application.Coordinator
	mapper      *httputil.ErrorMapper
}

func NewAssignmentHandler(coordinator *application.Coordinator) *AssignmentHandler {
	mapper := httputil.NewErrorMapper().
		WithMapping(tablesdomain.ErrTableNotFound, http.StatusNotFound, "").
		WithMapping(resdomain.ErrReservationNotFound, http.StatusNotFound, "").
		WithMapping(domain.ErrTableNotAvailable, http.StatusBadRequest, "").
		WithMapping(domain.ErrInsufficientCapacity, http.StatusBadRequest, "").
		WithMapping(domain.ErrTimeConflict, http.StatusBadRequest, "")
	return &AssignmentHandler{coordinator: coordinator, mapper: mapper}
}

// Register wires the assignment route onto the Echo instance.
func (h *AssignmentHandler) Register(e *echo.Echo) {
	e.POST("/tables/assign", h.AssignTable)
}

type assignTableRequest struct {
	TableID       string `json:"tableId"`
	ReservationID string `json:"reservationId"`
}

func (h *AssignmentHandler) AssignTable(c echo.Context) error {
	var req assignTableRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "invalid request body"})
	}
	if req.TableID == "" || req.ReservationID == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "tableId and reservationId are required"})
	}
	res, err := h.coordinator.AssignTable(c.Request().Context(), req.TableID, req.ReservationID)
	if err != nil {
		return httputil.Fail(c, h.mapper, err)
	}
	return httputil.OK(c, http.StatusOK, "table assigned", map[string]any{"reservation": res})
}
