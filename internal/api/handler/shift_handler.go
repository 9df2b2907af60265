package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shiftline/staff-scheduler/internal/api/metrics"
	"github.com/shiftline/staff-scheduler/internal/api/middleware"
	"github.com/shiftline/staff-scheduler/internal/core/ports"
)

// ShiftHandler handles HTTP requests for shift scheduling operations.
type ShiftHandler struct {
	service ports.ShiftService
}

func NewShiftHandler(service ports.ShiftService) *ShiftHandler {
	return &ShiftHandler{service: service}
}

// Create handles POST /api/shifts.
//
// @Summary      Create a shift
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createShiftRequest  true   "Shift details"
// @Success      201              {object}  domain.Shift
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Router       /api/shifts [post]
func (h *ShiftHandler) Create(c echo.Context) error {
	var req createShiftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actorID, _ := c.Get(middleware.CtxUserID).(string)
	shift, err := h.service.Create(c.Request().Context(), ports.CreateShiftInput{
		UserID:         req.UserID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Position:       req.Position,
		Notes:          req.Notes,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
		ActorID:        actorID,
	})
	if err != nil {
		return err
	}

	metrics.ShiftWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, shift)
}

// List handles GET /api/shifts with optional employee/position filters.
//
// @Summary      List shifts
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Param        employee  query     string  false  "Filter by assigned user id"
// @Param        position  query     string  false  "Filter by position"
// @Success      200       {array}   domain.Shift
// @Failure      401       {object}  map[string]string
// @Router       /api/shifts [get]
func (h *ShiftHandler) List(c echo.Context) error {
	shifts, err := h.service.List(c.Request().Context(), ports.ShiftFilter{
		UserID:   c.QueryParam("employee"),
		Position: c.QueryParam("position"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shifts)
}

// Update handles PUT /api/shifts/:id.
//
// @Summary      Update a shift
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Shift id"
// @Param        body  body      updateShiftRequest  true  "Fields to change"
// @Success      200   {object}  domain.Shift
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/shifts/{id} [put]
func (h *ShiftHandler) Update(c echo.Context) error {
	var req updateShiftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	actorID, _ := c.Get(middleware.CtxUserID).(string)
	shift, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateShiftInput{
		Patch: ports.ShiftPatch{
			UserID:    req.UserID,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Position:  req.Position,
			Notes:     req.Notes,
		},
		ActorID: actorID,
	})
	if err != nil {
		return err
	}

	metrics.ShiftWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, shift)
}

// Delete handles DELETE /api/shifts/:id.
//
// @Summary      Delete a shift
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Shift id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/shifts/{id} [delete]
func (h *ShiftHandler) Delete(c echo.Context) error {
	actorID, _ := c.Get(middleware.CtxUserID).(string)
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), actorID); err != nil {
		return err
	}

	metrics.ShiftWritesTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, map[string]string{"msg": "shift removed"})
}
