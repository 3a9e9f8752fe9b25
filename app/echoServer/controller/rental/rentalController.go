package rental

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	rs "github.com/Montardi/percini-moto-manager/service/rental"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/rentals
func (h *Controller) Create(c echo.Context) error {
	var req CreateRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	in := rs.CreateInput{
		CPF:          req.CPF,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Bike:         req.Bike,
		StartDate:    startDate,
		StartKm:      *req.StartKm,
		DailyRate:    req.DailyRate,
	}
	if req.EndDate != "" {
		endDate, _ := time.Parse("2006-01-02", req.EndDate)
		in.EndDate = &endDate
	}

	out, err := h.Svc.Create(c.Request().Context(), in)
	if err != nil {
		h.Log.Error("rental create", "err", err)
		switch rs.Code(err) {
		case rs.ErrBikeNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "bike not found"})
		case rs.ErrInvalidPeriod:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "end date precedes start date"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	uid, _ := c.Get("user_id").(int64)
	h.Log.Info("rental created", "rental_id", out.ID, "operator", uid)
	return c.JSON(http.StatusCreated, echo.Map{"data": out})
}

// GET /v1/rentals?q=&status=
func (h *Controller) List(c echo.Context) error {
	search := c.QueryParam("q")
	status := c.QueryParam("status")
	switch status {
	case "", "all", "active", "completed", "overdue":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid status filter"})
	}

	rows, err := h.Svc.List(c.Request().Context(), search, status)
	if err != nil {
		h.Log.Error("rental list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/rentals/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	out, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		default:
			h.Log.Error("rental detail", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// POST /v1/rentals/:id/finish
func (h *Controller) Finish(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req FinishRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	out, err := h.Svc.Finish(c.Request().Context(), id, req.EndKm)
	if err != nil {
		switch rs.Code(err) {
		case rs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		case rs.ErrInvalidEndKm:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "end km must exceed start km"})
		case rs.ErrAlreadyFinished:
			return c.JSON(http.StatusConflict, echo.Map{"message": "rental already finished"})
		default:
			h.Log.Error("rental finish", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	uid, _ := c.Get("user_id").(int64)
	h.Log.Info("rental finished", "rental_id", id, "operator", uid)
	return c.JSON(http.StatusOK, echo.Map{"message": "finished", "data": out})
}
