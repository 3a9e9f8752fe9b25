package report

import (
	"log/slog"
	"net/http"

	reportsvc "github.com/Montardi/percini-moto-manager/service/report"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc reportsvc.Service
	Log *slog.Logger
}

// GET /v1/reports/overview
func (h *Controller) Overview(c echo.Context) error {
	out, err := h.Svc.Overview(c.Request().Context())
	if err != nil {
		h.Log.Error("report overview", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/reports/financial?period=
func (h *Controller) Financial(c echo.Context) error {
	out, err := h.Svc.Financial(c.Request().Context(), c.QueryParam("period"))
	if err != nil {
		if reportsvc.Code(err) == reportsvc.ErrInvalidPeriod {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid period"})
		}
		h.Log.Error("report financial", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/reports/bikes?period=
func (h *Controller) Bikes(c echo.Context) error {
	out, err := h.Svc.Bikes(c.Request().Context(), c.QueryParam("period"))
	if err != nil {
		if reportsvc.Code(err) == reportsvc.ErrInvalidPeriod {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid period"})
		}
		h.Log.Error("report bikes", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/reports/customers?period=
func (h *Controller) Customers(c echo.Context) error {
	out, err := h.Svc.Customers(c.Request().Context(), c.QueryParam("period"))
	if err != nil {
		if reportsvc.Code(err) == reportsvc.ErrInvalidPeriod {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid period"})
		}
		h.Log.Error("report customers", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}
