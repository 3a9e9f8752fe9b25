package bike

import (
	"log/slog"
	"net/http"

	bikesvc "github.com/Montardi/percini-moto-manager/service/bike"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bikesvc.Service
	Log *slog.Logger
}

// GET /v1/bikes
func (h *Controller) List(c echo.Context) error {
	bikes, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("bike list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": bikes})
}
