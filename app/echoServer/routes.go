package echoServer

import (
	"net/http"

	authctrl "github.com/Montardi/percini-moto-manager/app/echoServer/controller/auth"
	bikectrl "github.com/Montardi/percini-moto-manager/app/echoServer/controller/bike"
	rentalctrl "github.com/Montardi/percini-moto-manager/app/echoServer/controller/rental"
	reportctrl "github.com/Montardi/percini-moto-manager/app/echoServer/controller/report"
	"github.com/Montardi/percini-moto-manager/app/echoServer/jwtx"
	"github.com/Montardi/percini-moto-manager/model"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth   *authctrl.Controller
	Bike   *bikectrl.Controller
	Rental *rentalctrl.Controller
	Report *reportctrl.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Authenticated
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(c.JWTSecret),
		TokenLookup: "header:Authorization",
	}))
	// claim extraction: user_id + role for downstream handlers
	auth.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", uid)
			if role, err := jwtx.RoleFromContext(ctx); err == nil {
				ctx.Set("role", role)
			}
			return next(ctx)
		}
	})
	// the whole dashboard is operator-only
	auth.Use(RequireRole(model.RoleGestor, model.RoleAdmin))

	// Bikes (form autofill source)
	auth.GET("/bikes", c.Bike.List)

	// Rentals
	auth.GET("/rentals", c.Rental.List)
	auth.POST("/rentals", c.Rental.Create)
	auth.GET("/rentals/:id", c.Rental.Detail)
	auth.POST("/rentals/:id/finish", c.Rental.Finish)

	// Reports
	auth.GET("/reports/overview", c.Report.Overview)
	auth.GET("/reports/financial", c.Report.Financial)
	auth.GET("/reports/bikes", c.Report.Bikes)
	auth.GET("/reports/customers", c.Report.Customers)
}
