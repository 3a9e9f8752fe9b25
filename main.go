// Package main percini moto manager API.
//
// @title           Percini Moto Manager API
// @version         1.0
// @description     Motorcycle rental management (rentals, bikes, reports, operators).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Montardi/percini-moto-manager/app/echoServer"
	authctrl "github.com/Montardi/percini-moto-manager/app/echoServer/controller/auth"
	bikectrl "github.com/Montardi/percini-moto-manager/app/echoServer/controller/bike"
	rentalctrl "github.com/Montardi/percini-moto-manager/app/echoServer/controller/rental"
	reportctrl "github.com/Montardi/percini-moto-manager/app/echoServer/controller/report"
	"github.com/Montardi/percini-moto-manager/app/echoServer/validation"
	"github.com/Montardi/percini-moto-manager/config"
	authrepo "github.com/Montardi/percini-moto-manager/repository/auth"
	bikerepo "github.com/Montardi/percini-moto-manager/repository/bike"
	rentalrepo "github.com/Montardi/percini-moto-manager/repository/rental"
	reportrepo "github.com/Montardi/percini-moto-manager/repository/report"
	authsvc "github.com/Montardi/percini-moto-manager/service/auth"
	bikesvc "github.com/Montardi/percini-moto-manager/service/bike"
	rentalsvc "github.com/Montardi/percini-moto-manager/service/rental"
	reportsvc "github.com/Montardi/percini-moto-manager/service/report"
	"github.com/Montardi/percini-moto-manager/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB over pgx
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// redis is optional; reports fall back to direct queries without it
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, report cache disabled", "err", err)
			rdb = nil
		}
	}

	// repos
	ar := authrepo.New(db)
	br := bikerepo.New(db)
	rr := rentalrepo.New(db)
	pr := reportrepo.New(db)

	// services
	as := authsvc.New(ar, cfg.JWTSecret)
	bs := bikesvc.New(br)
	rs := rentalsvc.New(db, rr, br)
	ps := reportsvc.New(pr, rs, rdb)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bikeC := &bikectrl.Controller{Svc: bs, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}
	reportC := &reportctrl.Controller{Svc: ps, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:   authC,
		Bike:   bikeC,
		Rental: rentalC,
		Report: reportC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
