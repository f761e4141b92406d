// Package main library rental API.
//
// @title           Library Rental API
// @version         1.0
// @description     library rental service (catalog, memberships, rentals).
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

	"librental/app/echoServer"
	authctrl "librental/app/echoServer/controller/auth"
	bookctrl "librental/app/echoServer/controller/book"
	membershipctrl "librental/app/echoServer/controller/membership"
	rentalctrl "librental/app/echoServer/controller/rental"
	"librental/app/echoServer/validation"
	"librental/config"
	bookrepo "librental/repository/book"
	paymentrepo "librental/repository/payment"
	rentalrepo "librental/repository/rental"
	userrepo "librental/repository/user"
	authsvc "librental/service/auth"
	booksvc "librental/service/book"
	membershipsvc "librental/service/membership"
	rentalsvc "librental/service/rental"
	"librental/util/database"
	"librental/util/media"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// media store for covers and pdfs
	mediaStore, err := media.NewStore(cfg.MediaDir)
	if err != nil {
		log.Error("media dir setup failed", "err", err)
		os.Exit(1)
	}

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	rr := rentalrepo.New(db)
	pr := paymentrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret, authsvc.AdminCreds{
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
	})
	bs := booksvc.New(br)
	ms := membershipsvc.New(pr, cfg.MembershipLookbackDays)
	rs := rentalsvc.New(br, ur, rr, ms, &rentalsvc.SQLStore{DB: db, Books: br, Rentals: rr})

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, Rentals: rs, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, Media: mediaStore, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, Log: log}
	membershipC := &membershipctrl.Controller{Svc: ms, V: v, Log: log}

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

	// uploaded covers and pdfs
	e.Static("/media", cfg.MediaDir)

	echoServer.Register(e, echoServer.C{
		Auth:       authC,
		Book:       bookC,
		Rental:     rentalC,
		Membership: membershipC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
