package main

import (
	"context"
	"log"

	"MediaStoreAPI/external/pesapal"

	"MediaStoreAPI/internal/config"
	"MediaStoreAPI/internal/db"
	"MediaStoreAPI/internal/repository"
	"MediaStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(context.Background(), cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// ======================
	// EXTERNALS
	// ======================
	gateway, err := pesapal.NewClient(
		cfg.Pesapal.BaseURL,
		cfg.Pesapal.ConsumerKey,
		cfg.Pesapal.ConsumerSecret,
	)
	if err != nil {
		log.Fatal(err)
	}

	// ======================
	// REPOSITORIES
	// ======================
	authRepo := repository.NewAuthRepository(pool)
	albumRepo := repository.NewAlbumRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	configRepo := repository.NewConfigRepository(pool)
	ownedRepo := repository.NewCustomerAlbumsRepository(pool)

	// ======================
	// SERVICES
	// ======================
	authSvc := services.NewAuthService(authRepo)
	albumSvc := services.NewAlbumService(albumRepo)
	orderSvc := services.NewOrderService(albumRepo, orderRepo, configRepo, gateway)
	paymentSvc := services.NewPaymentService(orderRepo, paymentRepo, ownedRepo, configRepo, gateway, cfg.Pesapal.IPNURL)
	librarySvc := services.NewLibraryService(ownedRepo, albumRepo)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/media-store")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc)
	registerAlbumRoutes(api, albumSvc)
	registerOrderRoutes(api, orderSvc)
	registerPaymentRoutes(api, paymentSvc)
	registerLibraryRoutes(api, librarySvc)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(cfg.Server.Addr))
}
