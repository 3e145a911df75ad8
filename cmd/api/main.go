package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bakehouse-commerce/storefront-api/internal/config"
	"github.com/bakehouse-commerce/storefront-api/internal/database"
	"github.com/bakehouse-commerce/storefront-api/internal/domain"
	"github.com/bakehouse-commerce/storefront-api/internal/handlers"
	"github.com/bakehouse-commerce/storefront-api/internal/httpx"
	"github.com/bakehouse-commerce/storefront-api/internal/messaging"
	"github.com/bakehouse-commerce/storefront-api/internal/middleware"
	"github.com/bakehouse-commerce/storefront-api/internal/repository"
	"github.com/bakehouse-commerce/storefront-api/internal/service"
	"github.com/bakehouse-commerce/storefront-api/internal/validation"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connect error: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migrate error: %v", err)
	}

	// Event publishing is optional. Without a broker URL the service runs
	// standalone and order operations skip publication.
	var publisher service.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient := messaging.NewClient(cfg.RabbitMQURL, cfg.OrderExchange)
		if err := mqClient.Connect(); err != nil {
			log.Fatalf("rabbitmq connect error: %v", err)
		}
		defer mqClient.Close()
		publisher = messaging.NewPublisher(mqClient)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	bannerRepo := repository.NewBannerRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	addressService := service.NewAddressService(addressRepo)
	bannerService := service.NewBannerService(bannerRepo, productRepo)

	orderService := service.NewOrderService(orderRepo, productRepo, addressRepo, publisher, cfg.DefaultShippingCents)

	validate := validation.New()

	authHandler := handlers.NewAuthHandler(authService, validate)
	categoryHandler := handlers.NewCategoryHandler(categoryService, validate)
	productHandler := handlers.NewProductHandler(productService, validate)
	addressHandler := handlers.NewAddressHandler(addressService, validate)
	orderHandler := handlers.NewOrderHandler(orderService, validate)
	bannerHandler := handlers.NewBannerHandler(bannerService, validate)

	app := fiber.New(fiber.Config{
		AppName:      "storefront-api",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(middleware.Metrics())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "service": "storefront-api"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Get("/me", middleware.RequireAuth(cfg.JWTAccessSecret), authHandler.Me)

	api.Get("/categories", categoryHandler.List)
	api.Get("/products", productHandler.List)
	api.Get("/products/:slug", productHandler.GetBySlug)
	api.Get("/banners/active", bannerHandler.List)

	addresses := api.Group("/addresses", middleware.RequireAuth(cfg.JWTAccessSecret))
	addresses.Get("/", addressHandler.List)
	addresses.Post("/", addressHandler.Create)
	addresses.Put("/:id", addressHandler.Update)
	addresses.Delete("/:id", addressHandler.Delete)

	orders := api.Group("/orders", middleware.RequireAuth(cfg.JWTAccessSecret))
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.Get)
	orders.Get("/:id/tracking", orderHandler.Tracking)
	orders.Post("/:id/pay", orderHandler.Pay)

	admin := api.Group("/admin", middleware.RequireAuth(cfg.JWTAccessSecret), middleware.RequireAdmin())
	admin.Get("/dashboard", orderHandler.Dashboard)

	admin.Get("/orders", orderHandler.AdminList)
	admin.Get("/orders/:id", orderHandler.AdminGet)
	admin.Patch("/orders/:id/status", orderHandler.SetStatus)
	admin.Post("/orders/:id/advance", orderHandler.Advance)
	admin.Patch("/orders/:id/delivery", orderHandler.UpdateDelivery)
	admin.Patch("/orders/:id/payment", orderHandler.SetPaymentStatus)

	admin.Get("/products", productHandler.AdminList)
	admin.Get("/products/:id", productHandler.AdminGet)
	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Patch("/products/:id/active", productHandler.ToggleActive)

	admin.Get("/categories", categoryHandler.AdminList)
	admin.Post("/categories", categoryHandler.Create)
	admin.Put("/categories/:id", categoryHandler.Update)
	admin.Patch("/categories/:id/active", categoryHandler.ToggleActive)

	admin.Get("/banners", bannerHandler.AdminList)
	admin.Get("/banners/:id", bannerHandler.AdminGet)
	admin.Post("/banners", bannerHandler.Create)
	admin.Put("/banners/:id", bannerHandler.Update)
	admin.Delete("/banners/:id", bannerHandler.Delete)
	admin.Patch("/banners/:id/active", bannerHandler.ToggleActive)

	go func() {
		log.Printf("storefront api listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down storefront api")
	if err := app.Shutdown(); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
}

// errorHandler translates domain errors into the response envelope. Anything
// unrecognized becomes a 500 without leaking internals.
func errorHandler(c *fiber.Ctx, err error) error {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return httpx.Fail(c, domainErr.Status, domainErr.Message)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return httpx.Fail(c, fiberErr.Code, fiberErr.Message)
	}

	log.Printf("unhandled error: %v", err)
	return httpx.Fail(c, fiber.StatusInternalServerError, "internal server error")
}
