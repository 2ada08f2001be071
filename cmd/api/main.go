package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"plateguard-backend/internal/handler"
	"plateguard-backend/internal/middleware"
	"plateguard-backend/internal/model"
	"plateguard-backend/internal/repository"
	"plateguard-backend/internal/seed"
	"plateguard-backend/internal/service"
	"plateguard-backend/internal/ws"
	"plateguard-backend/pkg/config"
	"plateguard-backend/pkg/database"
	applog "plateguard-backend/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on environment")
	}
	cfg := config.Load()
	applog.New(cfg.App.Env, cfg.App.LogLevel)

	// 2. Setup Database
	db := database.ConnectDB(cfg.DB)
	db.AutoMigrate(&model.User{}, &model.Category{}, &model.InventoryItem{}, &model.WasteRecord{})

	// 3. Seed default categories and admin account
	if err := seed.Baseline(db); err != nil {
		log.Fatal().Err(err).Msg("baseline seeding failed")
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	thresholds := model.StockThresholds{
		LowStock:      cfg.Stock.LowStockThreshold,
		ExpiryHorizon: time.Duration(cfg.Stock.ExpiryHorizonDays) * 24 * time.Hour,
	}

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	itemRepo := repository.NewItemRepo(db)
	wasteRepo := repository.NewWasteRepo(db)

	authService := service.NewAuthService(userRepo, cfg.Session)
	invService := service.NewInventoryService(db, itemRepo, categoryRepo, userRepo, wasteRepo, thresholds, wsHub)
	reportService := service.NewReportService(itemRepo, wasteRepo, thresholds)
	userService := service.NewUserService(userRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.Session)
	invHandler := handler.NewInventoryHandler(invService)
	wasteHandler := handler.NewWasteHandler(invService)
	reportHandler := handler.NewReportHandler(reportService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryRepo)
	demoHandler := handler.NewDemoHandler(db)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
				return c.Status(code).JSON(fiber.Map{"error": "Internal server error"})
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	// Middleware
	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CORSOrigins,
		AllowCredentials: true,
	}))

	// 7. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/signin", authHandler.SignIn)
	auth.Post("/test-account", authHandler.CreateTestAccount)
	auth.Post("/logout", authHandler.Logout)

	api.Post("/demo/setup", demoHandler.Setup)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireSession(cfg.Session, userRepo))

	protected.Get("/auth/me", authHandler.Me)

	protected.Get("/inventory", invHandler.GetItems)
	protected.Post("/inventory", invHandler.CreateItem)
	protected.Get("/inventory/:id", invHandler.GetItem)
	protected.Put("/inventory/:id", invHandler.UpdateItem)
	protected.Delete("/inventory/:id", invHandler.DeleteItem)
	protected.Post("/inventory/:id/waste", invHandler.MarkAsWaste)

	protected.Get("/waste", wasteHandler.GetWasteRecords)
	protected.Post("/waste", wasteHandler.CreateWasteRecord)
	protected.Delete("/waste/:id", middleware.RequireRole(model.RoleAdmin), wasteHandler.DeleteWasteRecord)

	protected.Get("/reports", reportHandler.GetWasteReport)
	protected.Get("/dashboard", reportHandler.GetDashboard)

	protected.Get("/categories", categoryHandler.GetCategories)
	protected.Post("/categories", categoryHandler.CreateCategory)
	protected.Put("/categories/:id", categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", categoryHandler.DeleteCategory)

	protected.Get("/users", userHandler.GetUsers)
	protected.Delete("/users/:id", middleware.RequireRole(model.RoleAdmin), userHandler.DeleteUser)
	protected.Post("/settings", userHandler.SaveSettings)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
}
