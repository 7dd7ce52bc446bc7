package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-estoque-api/internal/handler"
	"go-estoque-api/internal/middleware"
	"go-estoque-api/internal/model"
	"go-estoque-api/internal/repository"
	"go-estoque-api/internal/service"
	"go-estoque-api/internal/ws"
	"go-estoque-api/pkg/database"
	"go-estoque-api/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env. A missing .env is fine in containers where the
	// orchestrator injects the environment.
	_ = godotenv.Load()

	log := logger.New(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool before relying on this in production)
	if err := db.AutoMigrate(&model.Product{}, &model.StockMovement{}, &model.HistoryEntry{}, &model.User{}); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}
	log.Info().Msg("database connection established")

	// 3. Seed default admin user
	seedAdmin(db, log)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	movementRepo := repository.NewMovementRepo(db)
	historyRepo := repository.NewHistoryRepo(db)
	userRepo := repository.NewUserRepo(db)

	stockService := service.NewStockService(productRepo, movementRepo, historyRepo, db, wsHub, log)
	reportService := service.NewReportService(productRepo, movementRepo, historyRepo)
	authService := service.NewAuthService(userRepo)

	stockHandler := handler.NewStockHandler(stockService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Estoque API v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Request logging
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// Public auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// Everything below requires an authenticated caller
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Mutation engine
	protected.Post("/products", stockHandler.CreateProduct)
	protected.Post("/stock/adjust", stockHandler.AdjustStock)

	// Derived read views
	protected.Get("/products", reportHandler.GetProducts)
	protected.Get("/products/stats", reportHandler.GetProductStats)
	protected.Get("/movements", reportHandler.GetMovements)
	protected.Get("/history", reportHandler.GetHistory)
	protected.Get("/history/export", reportHandler.ExportHistory)
	protected.Get("/dashboard/stock-movement", reportHandler.GetDailyFlow)

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
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
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

	log.Info().Msg("server exited")
}

// seedAdmin creates a default admin account on an empty user table so the API
// is usable right after the first boot.
func seedAdmin(db *gorm.DB, log zerolog.Logger) {
	userRepo := repository.NewUserRepo(db)

	count, err := userRepo.Count()
	if err != nil {
		log.Warn().Err(err).Msg("failed to count users, skipping admin seed")
		return
	}
	if count > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.User{
		Email:    email,
		FullName: "Administrator",
		IsActive: true,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Warn().Err(err).Msg("failed to hash admin password")
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Warn().Err(err).Msg("failed to create admin user")
		return
	}
	log.Info().Str("email", email).Msg("admin user created")
}
