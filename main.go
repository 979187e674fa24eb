package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"task-quest-system/handlers"
	"task-quest-system/middleware"
	"task-quest-system/models"
	"task-quest-system/services"
	"task-quest-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // icon uploads only
	})

	// 🔐 GLOBAL: only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowedOriginsList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Telegram-User-ID, X-Telegram-Username, X-Telegram-First-Name, X-Telegram-Last-Name",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.UserTask{},
		&models.TaskCompletion{},
		&models.Achievement{},
		&models.UserAchievement{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := services.SeedAchievements(db); err != nil {
		log.Fatal("failed to seed achievements:", err)
	}

	userService := services.NewUserService(db)
	catalogService := services.NewTaskCatalogService(db)
	achievementService := services.NewAchievementService(db)
	completionService := services.NewCompletionService(db, achievementService)
	userTaskService := services.NewUserTaskService(db)
	statsService := services.NewStatsService(db, completionService)

	// Boot-time batch refresh; idempotent thanks to the window markers.
	if err := catalogService.GenerateAll(time.Now()); err != nil {
		log.Fatal("initial task generation failed:", err)
	}
	catalogService.StartRegenerationScheduler()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "timestamp": time.Now().UTC()})
	})

	handlers.SetupTaskRoutes(app, userService, catalogService, completionService)
	handlers.SetupUserTaskRoutes(app, userService, userTaskService, completionService)
	handlers.SetupAchievementRoutes(app, userService, achievementService)
	handlers.SetupProfileRoutes(app, userService, statsService)
	handlers.SetupAdminRoutes(app, db, catalogService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Task regeneration scheduler running (midnight)")
	log.Println("✅ GatewayAuthMiddleware enforced globally")

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
