package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"food-share-system/handlers"
	"food-share-system/middleware"
	"food-share-system/models"
	"food-share-system/services"
	"food-share-system/utils"
	"food-share-system/workers"

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
		BodyLimit: 20 * 1024 * 1024, // donation photos
	})

	// Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("⚠️  ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Roles",
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
		&models.Donation{},
		&models.Request{},
		&models.UserPoints{},
		&models.PointsHistory{},
		&models.Badge{},
		&models.UserBadge{},
		&models.SmsRequest{},
		&models.Tracking{},
		&models.FreshnessRating{},
		&models.DistributionProof{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	cfg := services.DefaultConfig
	cfg.StrictTransitions = strings.EqualFold(os.Getenv("STRICT_TRANSITIONS"), "true")

	gamificationService := services.NewGamificationService(db, cfg)
	donationService := services.NewDonationService(db, gamificationService, cfg)
	requestService := services.NewRequestService(db, gamificationService, cfg)
	userService := services.NewUserService(db)
	freshnessService := services.NewFreshnessService(db)
	trackingService := services.NewTrackingService(db)
	smsService := services.NewSmsService(db, requestService)
	distributionService := services.NewDistributionService(db)

	if err := gamificationService.SeedBadges(); err != nil {
		log.Fatal("failed to seed badge catalog:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	donationService.StartExpiryScheduler(1 * time.Minute)

	smsWorker := workers.NewSmsIntakeWorker(smsService, 1*time.Minute)
	smsWorker.Start(ctx)

	handlers.SetupDonationRoutes(app, donationService)
	handlers.SetupRequestRoutes(app, requestService)
	handlers.SetupGamificationRoutes(app, gamificationService)
	handlers.SetupCommunityRoutes(app, freshnessService, trackingService, smsService, userService, distributionService)

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":5300"
	}

	go func() {
		if err := app.Listen(listenAddr); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on %s", listenAddr)
	log.Println("✅ Expiry sweep scheduled (every 1m)")
	log.Println("✅ SMS intake worker running (every 1m)")
	log.Println("✅ GatewayAuthMiddleware enforced globally")

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
