package main

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"clinic-management-server/internal/config"
	"clinic-management-server/internal/logger"
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/notify"
	"clinic-management-server/internal/routes"
	"clinic-management-server/internal/sms"
)

func main() {
	// Load environment variables; a missing .env just means the
	// environment is configured externally.
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment as-is")
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	logger.Init("clinic-management-server", cfg.Environment)

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// Install the default SMS templates on first run
	if err := models.SeedTemplates(db); err != nil {
		log.Fatal().Err(err).Msg("Error seeding SMS templates")
	}

	// Wire the notification pipeline
	gateway := sms.NewGateway(sms.GatewayConfig{
		Provider:     cfg.SMS.Provider,
		WebhookURL:   cfg.SMS.WebhookURL,
		WebhookToken: cfg.SMS.WebhookToken,
		SendDelay:    cfg.SMS.SendDelay,
	})
	notifier := notify.New(db, gateway)

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes
	routes.SetupRoutes(router, db, cfg, notifier)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	log.Info().Str("port", cfg.Port).Msg("Server starting")
	if err := router.Run(serverAddr); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
