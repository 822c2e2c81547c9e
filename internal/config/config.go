package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	JWTSecret                 string
	JWTRefreshSecret          string
	Database                  DatabaseConfig
	SMS                       SMSConfig
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// SMSConfig holds SMS gateway configuration
type SMSConfig struct {
	Provider     string
	WebhookURL   string
	WebhookToken string
	SendDelay    time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinic"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	// Load SMS gateway configuration. The default provider is the
	// logging stub; a real deployment points "webhook" at its relay.
	smsDelayMs, err := strconv.Atoi(getEnv("SMS_SEND_DELAY_MS", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMS_SEND_DELAY_MS: %w", err)
	}
	smsConfig := SMSConfig{
		Provider:     getEnv("SMS_PROVIDER", "log"),
		WebhookURL:   getEnv("SMS_WEBHOOK_URL", ""),
		WebhookToken: getEnv("SMS_WEBHOOK_TOKEN", ""),
		SendDelay:    time.Duration(smsDelayMs) * time.Millisecond,
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:                      getEnv("PORT", "3001"),
		Origin:                    getEnv("ORIGIN", "http://localhost:5173"),
		Environment:               getEnv("APP_ENV", "development"),
		JWTSecret:                 getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		Database:                  dbConfig,
		SMS:                       smsConfig,
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
