package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// JWT
	JWTSecret    string
	JWTExpiresIn string

	// Session
	SessionSecret string

	// Security
	CookieSecure string

	// Allowed Origins
	AllowedOrigins string

	// Firebase
	FirebaseProjectID            string
	GoogleApplicationCredentials string
	FirebaseAPIKey               string
	UsersDatabaseID              string
	AdminDatabaseID              string

	// GCP Storage
	GCPBucketName string

	// Demo store
	DemoDBDriver string
	DatabaseURL  string
	DemoSeed     string

	// Session resolution
	AdminEntryPath string
	StaffEntryPath string
	LookupTimeout  time.Duration

	// Geocoding
	GeocoderURL       string
	GeocoderUserAgent string

	// RabbitMQ
	RabbitMQURL string

	// reCAPTCHA
	RecaptchaProjectID string
	RecaptchaSiteKey   string
	RecaptchaMinScore  float64
}

var AppConfig *Config

// LoadConfig loads environment variables into Config struct
func LoadConfig() {
	// Load .env file if it exists (optional in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:                         getEnv("PORT", "5500"),
		Environment:                  getEnv("APP_ENV", "development"),
		LogLevel:                     getEnv("LOG_LEVEL", "info"),
		JWTSecret:                    getEnv("JWT_SECRET", ""),
		JWTExpiresIn:                 getEnv("JWT_EXPIRES_IN", "7d"),
		SessionSecret:                getEnv("SESSION_SECRET", ""),
		CookieSecure:                 getEnv("COOKIE_SECURE", "false"),
		AllowedOrigins:               getEnv("ALLOWED_ORIGINS", ""),
		FirebaseProjectID:            getEnv("FIREBASE_PROJECT_ID", ""),
		GoogleApplicationCredentials: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		FirebaseAPIKey:               getEnv("FIREBASE_API_KEY", ""),
		UsersDatabaseID:              getEnv("USERS_DATABASE_ID", "logincloud"),
		AdminDatabaseID:              getEnv("ADMIN_DATABASE_ID", "ghkm"),
		GCPBucketName:                getEnv("GCP_BUCKET_NAME", ""),
		DemoDBDriver:                 getEnv("DEMO_DB_DRIVER", "sqlite"),
		DatabaseURL:                  getEnv("DATABASE_URL", "foodtook_demo.db"),
		DemoSeed:                     getEnv("DEMO_SEED", "true"),
		AdminEntryPath:               getEnv("ADMIN_ENTRY_PATH", "/admin"),
		StaffEntryPath:               getEnv("STAFF_ENTRY_PATH", "/staff"),
		LookupTimeout:                getEnvAsDuration("LOOKUP_TIMEOUT", 8*time.Second),
		GeocoderURL:                  getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent:            getEnv("GEOCODER_USER_AGENT", "foodtook-backoffice/1.0"),
		RabbitMQURL:                  getEnv("RABBITMQ_URL", ""),
		RecaptchaProjectID:           getEnv("RECAPTCHA_PROJECT_ID", ""),
		RecaptchaSiteKey:             getEnv("RECAPTCHA_SITE_KEY", ""),
		RecaptchaMinScore:            getEnvAsFloat("RECAPTCHA_MIN_SCORE", 0.5),
	}

	// Validate required config
	if AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if AppConfig.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}

	log.Println("✅ Configuration loaded successfully")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

// IsProduction returns true if running in production mode
func IsProduction() bool {
	return AppConfig.Environment == "production"
}

// IsDevelopment returns true if running in development mode
func IsDevelopment() bool {
	return AppConfig.Environment == "development" || AppConfig.Environment == ""
}

// DemoSeedEnabled reports whether the demo store is filled with mock data on startup
func DemoSeedEnabled() bool {
	return AppConfig.DemoSeed == "true"
}

// JWTDuration parses JWT_EXPIRES_IN ("7d", "1d", "30m" or any time.ParseDuration value)
func JWTDuration() time.Duration {
	switch AppConfig.JWTExpiresIn {
	case "7d":
		return 7 * 24 * time.Hour
	case "1d":
		return 24 * time.Hour
	case "30m":
		return 30 * time.Minute
	}
	if d, err := time.ParseDuration(AppConfig.JWTExpiresIn); err == nil {
		return d
	}
	return 7 * 24 * time.Hour
}
