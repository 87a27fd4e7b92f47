package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting, loaded once at startup.
type Config struct {
	Port        string
	OriginURL   string
	MongoURI    string
	MongoDBName string

	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration
	TempTokenExpiry    time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	LogFilePath       string
	BlackListFilePath string
	UploadDir         string
}

// Load reads .env (if present) and the process environment. Secrets and the
// database URI are mandatory; everything else has a default.
func Load() (*Config, error) {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load(".env")

	cfg := &Config{
		Port:               getEnv("PORT", "5000"),
		OriginURL:          getEnv("ORIGIN_URL", "http://localhost:5000"),
		MongoURI:           os.Getenv("MONGO_URI"),
		MongoDBName:        getEnv("MONGO_DB_NAME", "project_management"),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		SMTPUsername:       os.Getenv("SMTP_USERNAME"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:           getEnv("SMTP_FROM", os.Getenv("SMTP_USERNAME")),
		LogFilePath:        getEnv("LOG_FILE_PATH", "logs/backend.log"),
		BlackListFilePath:  getEnv("BLACKLIST_FILE_PATH", "blacklist.txt"),
		UploadDir:          getEnv("UPLOAD_DIR", "public/images"),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is not set")
	}
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET or REFRESH_TOKEN_SECRET is not set")
	}

	var err error
	if cfg.AccessTokenExpiry, err = parseDuration("ACCESS_TOKEN_EXPIRY", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenExpiry, err = parseDuration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.TempTokenExpiry, err = parseDuration("TEMP_TOKEN_EXPIRY", 20*time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration: %v", key, err)
	}
	return d, nil
}
