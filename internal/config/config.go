package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	LogLevel    string
	ListenAddr  string
	DBType      string // file | postgres
	DBDSN       string
	DataDir     string
	UploadDir   string
	CORSOrigins []string

	AuthUsername string
	AuthPassword string
	JWTSecret    string
	TokenTTL     time.Duration

	OpenAIAPIKey string
	WeatherURL   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:          getEnv("APP_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		ListenAddr:   getEnv("LISTEN_ADDR", ":8000"),
		DBType:       getEnv("STORAGE_BACKEND", "file"),
		DBDSN:        getEnv("POSTGRES_DSN", ""),
		DataDir:      getEnv("DATA_DIR", "data"),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8000")),
		AuthUsername: getEnv("AUTH_USERNAME", ""),
		AuthPassword: getEnv("AUTH_PASSWORD", ""),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		TokenTTL:     getDurationHours("TOKEN_TTL_HOURS", 7*24),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		WeatherURL:   getEnv("WEATHER_URL", ""),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBType != "file" && c.DBType != "postgres" {
		return errors.New("STORAGE_BACKEND must be one of: file, postgres")
	}
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && c.DataDir == "" {
		return errors.New("DATA_DIR is required when STORAGE_BACKEND=file")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.AuthUsername == "" || c.AuthPassword == "" {
		return errors.New("AUTH_USERNAME and AUTH_PASSWORD are required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationHours(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Hour
		}
	}
	return time.Duration(fallback) * time.Hour
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
