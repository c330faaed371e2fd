package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Config is read from the environment; a .env file is loaded first by
// godotenv/autoload.
type Config struct {
	Port         string
	GinMode      string
	DatabasePath string
	ContentPath  string
	StaticDir    string
	ImagesDir    string
	LogLevel     string
	LogFormat    string

	SMTP  SMTPConfig
	Admin AdminConfig
}

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// Configured reports whether credentials are present.
func (s SMTPConfig) Configured() bool {
	return s.User != "" && s.Pass != ""
}

type AdminConfig struct {
	Username string
	Password string
}

// LoadConfig reads the environment, falling back to development defaults.
func LoadConfig() Config {
	return Config{
		Port:         getenv("PORT", "8080"),
		GinMode:      getenv("GIN_MODE", gin.DebugMode),
		DatabasePath: getenv("DATABASE_PATH", "portfolio.db"),
		ContentPath:  os.Getenv("CONTENT_PATH"),
		StaticDir:    getenv("STATIC_DIR", "./static"),
		ImagesDir:    getenv("IMAGES_DIR", "./images"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFormat:    getenv("LOG_FORMAT", "console"),
		SMTP: SMTPConfig{
			Host: getenv("SMTP_HOST", "smtp.gmail.com"),
			Port: getenv("SMTP_PORT", "587"),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			To:   os.Getenv("TO_EMAIL"),
		},
		Admin: AdminConfig{
			Username: getenv("ADMIN_USERNAME", "admin"),
			Password: getenv("ADMIN_PASSWORD", "admin123"),
		},
	}
}

// Validate checks values that would otherwise fail later at startup.
func (c Config) Validate() error {
	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("invalid GIN_MODE %q", c.GinMode)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is empty")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
