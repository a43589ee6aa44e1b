package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL     string
	DatabaseName    string
	Port            string
	LogLevel        string
	CORSOrigins     []string
	DatabaseTimeout time.Duration
	ShutdownTimeout time.Duration
}

// LoadConfig reads the process environment, after loading a local .env
// file when one exists.
func LoadConfig() *Config {
	// .env only matters for local runs; deployments inject real env vars.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			slog.Warn("⚠️ error loading .env file", "error", err)
		} else {
			slog.Info("✅ .env file loaded")
		}
	} else {
		slog.Info("🌐 using system environment variables")
	}

	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_NAME", "catalog")
	v.SetDefault("PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DATABASE_TIMEOUT", 5*time.Second)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		DatabaseURL:     v.GetString("DATABASE_URL"),
		DatabaseName:    v.GetString("DATABASE_NAME"),
		Port:            v.GetString("PORT"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		CORSOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		DatabaseTimeout: v.GetDuration("DATABASE_TIMEOUT"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
