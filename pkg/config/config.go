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
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Redis    RedisConfig
	Content  ContentConfig
	Session  SessionConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type AdminConfig struct {
	Username     string
	PasswordHash string
}

type RedisConfig struct {
	Enabled       bool
	RedisUsername string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type ContentConfig struct {
	CatalogPath    string
	Epsilon        float64
	MinImpressions int64
	// AES key for conversion tokens, 16/24/32 bytes
	TokenKey string
}

type SessionConfig struct {
	TTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	epsilon, err := strconv.ParseFloat(getEnv("CONTENT_EPSILON", "0.10"), 64)
	if err != nil || epsilon < 0 || epsilon > 1 {
		return nil, errors.New("invalid content epsilon")
	}

	minImpressions, err := strconv.ParseInt(getEnv("CONTENT_MIN_IMPRESSIONS", "10"), 10, 64)
	if err != nil || minImpressions < 0 {
		return nil, errors.New("invalid content min impressions")
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "30m"))
	if err != nil {
		return nil, errors.New("invalid session ttl")
	}

	jwtTTL, err := time.ParseDuration(getEnv("JWT_TTL", "12h"))
	if err != nil {
		return nil, errors.New("invalid jwt ttl")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "AI Automate API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8080")),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "ai_automate"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
			TTL:       jwtTTL,
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Redis: RedisConfig{
			Enabled:       getEnv("REDIS_ENABLED", "false") == "true",
			RedisUsername: getEnv("REDIS_USERNAME", "default"),
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Content: ContentConfig{
			CatalogPath:    getEnv("CONTENT_CATALOG_PATH", ""),
			Epsilon:        epsilon,
			MinImpressions: minImpressions,
			TokenKey:       getEnv("CONTENT_TOKEN_KEY", ""),
		},
		Session: SessionConfig{
			TTL: sessionTTL,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if n := len(cfg.Content.TokenKey); n != 16 && n != 24 && n != 32 {
		return nil, errors.New("content token key must be 16, 24 or 32 bytes")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
