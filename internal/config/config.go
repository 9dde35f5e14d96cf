package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port        string
	CORSOrigins string

	// Persistence backend: "leancloud" (hosted document store) or "postgres".
	StoreBackend string

	// Hosted document store credentials
	LCAppID     string
	LCAppKey    string
	LCServerURL string

	// Database (postgres backend only)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Admin gate. Password is compared in plaintext unless a bcrypt hash is
	// configured. AdminToken allows header-based access for scripts.
	AdminPassword     string
	AdminPasswordHash string
	AdminToken        string

	// JWT for admin sessions. Zero TTL means tokens never expire.
	JWTSecret       string
	AdminSessionTTL time.Duration

	// Logging
	LogRetentionDays int
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		StoreBackend: getEnv("STORE_BACKEND", "leancloud"),

		LCAppID:     getEnv("LC_APP_ID", ""),
		LCAppKey:    getEnv("LC_APP_KEY", ""),
		LCServerURL: getEnv("LC_SERVER_URL", ""),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "canteen_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminToken:        getEnv("ADMIN_TOKEN", ""),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		AdminSessionTTL: parseDuration(getEnv("ADMIN_SESSION_TTL", "0")),

		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30")),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	if s == "0" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 30
	}
	return n
}
