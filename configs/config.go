package configs

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"luax.health/configs/configslog"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting of the application.
type Config struct {
	AppEnv  string
	AppHost string
	AppPort string

	LogLevel  string
	LogFormat string

	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBTimezone     string
	DBMaxOpenConns int
	DBMaxIdleConns int
	AutoMigrate    bool

	AdminPassword     string
	SessionSecret     string
	SessionExpiration time.Duration
	CSRFEnabled       bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string
	MailTimeout  time.Duration

	ClinicProfilePath string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Debug(".env file not found, using process environment only")
	}

	return &Config{
		AppEnv:  getEnv("APP_ENV", "development"),
		AppHost: getEnv("APP_HOST", "0.0.0.0"),
		AppPort: getEnv("APP_PORT", "5000"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "luax"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		DBTimezone:     getEnv("DB_TIMEZONE", "Africa/Lusaka"),
		DBMaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
		AutoMigrate:    getBoolEnv("AUTO_MIGRATE", true),

		AdminPassword:     getEnv("ADMIN_PASSWORD", "adminpass"),
		SessionSecret:     getEnv("SESSION_SECRET", "dev-secret-change-me"),
		SessionExpiration: getDuration("SESSION_EXPIRATION", 24*time.Hour),
		CSRFEnabled:       getBoolEnv("CSRF_ENABLED", true),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		MailHost:     getEnv("MAIL_HOST", "smtp.gmail.com"),
		MailPort:     getIntEnv("MAIL_PORT", 587),
		MailUsername: getEnv("MAIL_USERNAME", ""),
		MailPassword: getEnv("MAIL_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", ""),
		MailTimeout:  getDuration("MAIL_TIMEOUT", 15*time.Second),

		ClinicProfilePath: getEnv("CLINIC_PROFILE_PATH", ""),
	}
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// ListenAddr is the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return c.AppHost + ":" + c.AppPort
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimezone,
	)
}

// MailEnabled is true when outbound SMTP credentials are configured.
func (c *Config) MailEnabled() bool {
	return c.MailHost != "" && c.MailUsername != "" && c.MailPassword != ""
}

// MailSender is the From address; defaults to the SMTP username.
func (c *Config) MailSender() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return c.MailUsername
}

// CookieEncryptionKey derives the 32-byte base64 key encryptcookie expects
// from the free-form SESSION_SECRET.
func (c *Config) CookieEncryptionKey() string {
	sum := sha256.Sum256([]byte(c.SessionSecret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
