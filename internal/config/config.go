// Package config loads application configuration from environment variables.
// A .env file is honored when present so the bot can run from a plain checkout
// the same way the legacy deployment did.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. Absent variables fall back to the documented defaults;
// only the Telegram token has no default and is enforced by cmd/bot.
type Config struct {
	BotToken   string // TELEGRAM_BOT_TOKEN — Telegram Bot API token
	BotName    string // BOT_NAME — display name used in greetings
	BotVersion string // BOT_VERSION — version string shown at startup

	DBHost string // DB_HOST — billing database host
	DBPort string // DB_PORT — billing database port
	DBName string // DB_NAME — billing database schema
	DBUser string // DB_USER — billing database user
	DBPass string // DB_PASSWORD — billing database password (empty allowed)

	SessionTimeout int // SESSION_TIMEOUT — chat session lifetime in seconds

	Port            string // APP_PORT — HTTP port for the reporting API
	JWTSecret       string // JWT_SECRET — enables token minting on login when set
	APIAuthRequired bool   // API_AUTH_REQUIRED — report actions demand a bearer token

	LogLevel string // LOG_LEVEL — debug|info|warn|error
	LogFile  string // LOG_FILE — enables a rotating file sink when set
}

// Load reads the environment (and .env, if one exists) into a Config.
func Load() Config {
	// Missing .env is fine; env vars may come from the process environment.
	_ = godotenv.Load()

	return Config{
		BotToken:        os.Getenv("TELEGRAM_BOT_TOKEN"),
		BotName:         getenv("BOT_NAME", "Phoenix PBX Bot"),
		BotVersion:      getenv("BOT_VERSION", "1.0.0"),
		DBHost:          getenv("DB_HOST", "127.0.0.1"),
		DBPort:          getenv("DB_PORT", "3306"),
		DBName:          getenv("DB_NAME", "mbilling"),
		DBUser:          getenv("DB_USER", "mbillingUser"),
		DBPass:          os.Getenv("DB_PASSWORD"),
		SessionTimeout:  envInt("SESSION_TIMEOUT", 3600),
		Port:            getenv("APP_PORT", "8080"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		APIAuthRequired: envBool("API_AUTH_REQUIRED", false),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFile:         os.Getenv("LOG_FILE"),
	}
}

// getenv returns the value of key or def when unset/empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt parses key as an integer, falling back to def on absence or garbage.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

// envBool parses key as a boolean, falling back to def on absence or garbage.
func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}
