package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Store    StoreConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	RealtimeLogPath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
	LogQueries bool
}

type AuthConfig struct {
	JwtSecret string
}

type StoreConfig struct {
	SessionTTL     time.Duration // how long an idle user's state stays resident
	PurgeInterval  time.Duration
	PersistTopic   string // watermill topic for document store writes
	StrictDelete   bool   // DELETE_NOTE clears the editable note only on id match
	RequireLabels  bool   // ADD_NOTE_LABEL must reference an existing label
	EventsEnabled  bool
	RealtimeEnable bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			RealtimeLogPath:    getEnv("REALTIME_LOG_FILE_PATH", "logs/realtime.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			LogQueries: getEnvAsBool("DB_LOG_QUERIES", false),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Store: StoreConfig{
			SessionTTL:     getEnvAsDuration("STORE_SESSION_TTL", time.Hour),
			PurgeInterval:  getEnvAsDuration("STORE_PURGE_INTERVAL", 10*time.Minute),
			PersistTopic:   getEnv("STORE_PERSIST_TOPIC", "PERSIST_NOTE_ACTION"),
			StrictDelete:   getEnvAsBool("STORE_STRICT_DELETE", false),
			RequireLabels:  getEnvAsBool("STORE_REQUIRE_KNOWN_LABELS", false),
			EventsEnabled:  getEnvAsBool("STORE_EVENTS_ENABLED", true),
			RealtimeEnable: getEnvAsBool("STORE_REALTIME_ENABLED", true),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
