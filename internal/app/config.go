package app

import (
	"strings"
	"time"

	"github.com/yungbote/photoshare-backend/internal/data/db"
	"github.com/yungbote/photoshare-backend/internal/http/middleware"
	"github.com/yungbote/photoshare-backend/internal/observability"
	"github.com/yungbote/photoshare-backend/internal/platform/envutil"
	"github.com/yungbote/photoshare-backend/internal/platform/gcp"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Port string

	DBDriver   string
	SQLitePath string
	Postgres   db.PostgresConfig

	SessionSecret      string
	SessionTTL         time.Duration
	SessionStore       string
	SessionCookieName  string
	SecureCookie       bool
	RedisAddr          string
	RedisSessionPrefix string
	CredentialMode     string

	PhotoStorage gcp.PhotoStorageConfig

	AllowedOrigins []string
	Otel           observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	sessionTTLSeconds := envutil.GetEnvAsInt("SESSION_TTL", 86400, log)
	if sessionTTLSeconds < 0 {
		sessionTTLSeconds = 0
	}
	return Config{
		Port: envutil.GetEnv("PORT", "3001", log),

		DBDriver:   strings.ToLower(envutil.GetEnv("DB_DRIVER", DBDriverSQLite, log)),
		SQLitePath: envutil.GetEnv("SQLITE_PATH", "photoshare.db", log),
		Postgres: db.PostgresConfig{
			Host:     envutil.GetEnv("POSTGRES_HOST", "localhost", log),
			Port:     envutil.GetEnv("POSTGRES_PORT", "5432", log),
			User:     envutil.GetEnv("POSTGRES_USER", "postgres", log),
			Password: envutil.GetEnv("POSTGRES_PASSWORD", "", log),
			Name:     envutil.GetEnv("POSTGRES_NAME", "photoshare", log),
		},

		SessionSecret:      envutil.GetEnv("SESSION_SECRET", "defaultsecret", log),
		SessionTTL:         time.Duration(sessionTTLSeconds) * time.Second,
		SessionStore:       strings.ToLower(envutil.GetEnv("SESSION_STORE", SessionStoreMemory, log)),
		SessionCookieName:  envutil.GetEnv("SESSION_COOKIE_NAME", "photoshare_session", log),
		SecureCookie:       envutil.GetEnvAsBool("SESSION_COOKIE_SECURE", false, log),
		RedisAddr:          envutil.GetEnv("REDIS_ADDR", "", log),
		RedisSessionPrefix: envutil.GetEnv("REDIS_SESSION_PREFIX", "photoshare:session", log),
		CredentialMode:     envutil.GetEnv("CREDENTIAL_MODE", "plaintext", log),

		PhotoStorage: gcp.PhotoStorageConfig{
			Mode:          gcp.PhotoStorageMode(envutil.GetEnv("PHOTO_STORAGE_MODE", string(gcp.PhotoStorageModeLocal), log)),
			Dir:           envutil.GetEnv("PHOTO_DIR", "images", log),
			BucketName:    envutil.GetEnv("PHOTO_GCS_BUCKET_NAME", "", log),
			EmulatorHost:  envutil.GetEnv("STORAGE_EMULATOR_HOST", "", log),
			PublicBaseURL: envutil.GetEnv("PHOTO_PUBLIC_BASE_URL", "", log),
		},

		AllowedOrigins: envutil.GetEnvAsList("CORS_ALLOWED_ORIGINS", middleware.DefaultAllowedOrigins, log),
		Otel: observability.OtelConfig{
			Enabled:     envutil.GetEnvAsBool("OTEL_ENABLED", false, log),
			ServiceName: envutil.GetEnv("OTEL_SERVICE_NAME", "photoshare", log),
			Environment: envutil.GetEnv("APP_ENV", "development", log),
			Version:     envutil.GetEnv("APP_VERSION", "dev", log),
			Endpoint:    envutil.GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     envutil.GetEnv("OTEL_EXPORTER_OTLP_HEADERS", "", log),
			Insecure:    envutil.GetEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true, log),
			SampleRatio: envutil.GetEnvAsFloat("OTEL_SAMPLER_RATIO", 1, log),
		},
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	port := strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	if port == "" {
		port = "3001"
	}
	return ":" + port
}
