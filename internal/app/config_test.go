package app

import (
	"strings"
	"testing"
	"time"

	"github.com/yungbote/photoshare-backend/internal/http/middleware"
	"github.com/yungbote/photoshare-backend/internal/platform/gcp"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "SESSION_TTL", "SESSION_STORE", "PHOTO_STORAGE_MODE", "CORS_ALLOWED_ORIGINS", "OTEL_ENABLED"} {
		t.Setenv(key, "")
	}
	cfg := LoadConfig(testLogger(t))

	if cfg.Addr() != ":3001" {
		t.Fatalf("addr: got=%q", cfg.Addr())
	}
	if cfg.DBDriver != DBDriverSQLite {
		t.Fatalf("db driver: got=%q", cfg.DBDriver)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("session ttl: got=%v", cfg.SessionTTL)
	}
	if cfg.SessionStore != SessionStoreMemory {
		t.Fatalf("session store: got=%q", cfg.SessionStore)
	}
	if cfg.PhotoStorage.Mode != gcp.PhotoStorageModeLocal {
		t.Fatalf("photo storage: got=%q", cfg.PhotoStorage.Mode)
	}
	if strings.Join(cfg.AllowedOrigins, ",") != strings.Join(middleware.DefaultAllowedOrigins, ",") {
		t.Fatalf("origins: got=%v", cfg.AllowedOrigins)
	}
	if cfg.Otel.Enabled {
		t.Fatalf("otel must be off by default")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", ":8080")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("SESSION_TTL", "0")
	t.Setenv("SESSION_STORE", "REDIS")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.5")

	cfg := LoadConfig(testLogger(t))

	if cfg.Addr() != ":8080" {
		t.Fatalf("addr: got=%q", cfg.Addr())
	}
	if cfg.DBDriver != DBDriverPostgres {
		t.Fatalf("db driver: got=%q", cfg.DBDriver)
	}
	if cfg.SessionTTL != 0 {
		t.Fatalf("zero ttl means sessions last until logout: got=%v", cfg.SessionTTL)
	}
	if cfg.SessionStore != SessionStoreRedis {
		t.Fatalf("session store: got=%q", cfg.SessionStore)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.test" {
		t.Fatalf("origins: got=%v", cfg.AllowedOrigins)
	}
	if cfg.Otel.SampleRatio != 0.5 {
		t.Fatalf("sample ratio: got=%v", cfg.Otel.SampleRatio)
	}
}
