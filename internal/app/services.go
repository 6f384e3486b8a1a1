package app

import (
	"fmt"

	"github.com/yungbote/photoshare-backend/internal/platform/logger"
	"github.com/yungbote/photoshare-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Aggregation services.AggregationService
	Photo       services.PhotoService
	Meta        services.MetaService
	Storage     services.PhotoStorage
	Sessions    services.SessionStore
}

func wireServices(log *logger.Logger, cfg Config, repos Repos, clients Clients, storage services.PhotoStorage) (Services, error) {
	log.Info("Wiring services...")

	credentials, err := services.NewCredentialChecker(cfg.CredentialMode)
	if err != nil {
		return Services{}, fmt.Errorf("init credential checker: %w", err)
	}

	var sessions services.SessionStore
	switch cfg.SessionStore {
	case SessionStoreMemory, "":
		sessions = services.NewMemorySessionStore()
	case SessionStoreRedis:
		if clients.Redis == nil {
			return Services{}, fmt.Errorf("SESSION_STORE=redis requires REDIS_ADDR")
		}
		sessions = services.NewRedisSessionStore(log, clients.Redis, cfg.RedisSessionPrefix, cfg.SessionTTL)
	default:
		return Services{}, fmt.Errorf("unsupported SESSION_STORE %q (allowed: %q, %q)", cfg.SessionStore, SessionStoreMemory, SessionStoreRedis)
	}
	log.Info("Session store selected", "store", cfg.SessionStore, "credential_mode", credentials.Mode())

	return Services{
		Auth:        services.NewAuthService(log, repos.User, sessions, credentials, cfg.SessionSecret, cfg.SessionTTL),
		User:        services.NewUserService(log, repos.User, credentials),
		Aggregation: services.NewAggregationService(log, repos.User, repos.Photo),
		Photo:       services.NewPhotoService(log, repos.Photo),
		Meta:        services.NewMetaService(log, repos.User, repos.Photo, repos.SchemaInfo),
		Storage:     storage,
		Sessions:    sessions,
	}, nil
}
