package app

import (
	apphttp "github.com/yungbote/photoshare-backend/internal/http"
	httpH "github.com/yungbote/photoshare-backend/internal/http/handlers"
	httpMW "github.com/yungbote/photoshare-backend/internal/http/middleware"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health *httpH.HealthHandler
	Auth   *httpH.AuthHandler
	User   *httpH.UserHandler
	Photo  *httpH.PhotoHandler
	Meta   *httpH.MetaHandler
}

func wireMiddleware(log *logger.Logger, cfg Config, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth, cfg.SessionCookieName),
	}
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Auth:   httpH.NewAuthHandler(services.Auth, cfg.SessionCookieName, cfg.SecureCookie),
		User:   httpH.NewUserHandler(services.User, services.Aggregation),
		Photo:  httpH.NewPhotoHandler(services.Aggregation, services.Photo, services.Storage),
		Meta:   httpH.NewMetaHandler(services.Meta),
	}
}

func wireServer(log *logger.Logger, cfg Config, photoDir string, handlers Handlers, middleware Middleware) *apphttp.Server {
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:            log,
		ServiceName:    cfg.Otel.ServiceName,
		TracingEnabled: cfg.Otel.Enabled,
		AllowedOrigins: cfg.AllowedOrigins,
		PhotoDir:       photoDir,
		AuthHandler:    handlers.Auth,
		AuthMiddleware: middleware.Auth,
		UserHandler:    handlers.User,
		PhotoHandler:   handlers.Photo,
		MetaHandler:    handlers.Meta,
		HealthHandler:  handlers.Health,
	})
}
