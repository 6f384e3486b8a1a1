package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/photoshare-backend/internal/http/handlers"
	httpMW "github.com/yungbote/photoshare-backend/internal/http/middleware"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	TracingEnabled bool
	AllowedOrigins []string
	// PhotoDir is served at /images when photos are stored locally.
	PhotoDir string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler
	PhotoHandler   *httpH.PhotoHandler
	MetaHandler    *httpH.MetaHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	if cfg.PhotoDir != "" {
		r.Static("/images", cfg.PhotoDir)
	}

	// Auth (public; logout reads the token itself)
	if cfg.AuthHandler != nil {
		r.POST("/admin/login", cfg.AuthHandler.Login)
		r.POST("/admin/logout", cfg.AuthHandler.Logout)
	}

	// Users (public)
	if cfg.UserHandler != nil {
		r.POST("/user", cfg.UserHandler.Register)
		r.GET("/user/list", cfg.UserHandler.List)
	}

	// Fixture info (public)
	if cfg.MetaHandler != nil {
		r.GET("/test/info", cfg.MetaHandler.Info)
		r.GET("/test/counts", cfg.MetaHandler.Counts)
	}

	protected := r.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.UserHandler != nil {
			protected.GET("/user/:id", cfg.UserHandler.Get)
		}

		if cfg.PhotoHandler != nil {
			protected.GET("/photosOfUser/:id", cfg.PhotoHandler.PhotosOfUser)
			protected.GET("/commentsOfUser/:id", cfg.PhotoHandler.CommentsOfUser)
			protected.POST("/commentsOfPhoto/:photo_id", cfg.PhotoHandler.AddComment)
			protected.POST("/photos/new", cfg.PhotoHandler.Upload)
		}
	}

	return r
}
