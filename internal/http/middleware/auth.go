package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/photoshare-backend/internal/http/response"
	"github.com/yungbote/photoshare-backend/internal/platform/ctxutil"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
	"github.com/yungbote/photoshare-backend/internal/services"
)

const requestDataKey = "request_data"

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
	cookieName  string
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService, cookieName string) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService, cookieName: cookieName}
}

// RequireAuth rejects the request with 401 unless the token maps to a live session.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ExtractToken(c, am.cookieName)
		ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			am.log.Debug("Rejected request without live session", "path", c.FullPath(), "error", err)
			response.RespondAPIError(c, err)
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Set(requestDataKey, ctxutil.GetRequestData(ctx))
		c.Next()
	}
}

// ExtractToken reads the session token from the Authorization header, the
// session cookie or the token query parameter, in that order.
func ExtractToken(c *gin.Context, cookieName string) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil && v != "" {
			return v
		}
	}
	return c.Query("token")
}

func requestDataFrom(c *gin.Context) *ctxutil.RequestData {
	if v, ok := c.Get(requestDataKey); ok {
		if rd, ok := v.(*ctxutil.RequestData); ok && rd != nil {
			return rd
		}
	}
	return ctxutil.GetRequestData(c.Request.Context())
}
