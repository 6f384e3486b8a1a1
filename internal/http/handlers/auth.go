package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/photoshare-backend/internal/http/middleware"
	"github.com/yungbote/photoshare-backend/internal/http/response"
	"github.com/yungbote/photoshare-backend/internal/platform/apierr"
	"github.com/yungbote/photoshare-backend/internal/services"
)

type AuthHandler struct {
	authService  services.AuthService
	cookieName   string
	secureCookie bool
}

func NewAuthHandler(authService services.AuthService, cookieName string, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieName: cookieName, secureCookie: secureCookie}
}

// POST /admin/login
// body: { "login_name": "...", "password": "..." }
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		LoginName string `json:"login_name"`
		Password  string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.Validation("Login", "body", err.Error()))
		return
	}
	res, err := ah.authService.LoginUser(requestDBC(c), req.LoginName, req.Password)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if ah.cookieName != "" {
		maxAge := int(ah.authService.SessionTTL().Seconds())
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(ah.cookieName, res.Token, maxAge, "/", "", ah.secureCookie, true)
	}
	response.RespondOK(c, gin.H{
		"token": res.Token,
		"user": gin.H{
			"id":         res.User.ID,
			"first_name": res.User.FirstName,
			"last_name":  res.User.LastName,
			"login_name": res.User.LoginName,
		},
	})
}

// POST /admin/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	token := middleware.ExtractToken(c, ah.cookieName)
	if err := ah.authService.LogoutUser(requestDBC(c), token); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if ah.cookieName != "" {
		c.SetCookie(ah.cookieName, "", -1, "/", "", ah.secureCookie, true)
	}
	response.RespondOK(c, gin.H{"ok": true})
}
