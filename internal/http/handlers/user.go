package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/photoshare-backend/internal/http/response"
	"github.com/yungbote/photoshare-backend/internal/platform/apierr"
	"github.com/yungbote/photoshare-backend/internal/services"
)

type UserHandler struct {
	userService        services.UserService
	aggregationService services.AggregationService
}

func NewUserHandler(userService services.UserService, aggregationService services.AggregationService) *UserHandler {
	return &UserHandler{userService: userService, aggregationService: aggregationService}
}

// POST /user
func (uh *UserHandler) Register(c *gin.Context) {
	var req services.RegisterUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.Validation("RegisterUser", "body", err.Error()))
		return
	}
	u, err := uh.userService.RegisterUser(requestDBC(c), req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"id": u.ID, "login_name": u.LoginName})
}

// GET /user/list?advanced=true
func (uh *UserHandler) List(c *gin.Context) {
	advanced, _ := strconv.ParseBool(c.Query("advanced"))
	users, err := uh.aggregationService.ListUsers(requestDBC(c), advanced)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, users)
}

// GET /user/:id
func (uh *UserHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "GetUser", "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	u, err := uh.userService.GetUser(requestDBC(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, u)
}
