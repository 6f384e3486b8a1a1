package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/photoshare-backend/internal/platform/apierr"
	"github.com/yungbote/photoshare-backend/internal/platform/dbctx"
)

func parseIDParam(c *gin.Context, op, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierr.Validation(op, "id", "malformed id "+raw)
	}
	return id, nil
}

func requestDBC(c *gin.Context) dbctx.Context {
	return dbctx.Context{Ctx: c.Request.Context()}
}
