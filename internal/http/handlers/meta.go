package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/photoshare-backend/internal/http/response"
	"github.com/yungbote/photoshare-backend/internal/services"
)

type MetaHandler struct {
	metaService services.MetaService
}

func NewMetaHandler(metaService services.MetaService) *MetaHandler {
	return &MetaHandler{metaService: metaService}
}

// GET /test/info
func (mh *MetaHandler) Info(c *gin.Context) {
	info, err := mh.metaService.SchemaInfo(requestDBC(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, info)
}

// GET /test/counts
func (mh *MetaHandler) Counts(c *gin.Context) {
	counts, err := mh.metaService.Counts(requestDBC(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, counts)
}
