package handlers

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/photoshare-backend/internal/http/response"
	"github.com/yungbote/photoshare-backend/internal/platform/apierr"
	"github.com/yungbote/photoshare-backend/internal/services"
)

const uploadField = "uploadedphoto"

type PhotoHandler struct {
	aggregationService services.AggregationService
	photoService       services.PhotoService
	storage            services.PhotoStorage
}

func NewPhotoHandler(aggregationService services.AggregationService, photoService services.PhotoService, storage services.PhotoStorage) *PhotoHandler {
	return &PhotoHandler{aggregationService: aggregationService, photoService: photoService, storage: storage}
}

// GET /photosOfUser/:id
func (ph *PhotoHandler) PhotosOfUser(c *gin.Context) {
	id, err := parseIDParam(c, "PhotosOfUser", "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	photos, err := ph.aggregationService.PhotosOfUser(requestDBC(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, photos)
}

// GET /commentsOfUser/:id
func (ph *PhotoHandler) CommentsOfUser(c *gin.Context) {
	id, err := parseIDParam(c, "CommentsOfUser", "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	comments, err := ph.aggregationService.CommentsOfUser(requestDBC(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, comments)
}

// POST /commentsOfPhoto/:photo_id
// body: { "comment": "..." }
func (ph *PhotoHandler) AddComment(c *gin.Context) {
	photoID, err := parseIDParam(c, "AddComment", "photo_id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req struct {
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.Validation("AddComment", "comment", err.Error()))
		return
	}
	photo, err := ph.photoService.AddComment(requestDBC(c), photoID, req.Comment)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, photo)
}

// POST /photos/new (multipart field "uploadedphoto")
func (ph *PhotoHandler) Upload(c *gin.Context) {
	const op = "UploadPhoto"
	fh, err := c.FormFile(uploadField)
	if err != nil {
		response.RespondAPIError(c, apierr.Validation(op, uploadField, "no file uploaded"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondAPIError(c, apierr.Internal(op, err))
		return
	}
	defer f.Close()

	fileName, err := ph.storage.Save(c.Request.Context(), fh.Filename, f)
	if err != nil {
		response.RespondAPIError(c, apierr.Internal(op, err))
		return
	}
	photo, err := ph.photoService.RegisterPhoto(requestDBC(c), fileName)
	if err != nil {
		// No record points at the stored file; drop it.
		if delErr := ph.storage.Delete(context.WithoutCancel(c.Request.Context()), fileName); delErr != nil {
			_ = c.Error(fmt.Errorf("%s: remove orphaned %s: %w", op, fileName, delErr))
		}
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true, "photo": photo, "url": ph.storage.URL(fileName)})
}
