package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/photoshare-backend/internal/data/repos"
	types "github.com/yungbote/photoshare-backend/internal/domain"
	"github.com/yungbote/photoshare-backend/internal/platform/apierr"
	"github.com/yungbote/photoshare-backend/internal/platform/ctxutil"
	"github.com/yungbote/photoshare-backend/internal/platform/dbctx"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

type PhotoService interface {
	AddComment(dbc dbctx.Context, photoID uuid.UUID, text string) (*types.Photo, error)
	RegisterPhoto(dbc dbctx.Context, fileName string) (*types.Photo, error)
}

type photoService struct {
	log       *logger.Logger
	photoRepo repos.PhotoRepo
	now       func() time.Time
}

func NewPhotoService(log *logger.Logger, photoRepo repos.PhotoRepo) PhotoService {
	return &photoService{
		log:       log.With("service", "PhotoService"),
		photoRepo: photoRepo,
		now:       time.Now,
	}
}

// sessionUser returns the authenticated user bound to the request context.
func sessionUser(dbc dbctx.Context, op string) (uuid.UUID, error) {
	rd := ctxutil.GetRequestData(dbc.Ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.Unauthorized(op, "login required")
	}
	return rd.UserID, nil
}

func (ps *photoService) AddComment(dbc dbctx.Context, photoID uuid.UUID, text string) (*types.Photo, error) {
	const op = "AddComment"
	authorID, err := sessionUser(dbc, op)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apierr.Validation(op, "comment", "comment is required")
	}

	comment := types.Comment{
		ID:       uuid.New(),
		Comment:  text,
		DateTime: ps.now().UTC(),
		UserID:   authorID,
	}
	found, err := ps.photoRepo.AppendComment(dbc, photoID, comment)
	if err != nil {
		return nil, apierr.FromStore(op, err)
	}
	if !found {
		return nil, apierr.PhotoNotFound(op, photoID)
	}

	photos, err := ps.photoRepo.GetByIDs(dbc, []uuid.UUID{photoID})
	if err != nil {
		return nil, apierr.FromStore(op, err)
	}
	if len(photos) == 0 || photos[0] == nil {
		return nil, apierr.PhotoNotFound(op, photoID)
	}
	ps.log.Info("Comment added", "photo_id", photoID.String(), "user_id", authorID.String())
	return photos[0], nil
}

func (ps *photoService) RegisterPhoto(dbc dbctx.Context, fileName string) (*types.Photo, error) {
	const op = "RegisterPhoto"
	ownerID, err := sessionUser(dbc, op)
	if err != nil {
		return nil, err
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, apierr.Validation(op, "file_name", "file_name is required")
	}
	photo := &types.Photo{
		ID:       uuid.New(),
		UserID:   ownerID,
		FileName: fileName,
		DateTime: ps.now().UTC(),
		Comments: datatypes.NewJSONSlice([]types.Comment{}),
	}
	if _, err := ps.photoRepo.Create(dbc, []*types.Photo{photo}); err != nil {
		return nil, apierr.FromStore(op, err)
	}
	ps.log.Info("Photo registered", "photo_id", photo.ID.String(), "owner_id", ownerID.String())
	return photo, nil
}
