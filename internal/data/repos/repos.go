package repos

import (
	"github.com/yungbote/photoshare-backend/internal/data/repos/meta"
	"github.com/yungbote/photoshare-backend/internal/data/repos/photo"
	"github.com/yungbote/photoshare-backend/internal/data/repos/user"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo
type PhotoRepo = photo.PhotoRepo
type SchemaInfoRepo = meta.SchemaInfoRepo

type OwnerCount = photo.OwnerCount

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewPhotoRepo(db *gorm.DB, baseLog *logger.Logger) PhotoRepo {
	return photo.NewPhotoRepo(db, baseLog)
}

func NewSchemaInfoRepo(db *gorm.DB, baseLog *logger.Logger) SchemaInfoRepo {
	return meta.NewSchemaInfoRepo(db, baseLog)
}
