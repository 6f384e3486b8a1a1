package meta

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/photoshare-backend/internal/domain"
	"github.com/yungbote/photoshare-backend/internal/platform/dbctx"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

type SchemaInfoRepo interface {
	Create(dbc dbctx.Context, info *types.SchemaInfo) (*types.SchemaInfo, error)
	// GetLatest returns nil, nil when nothing was loaded yet.
	GetLatest(dbc dbctx.Context) (*types.SchemaInfo, error)
	Count(dbc dbctx.Context) (int64, error)
	DeleteAll(dbc dbctx.Context) error
}

type schemaInfoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSchemaInfoRepo(db *gorm.DB, baseLog *logger.Logger) SchemaInfoRepo {
	return &schemaInfoRepo{db: db, log: baseLog.With("repo", "SchemaInfoRepo")}
}

func (r *schemaInfoRepo) Create(dbc dbctx.Context, info *types.SchemaInfo) (*types.SchemaInfo, error) {
	if err := dbc.DB(r.db).Create(info).Error; err != nil {
		return nil, err
	}
	return info, nil
}

func (r *schemaInfoRepo) GetLatest(dbc dbctx.Context) (*types.SchemaInfo, error) {
	var row types.SchemaInfo
	err := dbc.DB(r.db).Order("load_date_time DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *schemaInfoRepo) Count(dbc dbctx.Context) (int64, error) {
	var count int64
	if err := dbc.DB(r.db).Model(&types.SchemaInfo{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *schemaInfoRepo) DeleteAll(dbc dbctx.Context) error {
	return dbc.DB(r.db).Where("1 = 1").Delete(&types.SchemaInfo{}).Error
}
