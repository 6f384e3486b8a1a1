package photo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/photoshare-backend/internal/domain"
	"github.com/yungbote/photoshare-backend/internal/platform/dbctx"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

type OwnerCount struct {
	UserID uuid.UUID
	Count  int64
}

type PhotoRepo interface {
	Create(dbc dbctx.Context, photos []*types.Photo) ([]*types.Photo, error)
	GetByIDs(dbc dbctx.Context, photoIDs []uuid.UUID) ([]*types.Photo, error)
	GetByUserIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.Photo, error)
	List(dbc dbctx.Context) ([]*types.Photo, error)
	CountByOwner(dbc dbctx.Context) ([]OwnerCount, error)
	Count(dbc dbctx.Context) (int64, error)
	// AppendComment reports false when no photo has the id.
	AppendComment(dbc dbctx.Context, photoID uuid.UUID, comment types.Comment) (bool, error)
	DeleteAll(dbc dbctx.Context) error
}

type photoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPhotoRepo(db *gorm.DB, baseLog *logger.Logger) PhotoRepo {
	repoLog := baseLog.With("repo", "PhotoRepo")
	return &photoRepo{db: db, log: repoLog}
}

func (pr *photoRepo) Create(dbc dbctx.Context, photos []*types.Photo) ([]*types.Photo, error) {
	if len(photos) == 0 {
		return []*types.Photo{}, nil
	}
	for _, p := range photos {
		if p == nil {
			continue
		}
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		// A NULL or JSON null column would break the append expression.
		if p.Comments == nil {
			p.Comments = datatypes.NewJSONSlice([]types.Comment{})
		}
	}
	if err := dbc.DB(pr.db).Create(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

func (pr *photoRepo) GetByIDs(dbc dbctx.Context, photoIDs []uuid.UUID) ([]*types.Photo, error) {
	var results []*types.Photo
	if len(photoIDs) == 0 {
		return results, nil
	}
	if err := dbc.DB(pr.db).
		Where("id IN ?", photoIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *photoRepo) GetByUserIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.Photo, error) {
	var results []*types.Photo
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := dbc.DB(pr.db).
		Where("user_id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *photoRepo) List(dbc dbctx.Context) ([]*types.Photo, error) {
	var results []*types.Photo
	if err := dbc.DB(pr.db).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *photoRepo) CountByOwner(dbc dbctx.Context) ([]OwnerCount, error) {
	var rows []OwnerCount
	if err := dbc.DB(pr.db).
		Model(&types.Photo{}).
		Select("user_id, COUNT(*) AS count").
		Group("user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (pr *photoRepo) Count(dbc dbctx.Context) (int64, error) {
	var count int64
	if err := dbc.DB(pr.db).Model(&types.Photo{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AppendComment pushes one element onto the embedded comment array in a single
// UPDATE, so concurrent appends to the same photo never overwrite each other.
func (pr *photoRepo) AppendComment(dbc dbctx.Context, photoID uuid.UUID, comment types.Comment) (bool, error) {
	tx := dbc.DB(pr.db)
	expr, err := appendCommentExpr(tx.Dialector.Name(), comment)
	if err != nil {
		return false, err
	}
	res := tx.Model(&types.Photo{}).
		Where("id = ?", photoID).
		UpdateColumns(map[string]interface{}{
			"comments":   expr,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func appendCommentExpr(dialect string, comment types.Comment) (clause.Expr, error) {
	switch dialect {
	case "postgres":
		raw, err := json.Marshal([]types.Comment{comment})
		if err != nil {
			return clause.Expr{}, fmt.Errorf("marshal comment: %w", err)
		}
		return gorm.Expr(
			"(CASE WHEN jsonb_typeof(comments) = 'array' THEN comments ELSE '[]'::jsonb END) || ?::jsonb",
			string(raw),
		), nil
	case "sqlite":
		raw, err := json.Marshal(comment)
		if err != nil {
			return clause.Expr{}, fmt.Errorf("marshal comment: %w", err)
		}
		return gorm.Expr(
			"json_insert(CASE WHEN json_type(CAST(comments AS TEXT)) = 'array' THEN CAST(comments AS TEXT) ELSE '[]' END, '$[#]', json(?))",
			string(raw),
		), nil
	default:
		return clause.Expr{}, fmt.Errorf("append comment: unsupported dialect %q", dialect)
	}
}

func (pr *photoRepo) DeleteAll(dbc dbctx.Context) error {
	return dbc.DB(pr.db).Where("1 = 1").Delete(&types.Photo{}).Error
}
