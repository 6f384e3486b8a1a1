package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/photoshare-backend/internal/domain"
	"github.com/yungbote/photoshare-backend/internal/platform/dbctx"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error)
	GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error)
	GetByLoginNames(dbc dbctx.Context, loginNames []string) ([]*types.User, error)
	LoginNameExists(dbc dbctx.Context, loginName string) (bool, error)
	List(dbc dbctx.Context) ([]*types.User, error)
	Count(dbc dbctx.Context) (int64, error)
	DeleteAll(dbc dbctx.Context) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error) {
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	for _, u := range users {
		if u != nil && u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
	}
	if err := dbc.DB(ur.db).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error) {
	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := dbc.DB(ur.db).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByLoginNames matches login names exactly (case-sensitive).
func (ur *userRepo) GetByLoginNames(dbc dbctx.Context, loginNames []string) ([]*types.User, error) {
	var results []*types.User
	if len(loginNames) == 0 {
		return results, nil
	}
	if err := dbc.DB(ur.db).
		Where("login_name IN ?", loginNames).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) LoginNameExists(dbc dbctx.Context, loginName string) (bool, error) {
	var count int64
	if err := dbc.DB(ur.db).
		Model(&types.User{}).
		Where("login_name = ?", loginName).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns every user in store order. Callers must not rely on sorting.
func (ur *userRepo) List(dbc dbctx.Context) ([]*types.User, error) {
	var results []*types.User
	if err := dbc.DB(ur.db).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) Count(dbc dbctx.Context) (int64, error) {
	var count int64
	if err := dbc.DB(ur.db).Model(&types.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (ur *userRepo) DeleteAll(dbc dbctx.Context) error {
	return dbc.DB(ur.db).Where("1 = 1").Delete(&types.User{}).Error
}
