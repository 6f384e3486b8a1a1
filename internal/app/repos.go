package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/photoshare-backend/internal/data/repos"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

type Repos struct {
	User       repos.UserRepo
	Photo      repos.PhotoRepo
	SchemaInfo repos.SchemaInfoRepo
	Tx         repos.TxRunner
}

func NewRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       repos.NewUserRepo(db, log),
		Photo:      repos.NewPhotoRepo(db, log),
		SchemaInfo: repos.NewSchemaInfoRepo(db, log),
		Tx:         repos.NewGormTxRunner(db),
	}
}
