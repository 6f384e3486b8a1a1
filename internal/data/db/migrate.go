package db

import (
	"fmt"

	types "github.com/yungbote/photoshare-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&types.User{},
		&types.Photo{},
		&types.SchemaInfo{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return EnsurePhotoIndexes(db)
}

// EnsurePhotoIndexes adds the composite index used by photosOfUser.
func EnsurePhotoIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_photo_user_date ON photo (user_id, date_time DESC);`).Error; err != nil {
		return fmt.Errorf("create idx_photo_user_date: %w", err)
	}
	return nil
}
