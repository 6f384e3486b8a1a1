package photo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Photo struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	FileName string    `gorm:"not null;column:file_name" json:"file_name"`
	DateTime time.Time `gorm:"not null;index;column:date_time" json:"date_time"`
	// Append order. Display order is decided by readers.
	Comments  datatypes.JSONSlice[Comment] `gorm:"column:comments" json:"comments"`
	UpdatedAt time.Time                    `gorm:"not null" json:"-"`
}

func (Photo) TableName() string { return "photo" }

// CommentList returns the embedded comments as a plain slice (never nil).
func (p *Photo) CommentList() []Comment {
	if p == nil || len(p.Comments) == 0 {
		return []Comment{}
	}
	return []Comment(p.Comments)
}
