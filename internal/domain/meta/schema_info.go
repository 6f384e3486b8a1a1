package meta

import (
	"time"

	"github.com/google/uuid"
)

// SchemaInfo records which fixture version was loaded and when.
type SchemaInfo struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Version      string    `gorm:"not null;column:version" json:"version"`
	LoadDateTime time.Time `gorm:"not null;column:load_date_time" json:"load_date_time"`
}

func (SchemaInfo) TableName() string { return "schema_info" }
