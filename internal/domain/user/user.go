package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName   string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName    string    `gorm:"not null;column:last_name" json:"last_name"`
	Location    string    `gorm:"column:location" json:"location"`
	Description string    `gorm:"column:description" json:"description"`
	Occupation  string    `gorm:"column:occupation" json:"occupation"`
	LoginName   string    `gorm:"uniqueIndex;not null;column:login_name" json:"login_name"`
	// Stored as given unless the credential mode hashes it.
	Password  string    `gorm:"not null;column:password" json:"-"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }
