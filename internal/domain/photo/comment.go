package photo

import (
	"time"

	"github.com/google/uuid"
)

// Comment lives inside its Photo's comment array and is only addressable through it.
type Comment struct {
	ID       uuid.UUID `json:"id"`
	Comment  string    `json:"comment"`
	DateTime time.Time `json:"date_time"`
	UserID   uuid.UUID `json:"user_id"`
}
