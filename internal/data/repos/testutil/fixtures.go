package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/photoshare-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, loginName string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		FirstName: "First-" + loginName,
		LastName:  "Last-" + loginName,
		LoginName: loginName,
		Password:  "weak",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedPhoto(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, fileName string, at time.Time, comments ...types.Comment) *types.Photo {
	tb.Helper()
	if comments == nil {
		comments = []types.Comment{}
	}
	p := &types.Photo{
		ID:       uuid.New(),
		UserID:   ownerID,
		FileName: fileName,
		DateTime: at.UTC(),
		Comments: datatypes.NewJSONSlice(comments),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed photo: %v", err)
	}
	return p
}

func NewComment(authorID uuid.UUID, text string, at time.Time) types.Comment {
	return types.Comment{
		ID:       uuid.New(),
		Comment:  text,
		DateTime: at.UTC(),
		UserID:   authorID,
	}
}
