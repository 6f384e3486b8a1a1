package domain

import (
	"github.com/yungbote/photoshare-backend/internal/domain/auth"
	"github.com/yungbote/photoshare-backend/internal/domain/meta"
	"github.com/yungbote/photoshare-backend/internal/domain/photo"
	"github.com/yungbote/photoshare-backend/internal/domain/user"
)

type User = user.User

type Photo = photo.Photo
type Comment = photo.Comment

type Session = auth.Session

type SchemaInfo = meta.SchemaInfo
