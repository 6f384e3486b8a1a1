package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/photoshare-backend/internal/data/repos"
	types "github.com/yungbote/photoshare-backend/internal/domain"
	"github.com/yungbote/photoshare-backend/internal/platform/dbctx"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
	"github.com/yungbote/photoshare-backend/internal/services"
)

type Result struct {
	Users    int
	Photos   int
	Comments int
	Version  string
}

type Loader struct {
	log         *logger.Logger
	tx          repos.TxRunner
	users       repos.UserRepo
	photos      repos.PhotoRepo
	schemaInfo  repos.SchemaInfoRepo
	credentials services.CredentialChecker
	now         func() time.Time
}

func NewLoader(
	log *logger.Logger,
	tx repos.TxRunner,
	users repos.UserRepo,
	photos repos.PhotoRepo,
	schemaInfo repos.SchemaInfoRepo,
	credentials services.CredentialChecker,
) *Loader {
	return &Loader{
		log:         log.With("service", "SeedLoader"),
		tx:          tx,
		users:       users,
		photos:      photos,
		schemaInfo:  schemaInfo,
		credentials: credentials,
		now:         time.Now,
	}
}

// Load writes the fixture in one transaction. With wipe set, existing users,
// photos and schema info rows are removed first.
func (l *Loader) Load(ctx context.Context, fx *Fixture, wipe bool) (Result, error) {
	if err := fx.Validate(); err != nil {
		return Result{}, err
	}
	var res Result
	err := l.tx.InTx(ctx, func(dbc dbctx.Context) error {
		if wipe {
			if err := l.photos.DeleteAll(dbc); err != nil {
				return fmt.Errorf("wipe photos: %w", err)
			}
			if err := l.users.DeleteAll(dbc); err != nil {
				return fmt.Errorf("wipe users: %w", err)
			}
			if err := l.schemaInfo.DeleteAll(dbc); err != nil {
				return fmt.Errorf("wipe schema info: %w", err)
			}
		}

		ids := make(map[string]uuid.UUID, len(fx.Users))
		users := make([]*types.User, 0, len(fx.Users))
		for _, fu := range fx.Users {
			stored, err := l.credentials.Prepare(fu.Password)
			if err != nil {
				return fmt.Errorf("prepare password for %q: %w", fu.LoginName, err)
			}
			u := &types.User{
				ID:          uuid.New(),
				LoginName:   fu.LoginName,
				Password:    stored,
				FirstName:   fu.FirstName,
				LastName:    fu.LastName,
				Location:    fu.Location,
				Description: fu.Description,
				Occupation:  fu.Occupation,
			}
			ids[fu.LoginName] = u.ID
			users = append(users, u)
		}
		if _, err := l.users.Create(dbc, users); err != nil {
			return fmt.Errorf("create users: %w", err)
		}

		photos := make([]*types.Photo, 0, len(fx.Photos))
		for _, fp := range fx.Photos {
			comments := make([]types.Comment, 0, len(fp.Comments))
			for _, fc := range fp.Comments {
				comments = append(comments, types.Comment{
					ID:       uuid.New(),
					Comment:  fc.Comment,
					DateTime: fc.DateTime.UTC(),
					UserID:   ids[fc.Author],
				})
			}
			res.Comments += len(comments)
			photos = append(photos, &types.Photo{
				UserID:   ids[fp.Owner],
				FileName: fp.FileName,
				DateTime: fp.DateTime.UTC(),
				Comments: datatypes.NewJSONSlice(comments),
			})
		}
		if _, err := l.photos.Create(dbc, photos); err != nil {
			return fmt.Errorf("create photos: %w", err)
		}

		if _, err := l.schemaInfo.Create(dbc, &types.SchemaInfo{
			ID:           uuid.New(),
			Version:      fx.Version,
			LoadDateTime: l.now().UTC(),
		}); err != nil {
			return fmt.Errorf("create schema info: %w", err)
		}
		res.Users = len(users)
		res.Photos = len(photos)
		res.Version = fx.Version
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	l.log.Info("Fixture loaded", "version", res.Version, "users", res.Users, "photos", res.Photos, "comments", res.Comments, "wiped", wipe)
	return res, nil
}
