package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/photoshare-backend/internal/data/repos"
	"github.com/yungbote/photoshare-backend/internal/data/repos/testutil"
	types "github.com/yungbote/photoshare-backend/internal/domain"
	"github.com/yungbote/photoshare-backend/internal/platform/ctxutil"
	"github.com/yungbote/photoshare-backend/internal/platform/dbctx"
)

const testSecret = "test-secret"

type testEnv struct {
	db          *gorm.DB
	userRepo    repos.UserRepo
	photoRepo   repos.PhotoRepo
	sessions    SessionStore
	auth        AuthService
	users       UserService
	aggregation AggregationService
	photos      PhotoService
	meta        MetaService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	creds, err := NewCredentialChecker("plaintext")
	if err != nil {
		t.Fatalf("NewCredentialChecker: %v", err)
	}
	userRepo := repos.NewUserRepo(db, log)
	photoRepo := repos.NewPhotoRepo(db, log)
	schemaRepo := repos.NewSchemaInfoRepo(db, log)
	sessions := NewMemorySessionStore()
	return &testEnv{
		db:          db,
		userRepo:    userRepo,
		photoRepo:   photoRepo,
		sessions:    sessions,
		auth:        NewAuthService(log, userRepo, sessions, creds, testSecret, 0),
		users:       NewUserService(log, userRepo, creds),
		aggregation: NewAggregationService(log, userRepo, photoRepo),
		photos:      NewPhotoService(log, photoRepo),
		meta:        NewMetaService(log, userRepo, photoRepo, schemaRepo),
	}
}

func bg() dbctx.Context { return dbctx.Context{Ctx: context.Background()} }

// as returns a context carrying userID as the signed-in user.
func as(userID uuid.UUID) dbctx.Context {
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{
		SessionID: uuid.New(),
		UserID:    userID,
	})
	return dbctx.Context{Ctx: ctx}
}

func (e *testEnv) seedUser(t *testing.T, loginName string) *types.User {
	t.Helper()
	return testutil.SeedUser(t, context.Background(), e.db, loginName)
}

func (e *testEnv) seedPhoto(t *testing.T, ownerID uuid.UUID, fileName string, at time.Time, comments ...types.Comment) *types.Photo {
	t.Helper()
	return testutil.SeedPhoto(t, context.Background(), e.db, ownerID, fileName, at, comments...)
}

func comment(authorID uuid.UUID, text string, at time.Time) types.Comment {
	return testutil.NewComment(authorID, text, at)
}
