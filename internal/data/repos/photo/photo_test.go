package photo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/photoshare-backend/internal/data/repos/testutil"
	types "github.com/yungbote/photoshare-backend/internal/domain"
	"github.com/yungbote/photoshare-backend/internal/platform/dbctx"
)

func TestAppendCommentKeepsAppendOrder(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := NewPhotoRepo(db, testutil.Logger(t))

	owner := testutil.SeedUser(t, ctx, db, "owner")
	author := testutil.SeedUser(t, ctx, db, "author")
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	p := testutil.SeedPhoto(t, ctx, db, owner.ID, "a.jpg", base,
		testutil.NewComment(author.ID, "first", base.Add(time.Minute)))

	dbc := dbctx.Context{Ctx: ctx}
	second := testutil.NewComment(owner.ID, "second", base.Add(2*time.Minute))
	found, err := repo.AppendComment(dbc, p.ID, second)
	if err != nil {
		t.Fatalf("AppendComment: %v", err)
	}
	if !found {
		t.Fatalf("AppendComment: photo not found")
	}

	got, err := repo.GetByIDs(dbc, []uuid.UUID{p.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: %v (len=%d)", err, len(got))
	}
	comments := got[0].CommentList()
	if len(comments) != 2 {
		t.Fatalf("comment count: want=2 got=%d", len(comments))
	}
	if comments[0].Comment != "first" || comments[1].Comment != "second" {
		t.Fatalf("storage order changed: %+v", comments)
	}
	if comments[1].ID != second.ID || comments[1].UserID != owner.ID {
		t.Fatalf("appended comment fields lost: %+v", comments[1])
	}
	if !comments[1].DateTime.Equal(second.DateTime) {
		t.Fatalf("date_time: want=%s got=%s", second.DateTime, comments[1].DateTime)
	}
}

func TestAppendCommentUnknownPhoto(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := NewPhotoRepo(db, testutil.Logger(t))

	found, err := repo.AppendComment(dbctx.Context{Ctx: ctx}, uuid.New(), testutil.NewComment(uuid.New(), "x", time.Now()))
	if err != nil {
		t.Fatalf("AppendComment: %v", err)
	}
	if found {
		t.Fatalf("expected not found for unknown photo")
	}
}

func TestAppendCommentConcurrentWritersAllLand(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := NewPhotoRepo(db, testutil.Logger(t))

	owner := testutil.SeedUser(t, ctx, db, "owner")
	created, err := repo.Create(dbctx.Context{Ctx: ctx}, []*types.Photo{{UserID: owner.ID, FileName: "c.jpg", DateTime: time.Now().UTC()}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	photoID := created[0].ID

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AppendComment(dbctx.Context{Ctx: ctx}, photoID, testutil.NewComment(owner.ID, "hi", time.Now()))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("AppendComment: %v", err)
		}
	}

	got, err := repo.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{photoID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: %v", err)
	}
	if n := len(got[0].CommentList()); n != writers {
		t.Fatalf("lost comments: want=%d got=%d", writers, n)
	}
}

func TestCountByOwnerGroupsPhotos(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := NewPhotoRepo(db, testutil.Logger(t))

	a := testutil.SeedUser(t, ctx, db, "a")
	b := testutil.SeedUser(t, ctx, db, "b")
	now := time.Now()
	testutil.SeedPhoto(t, ctx, db, a.ID, "1.jpg", now)
	testutil.SeedPhoto(t, ctx, db, a.ID, "2.jpg", now)
	testutil.SeedPhoto(t, ctx, db, b.ID, "3.jpg", now)

	rows, err := repo.CountByOwner(dbctx.Context{Ctx: ctx})
	if err != nil {
		t.Fatalf("CountByOwner: %v", err)
	}
	counts := map[uuid.UUID]int64{}
	for _, r := range rows {
		counts[r.UserID] = r.Count
	}
	if counts[a.ID] != 2 || counts[b.ID] != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	total, err := repo.Count(dbctx.Context{Ctx: ctx})
	if err != nil || total != 3 {
		t.Fatalf("Count: got=%d err=%v", total, err)
	}
}

func TestCreateDefaultsEmptyCommentArray(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	repo := NewPhotoRepo(db, testutil.Logger(t))
	owner := testutil.SeedUser(t, ctx, db, "owner")

	created, err := repo.Create(dbctx.Context{Ctx: ctx}, []*types.Photo{{UserID: owner.ID, FileName: "x.jpg", DateTime: time.Now().UTC()}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created[0].ID == uuid.Nil {
		t.Fatalf("Create did not assign an id")
	}
	got, err := repo.GetByUserIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{owner.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByUserIDs: %v (len=%d)", err, len(got))
	}
	if got[0].Comments == nil || len(got[0].CommentList()) != 0 {
		t.Fatalf("expected stored empty array, got %#v", got[0].Comments)
	}
}

func TestAppendCommentPostgres(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.PostgresDB(t))
	repo := NewPhotoRepo(tx, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	owner := testutil.SeedUser(t, ctx, tx, "pg-owner-"+uuid.NewString())
	p := testutil.SeedPhoto(t, ctx, tx, owner.ID, "pg.jpg", time.Now())

	for _, text := range []string{"one", "two"} {
		found, err := repo.AppendComment(dbc, p.ID, testutil.NewComment(owner.ID, text, time.Now()))
		if err != nil || !found {
			t.Fatalf("AppendComment(%s): found=%v err=%v", text, found, err)
		}
	}
	got, err := repo.GetByIDs(dbc, []uuid.UUID{p.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: %v", err)
	}
	comments := got[0].CommentList()
	if len(comments) != 2 || comments[0].Comment != "one" || comments[1].Comment != "two" {
		t.Fatalf("unexpected comments: %+v", comments)
	}
}
