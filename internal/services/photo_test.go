package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/photoshare-backend/internal/platform/apierr"
)

func TestAddCommentWithoutSession(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner")
	p := env.seedPhoto(t, owner.ID, "p.jpg", t0, comment(owner.ID, "mine", t0))

	_, err := env.photos.AddComment(bg(), p.ID, "sneaky")
	if !apierr.IsCode(err, apierr.CodeUnauthorized) {
		t.Fatalf("want unauthorized, got %v", err)
	}
	got, err := env.photoRepo.GetByIDs(bg(), []uuid.UUID{p.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: %v", err)
	}
	if n := len(got[0].CommentList()); n != 1 {
		t.Fatalf("comment count changed: want=1 got=%d", n)
	}
}

func TestAddCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner")
	p := env.seedPhoto(t, owner.ID, "p.jpg", t0)

	_, err := env.photos.AddComment(as(owner.ID), p.ID, " \t ")
	if e := asAPIError(err); e == nil || e.Code != apierr.CodeValidation || e.Field != "comment" {
		t.Fatalf("want validation_error on comment, got %v", err)
	}
	if _, err := env.photos.AddComment(as(owner.ID), uuid.New(), "hello"); !apierr.IsCode(err, apierr.CodePhotoNotFound) {
		t.Fatalf("want photo_not_found, got %v", err)
	}
}

func TestAddCommentReturnsUpdatedPhoto(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner")
	fan := env.seedUser(t, "fan")
	p := env.seedPhoto(t, owner.ID, "p.jpg", t0)

	updated, err := env.photos.AddComment(as(fan.ID), p.ID, "wow")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	comments := updated.CommentList()
	if len(comments) != 1 {
		t.Fatalf("want 1 comment, got %d", len(comments))
	}
	c := comments[0]
	if c.Comment != "wow" || c.UserID != fan.ID || c.ID == uuid.Nil || c.DateTime.IsZero() {
		t.Fatalf("unexpected comment: %+v", c)
	}
	if updated.UserID != owner.ID {
		t.Fatalf("owner changed: %s", updated.UserID)
	}
}

func TestRegisterPhoto(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner")

	if _, err := env.photos.RegisterPhoto(bg(), "x.jpg"); !apierr.IsCode(err, apierr.CodeUnauthorized) {
		t.Fatalf("want unauthorized, got %v", err)
	}
	_, err := env.photos.RegisterPhoto(as(owner.ID), "  ")
	if e := asAPIError(err); e == nil || e.Field != "file_name" {
		t.Fatalf("want validation_error on file_name, got %v", err)
	}

	p, err := env.photos.RegisterPhoto(as(owner.ID), "U1x.jpg")
	if err != nil {
		t.Fatalf("RegisterPhoto: %v", err)
	}
	got, err := env.aggregation.PhotosOfUser(as(owner.ID), owner.ID)
	if err != nil {
		t.Fatalf("PhotosOfUser: %v", err)
	}
	if len(got) != 1 || got[0].ID != p.ID || got[0].FileName != "U1x.jpg" || len(got[0].Comments) != 0 {
		t.Fatalf("unexpected photos: %+v", got)
	}
}
