package services

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/photoshare-backend/internal/data/repos"
	types "github.com/yungbote/photoshare-backend/internal/domain"
	"github.com/yungbote/photoshare-backend/internal/platform/apierr"
	"github.com/yungbote/photoshare-backend/internal/platform/dbctx"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
	"github.com/yungbote/photoshare-backend/internal/platform/pointers"
)

// UserListItem carries counts only for advanced listings.
type UserListItem struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhotoCount   *int64    `json:"photoCount,omitempty"`
	CommentCount *int64    `json:"commentCount,omitempty"`
}

type UserRef struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// CommentView replaces the stored author id with the resolved author, if any.
type CommentView struct {
	ID       uuid.UUID `json:"id"`
	Comment  string    `json:"comment"`
	DateTime time.Time `json:"date_time"`
	User     *UserRef  `json:"user,omitempty"`
}

type PhotoView struct {
	ID       uuid.UUID     `json:"id"`
	UserID   uuid.UUID     `json:"user_id"`
	FileName string        `json:"file_name"`
	DateTime time.Time     `json:"date_time"`
	Comments []CommentView `json:"comments"`
}

type UserComment struct {
	ID            uuid.UUID `json:"id"`
	CommentText   string    `json:"comment_text"`
	DateTime      time.Time `json:"date_time"`
	PhotoID       uuid.UUID `json:"photo_id"`
	PhotoOwnerID  uuid.UUID `json:"photo_owner_id"`
	PhotoFileName string    `json:"photo_file_name"`
}

type AggregationService interface {
	ListUsers(dbc dbctx.Context, advanced bool) ([]UserListItem, error)
	PhotosOfUser(dbc dbctx.Context, userID uuid.UUID) ([]PhotoView, error)
	CommentsOfUser(dbc dbctx.Context, userID uuid.UUID) ([]UserComment, error)
}

type aggregationService struct {
	log       *logger.Logger
	userRepo  repos.UserRepo
	photoRepo repos.PhotoRepo
}

func NewAggregationService(log *logger.Logger, userRepo repos.UserRepo, photoRepo repos.PhotoRepo) AggregationService {
	return &aggregationService{
		log:       log.With("service", "AggregationService"),
		userRepo:  userRepo,
		photoRepo: photoRepo,
	}
}

func (s *aggregationService) ListUsers(dbc dbctx.Context, advanced bool) ([]UserListItem, error) {
	const op = "ListUsers"
	var (
		users       []*types.User
		ownerCounts []repos.OwnerCount
		photos      []*types.Photo
	)
	loads := []func(dbctx.Context) error{
		func(d dbctx.Context) (err error) {
			users, err = s.userRepo.List(d)
			return err
		},
	}
	if advanced {
		loads = append(loads,
			func(d dbctx.Context) (err error) {
				ownerCounts, err = s.photoRepo.CountByOwner(d)
				return err
			},
			func(d dbctx.Context) (err error) {
				photos, err = s.photoRepo.List(d)
				return err
			},
		)
	}
	if err := runLoads(dbc, loads); err != nil {
		return nil, apierr.FromStore(op, err)
	}

	out := make([]UserListItem, 0, len(users))
	if !advanced {
		for _, u := range users {
			if u == nil {
				continue
			}
			out = append(out, UserListItem{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName})
		}
		return out, nil
	}

	photoCounts := make(map[uuid.UUID]int64, len(ownerCounts))
	for _, oc := range ownerCounts {
		photoCounts[oc.UserID] = oc.Count
	}
	// Counts every comment a user wrote on anyone's photo.
	commentCounts := make(map[uuid.UUID]int64)
	for _, p := range photos {
		for _, c := range p.CommentList() {
			commentCounts[c.UserID]++
		}
	}
	for _, u := range users {
		if u == nil {
			continue
		}
		out = append(out, UserListItem{
			ID:           u.ID,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			PhotoCount:   pointers.Int64(photoCounts[u.ID]),
			CommentCount: pointers.Int64(commentCounts[u.ID]),
		})
	}
	return out, nil
}

// runLoads fans out independent reads. Inside a transaction they run in order
// because a single gorm transaction must not be shared across goroutines.
func runLoads(dbc dbctx.Context, loads []func(dbctx.Context) error) error {
	if dbc.Tx != nil || len(loads) < 2 {
		for _, load := range loads {
			if err := load(dbc); err != nil {
				return err
			}
		}
		return nil
	}
	g, gctx := errgroup.WithContext(dbc.Ctx)
	for _, load := range loads {
		load := load
		g.Go(func() error {
			return load(dbctx.Context{Ctx: gctx})
		})
	}
	return g.Wait()
}

func (s *aggregationService) PhotosOfUser(dbc dbctx.Context, userID uuid.UUID) ([]PhotoView, error) {
	const op = "PhotosOfUser"
	if err := s.requireUser(dbc, op, userID); err != nil {
		return nil, err
	}
	photos, err := s.photoRepo.GetByUserIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return nil, apierr.FromStore(op, err)
	}

	authors, err := s.loadAuthors(dbc, photos)
	if err != nil {
		return nil, apierr.FromStore(op, err)
	}

	out := make([]PhotoView, 0, len(photos))
	for _, p := range photos {
		if p == nil {
			continue
		}
		stored := p.CommentList()
		comments := make([]CommentView, 0, len(stored))
		for _, c := range stored {
			comments = append(comments, CommentView{
				ID:       c.ID,
				Comment:  c.Comment,
				DateTime: c.DateTime,
				User:     authors[c.UserID],
			})
		}
		slices.SortStableFunc(comments, func(a, b CommentView) int {
			return b.DateTime.Compare(a.DateTime)
		})
		out = append(out, PhotoView{
			ID:       p.ID,
			UserID:   p.UserID,
			FileName: p.FileName,
			DateTime: p.DateTime,
			Comments: comments,
		})
	}
	slices.SortStableFunc(out, func(a, b PhotoView) int {
		return b.DateTime.Compare(a.DateTime)
	})
	return out, nil
}

// loadAuthors resolves every distinct comment author with one query.
func (s *aggregationService) loadAuthors(dbc dbctx.Context, photos []*types.Photo) (map[uuid.UUID]*UserRef, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, p := range photos {
		for _, c := range p.CommentList() {
			if _, ok := seen[c.UserID]; ok {
				continue
			}
			seen[c.UserID] = struct{}{}
			ids = append(ids, c.UserID)
		}
	}
	out := make(map[uuid.UUID]*UserRef, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	users, err := s.userRepo.GetByIDs(dbc, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u == nil {
			continue
		}
		out[u.ID] = &UserRef{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
	}
	if missing := len(ids) - len(out); missing > 0 {
		s.log.Warn("Comment authors not found", "missing", missing)
	}
	return out, nil
}

func (s *aggregationService) CommentsOfUser(dbc dbctx.Context, userID uuid.UUID) ([]UserComment, error) {
	const op = "CommentsOfUser"
	if err := s.requireUser(dbc, op, userID); err != nil {
		return nil, err
	}
	photos, err := s.photoRepo.List(dbc)
	if err != nil {
		return nil, apierr.FromStore(op, err)
	}
	out := []UserComment{}
	for _, p := range photos {
		if p == nil {
			continue
		}
		for _, c := range p.CommentList() {
			if c.UserID != userID {
				continue
			}
			out = append(out, UserComment{
				ID:            c.ID,
				CommentText:   c.Comment,
				DateTime:      c.DateTime,
				PhotoID:       p.ID,
				PhotoOwnerID:  p.UserID,
				PhotoFileName: p.FileName,
			})
		}
	}
	slices.SortStableFunc(out, func(a, b UserComment) int {
		return b.DateTime.Compare(a.DateTime)
	})
	return out, nil
}

func (s *aggregationService) requireUser(dbc dbctx.Context, op string, userID uuid.UUID) error {
	users, err := s.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return apierr.FromStore(op, err)
	}
	if len(users) == 0 || users[0] == nil {
		return apierr.UserNotFound(op, userID)
	}
	return nil
}
