package services

import (
	"github.com/yungbote/photoshare-backend/internal/data/repos"
	types "github.com/yungbote/photoshare-backend/internal/domain"
	"github.com/yungbote/photoshare-backend/internal/platform/apierr"
	"github.com/yungbote/photoshare-backend/internal/platform/dbctx"
	"github.com/yungbote/photoshare-backend/internal/platform/logger"
)

type CollectionCounts struct {
	User       int64 `json:"user"`
	Photo      int64 `json:"photo"`
	SchemaInfo int64 `json:"schemaInfo"`
}

// MetaService reports what fixture data is loaded.
type MetaService interface {
	SchemaInfo(dbc dbctx.Context) (*types.SchemaInfo, error)
	Counts(dbc dbctx.Context) (*CollectionCounts, error)
}

type metaService struct {
	log            *logger.Logger
	userRepo       repos.UserRepo
	photoRepo      repos.PhotoRepo
	schemaInfoRepo repos.SchemaInfoRepo
}

func NewMetaService(log *logger.Logger, userRepo repos.UserRepo, photoRepo repos.PhotoRepo, schemaInfoRepo repos.SchemaInfoRepo) MetaService {
	return &metaService{
		log:            log.With("service", "MetaService"),
		userRepo:       userRepo,
		photoRepo:      photoRepo,
		schemaInfoRepo: schemaInfoRepo,
	}
}

func (ms *metaService) SchemaInfo(dbc dbctx.Context) (*types.SchemaInfo, error) {
	const op = "SchemaInfo"
	info, err := ms.schemaInfoRepo.GetLatest(dbc)
	if err != nil {
		return nil, apierr.FromStore(op, err)
	}
	if info == nil {
		e := apierr.New(apierr.CodeNotFound, op, "schema info not loaded", nil)
		e.Field = "schema_info"
		return nil, e
	}
	return info, nil
}

func (ms *metaService) Counts(dbc dbctx.Context) (*CollectionCounts, error) {
	const op = "Counts"
	var out CollectionCounts
	var err error
	if out.User, err = ms.userRepo.Count(dbc); err != nil {
		return nil, apierr.FromStore(op, err)
	}
	if out.Photo, err = ms.photoRepo.Count(dbc); err != nil {
		return nil, apierr.FromStore(op, err)
	}
	if out.SchemaInfo, err = ms.schemaInfoRepo.Count(dbc); err != nil {
		return nil, apierr.FromStore(op, err)
	}
	return &out, nil
}
