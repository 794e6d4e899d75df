package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/capstore/capstore/internal/clock"
	"github.com/capstore/capstore/internal/media/domain"
	"github.com/capstore/capstore/pkg/db"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("media.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) AddPhoto(ctx context.Context, req domain.AddPhotoRequest) (*domain.PhotoResponse, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	if !validURL(req.URL) {
		return nil, domain.ErrInvalidURL
	}

	photo := &domain.DetailPhoto{
		ID:        s.genID.Generate().Int64(),
		ProductID: productID.Int64(),
		URL:       strings.TrimSpace(req.URL),
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.repo.CreatePhoto(ctx, s.db, photo); err != nil {
		if db.IsForeignKeyErr(err) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	resp := toPhotoResponse(photo)
	return &resp, nil
}

func (s *Service) ListPhotos(ctx context.Context, productID string) ([]domain.PhotoResponse, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(productID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	items, err := s.repo.FindPhotosByProduct(ctx, s.db, id.Int64())
	if err != nil {
		return nil, err
	}

	resp := make([]domain.PhotoResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toPhotoResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) DeletePhoto(ctx context.Context, id string) error {
	photoID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	photo, err := s.repo.FindPhotoByID(ctx, s.db, photoID.Int64())
	if err != nil {
		return err
	}
	if photo == nil {
		return domain.ErrNotFound
	}
	return s.repo.DeletePhoto(ctx, s.db, photoID.Int64())
}

func (s *Service) CreateLink(ctx context.Context, req domain.CreateLinkRequest) (*domain.LinkResponse, error) {
	if !validURL(req.URL) {
		return nil, domain.ErrInvalidURL
	}

	var coverPtr *string
	if req.CoverURL != nil {
		cover := strings.TrimSpace(*req.CoverURL)
		if cover != "" {
			coverPtr = &cover
		}
	}

	link := &domain.Link{
		ID:        s.genID.Generate().Int64(),
		URL:       strings.TrimSpace(req.URL),
		CoverURL:  coverPtr,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.repo.CreateLink(ctx, s.db, link); err != nil {
		return nil, err
	}

	resp := toLinkResponse(link)
	return &resp, nil
}

func (s *Service) ListLinks(ctx context.Context) ([]domain.LinkResponse, error) {
	items, err := s.repo.FindAllLinks(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.LinkResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toLinkResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) DeleteLink(ctx context.Context, id string) error {
	linkID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteLink(ctx, s.db, linkID.Int64())
}

func toPhotoResponse(p *domain.DetailPhoto) domain.PhotoResponse {
	return domain.PhotoResponse{
		ID:        snowflake.ID(p.ID).String(),
		ProductID: snowflake.ID(p.ProductID).String(),
		URL:       p.URL,
		CreatedAt: p.CreatedAt,
	}
}

func toLinkResponse(l *domain.Link) domain.LinkResponse {
	return domain.LinkResponse{
		ID:        snowflake.ID(l.ID).String(),
		URL:       l.URL,
		CoverURL:  l.CoverURL,
		CreatedAt: l.CreatedAt,
	}
}

func validURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
