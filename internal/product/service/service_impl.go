package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	branddomain "github.com/capstore/capstore/internal/brand/domain"
	"github.com/capstore/capstore/internal/clock"
	"github.com/capstore/capstore/internal/config"
	mediadomain "github.com/capstore/capstore/internal/media/domain"
	pricedomain "github.com/capstore/capstore/internal/price/domain"
	"github.com/capstore/capstore/internal/product/domain"
	"github.com/capstore/capstore/pkg/db"
	"github.com/capstore/capstore/pkg/db/pagination"
)

type Params struct {
	fx.In

	Config config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Repo   domain.Repository
	Prices pricedomain.Service
	Media  mediadomain.Service
}

type Service struct {
	featuredName string
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         domain.Repository
	prices       pricedomain.Service
	media        mediadomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		featuredName: p.Config.FeaturedProductName,
		db:           p.DB,
		log:          p.Log.Named("product.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		prices:       p.Prices,
		media:        p.Media,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	brands, err := parseBrands(req.BrandIDs)
	if err != nil {
		return nil, err
	}

	description := trimPtr(req.Description)
	cover := trimPtr(req.CoverURL)

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := s.clock.Now().UTC()
	p := &domain.Product{
		ID:          s.genID.Generate().Int64(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
		CoverURL:    cover,
		Active:      active,
		Brands:      brands,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, s.db, p); err != nil {
		if db.IsDuplicateKeyErr(err) {
			// Slug collision with another product of the same name.
			p.Slug = p.Slug + "-" + snowflake.ID(p.ID).String()
			err = s.repo.Create(ctx, s.db, p)
		}
		if err != nil {
			if db.IsForeignKeyErr(err) {
				return nil, domain.ErrBrandNotFound
			}
			return nil, err
		}
	}

	s.log.Info("product created", zap.String("product_id", snowflake.ID(p.ID).String()))
	resp := s.toResponse(p)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	sortBy := strings.ToLower(strings.TrimSpace(req.SortBy))
	switch sortBy {
	case "", "id", "price":
	default:
		return nil, domain.ErrInvalidSort
	}

	page := req.Page.Normalize()
	items, total, err := s.repo.List(ctx, s.db, domain.ListFilter{
		Search:  strings.TrimSpace(req.Search),
		SortBy:  sortBy,
		OrderBy: strings.TrimSpace(req.OrderBy),
		Offset:  page.Offset(),
		Limit:   page.Limit(),
	})
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, s.toResponse(&items[i]))
	}

	return &domain.ListResponse{
		Items:    resp,
		PageInfo: pagination.BuildPageInfo(page, total),
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.DetailResponse, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	detail := domain.DetailResponse{
		Response: s.toResponse(item),
		Photos:   []domain.Photo{},
	}

	current, err := s.prices.CurrentPrice(ctx, id)
	switch err {
	case nil:
		value := current.Value
		detail.CurrentPrice = &value
	case pricedomain.ErrNoActivePrice, pricedomain.ErrProductNotFound:
		// Never priced; the detail still renders.
	default:
		return nil, err
	}

	photos, err := s.media.ListPhotos(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, photo := range photos {
		detail.Photos = append(detail.Photos, domain.Photo{ID: photo.ID, URL: photo.URL})
	}

	return &detail, nil
}

func (s *Service) Featured(ctx context.Context) ([]domain.Response, error) {
	if s.featuredName == "" {
		return []domain.Response{}, nil
	}

	items, err := s.repo.FindByName(ctx, s.db, s.featuredName)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, s.toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
		item.Slug = slug.Make(name)
	}
	if req.Description != nil {
		item.Description = trimPtr(req.Description)
	}
	if req.CoverURL != nil {
		item.CoverURL = trimPtr(req.CoverURL)
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	item.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			item.Slug = item.Slug + "-" + snowflake.ID(item.ID).String()
			err = s.repo.Update(ctx, s.db, item)
		}
		if err != nil {
			return nil, err
		}
	}

	if req.BrandIDs != nil {
		brands, err := parseBrands(req.BrandIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceBrands(ctx, s.db, item, brands); err != nil {
			if db.IsForeignKeyErr(err) {
				return nil, domain.ErrBrandNotFound
			}
			return nil, err
		}
		item.Brands = brands
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) Archive(ctx context.Context, id string) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	item.Active = false
	item.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, productID.Int64())
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, productID.Int64()); err != nil {
		if db.IsForeignKeyErr(err) {
			return domain.ErrDeletionBlocked
		}
		return err
	}

	s.log.Info("product deleted", zap.String("product_id", id))
	return nil
}

func (s *Service) toResponse(p *domain.Product) domain.Response {
	resp := domain.Response{
		ID:          snowflake.ID(p.ID).String(),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		CoverURL:    p.CoverURL,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	for _, b := range p.Brands {
		resp.Brands = append(resp.Brands, domain.BrandRef{
			ID:   snowflake.ID(b.ID).String(),
			Name: b.Name,
		})
	}
	return resp
}

func parseBrands(ids []string) ([]branddomain.Brand, error) {
	brands := make([]branddomain.Brand, 0, len(ids))
	for _, raw := range ids {
		id, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		brands = append(brands, branddomain.Brand{ID: id.Int64()})
	}
	return brands, nil
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
