package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/capstore/capstore/internal/clock"
	"github.com/capstore/capstore/internal/stock/domain"
	"github.com/capstore/capstore/pkg/db"
)

const defaultColor = "#FF0000"

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

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
		log:   p.Log.Named("stock.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	size := domain.Size(strings.ToUpper(strings.TrimSpace(req.Size)))
	if !domain.ValidSize(size) {
		return nil, domain.ErrInvalidSize
	}

	color := strings.ToUpper(strings.TrimSpace(req.Color))
	if color == "" {
		color = defaultColor
	}
	if !hexColorPattern.MatchString(color) {
		return nil, domain.ErrInvalidColor
	}

	now := s.clock.Now().UTC()
	stock := &domain.Stock{
		ID:        s.genID.Generate().Int64(),
		ProductID: productID.Int64(),
		Size:      size,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, s.db, stock); err != nil {
		if db.IsForeignKeyErr(err) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	resp := toResponse(stock)
	return &resp, nil
}

func (s *Service) ListByProduct(ctx context.Context, productID string) ([]domain.Response, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(productID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	items, err := s.repo.FindByProduct(ctx, s.db, id.Int64())
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	stockID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, stockID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	stockID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, stockID.Int64())
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, stockID.Int64()); err != nil {
		if db.IsForeignKeyErr(err) {
			return domain.ErrDeletionBlocked
		}
		return err
	}
	return nil
}

func toResponse(s *domain.Stock) domain.Response {
	return domain.Response{
		ID:        snowflake.ID(s.ID).String(),
		ProductID: snowflake.ID(s.ProductID).String(),
		Size:      s.Size,
		Color:     s.Color,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
