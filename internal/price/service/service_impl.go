package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/capstore/capstore/internal/clock"
	"github.com/capstore/capstore/internal/observability/metrics"
	"github.com/capstore/capstore/internal/price/domain"
	"github.com/capstore/capstore/pkg/db"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Cache   domain.Cache
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	cache   domain.Cache
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("price.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		cache:   p.Cache,
		metrics: p.Metrics,
	}
}

func (s *Service) SetPrice(ctx context.Context, req domain.SetPriceRequest) (*domain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	if req.Value.IsNegative() {
		return nil, domain.ErrInvalidValue
	}

	now := s.clock.Now().UTC()
	startAt := now
	if req.StartAt != nil {
		startAt = req.StartAt.UTC()
	}

	newRow := &domain.Price{
		ID:        s.genID.Generate().Int64(),
		ProductID: productID.Int64(),
		Value:     req.Value,
		StartAt:   startAt,
		EndAt:     domain.SentinelEnd,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	superseded := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.ProductExists(ctx, tx, productID.Int64())
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrProductNotFound
		}

		actives, err := s.repo.FindActive(ctx, tx, productID.Int64())
		if err != nil {
			return err
		}
		if len(actives) > 0 {
			// More than one active row means a prior invariant violation;
			// close the chronologically last one so the choice is
			// deterministic, and leave the violation visible to reads.
			prev := actives[0]
			if len(actives) > 1 {
				s.log.Warn("multiple active prices found",
					zap.String("product_id", productID.String()),
					zap.Int("count", len(actives)),
				)
			}

			if startAt.Before(prev.StartAt) {
				return domain.ErrInvalidStart
			}

			affected, err := s.repo.CloseActive(ctx, tx, prev.ID, startAt, now)
			if err != nil {
				return err
			}
			if affected == 0 {
				return domain.ErrPriceConflict
			}
			superseded = true
		}

		if err := s.repo.Create(ctx, tx, newRow); err != nil {
			// A partial unique index guards the no-previous-row race: two
			// first-ever writers cannot both insert an active row.
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrPriceConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		if err == domain.ErrPriceConflict {
			s.metrics.RecordPriceConflict(ctx)
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, productID.Int64())
	if superseded {
		s.metrics.RecordPriceSupersession(ctx)
	}

	s.log.Info("price set",
		zap.String("product_id", productID.String()),
		zap.String("value", req.Value.StringFixed(2)),
		zap.Time("start_at", startAt),
	)

	resp := toResponse(newRow)
	return &resp, nil
}

func (s *Service) CurrentPrice(ctx context.Context, productID string) (*domain.Response, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(productID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	if cached, ok := s.cache.GetCurrent(ctx, id.Int64()); ok {
		return cached, nil
	}

	actives, err := s.repo.FindActive(ctx, s.db, id.Int64())
	if err != nil {
		return nil, err
	}

	switch len(actives) {
	case 0:
		exists, err := s.repo.ProductExists(ctx, s.db, id.Int64())
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrProductNotFound
		}
		s.metrics.RecordCurrentPriceMiss(ctx, "no_active_price")
		return nil, domain.ErrNoActivePrice
	case 1:
		resp := toResponse(&actives[0])
		s.cache.SetCurrent(ctx, id.Int64(), &resp)
		return &resp, nil
	default:
		s.log.Error("active price invariant violated",
			zap.String("product_id", id.String()),
			zap.Int("count", len(actives)),
		)
		return nil, domain.ErrMultipleActivePrices
	}
}

func (s *Service) History(ctx context.Context, productID string) ([]domain.Response, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(productID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	exists, err := s.repo.ProductExists(ctx, s.db, id.Int64())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrProductNotFound
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

func toResponse(p *domain.Price) domain.Response {
	return domain.Response{
		ID:        snowflake.ID(p.ID).String(),
		ProductID: snowflake.ID(p.ProductID).String(),
		Value:     p.Value,
		StartAt:   p.StartAt,
		EndAt:     p.EndAt,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
