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
	"github.com/capstore/capstore/internal/order/domain"
	"github.com/capstore/capstore/internal/usercontext"
	"github.com/capstore/capstore/pkg/db"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("order.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, domain.ErrUnauthorized
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, domain.ErrInvalidAddress
	}
	if req.Total.IsNegative() {
		return nil, domain.ErrInvalidTotal
	}
	if len(req.Items) == 0 {
		return nil, domain.ErrNoItems
	}

	now := s.clock.Now().UTC()
	order := &domain.Order{
		ID:        s.genID.Generate().Int64(),
		UserID:    userID.Int64(),
		Status:    false,
		Total:     req.Total,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, item := range req.Items {
		stockID, err := snowflake.ParseString(strings.TrimSpace(item.StockID))
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		order.Details = append(order.Details, domain.OrderDetail{
			ID:       s.genID.Generate().Int64(),
			OrderID:  order.ID,
			StockID:  stockID.Int64(),
			Quantity: item.Quantity,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, order)
	})
	if err != nil {
		if db.IsForeignKeyErr(err) {
			return nil, domain.ErrStockNotFound
		}
		return nil, err
	}

	s.metrics.RecordOrderCreated(ctx)
	s.log.Info("order created",
		zap.String("order_id", snowflake.ID(order.ID).String()),
		zap.String("user_id", userID.String()),
		zap.Int("items", len(order.Details)),
	)

	resp := toResponse(order)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, domain.ErrUnauthorized
	}

	items, err := s.repo.FindByUser(ctx, s.db, userID.Int64())
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
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, domain.ErrUnauthorized
	}

	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, orderID.Int64())
	if err != nil {
		return nil, err
	}
	// Another user's order is indistinguishable from a missing one.
	if item == nil || item.UserID != userID.Int64() {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(item)
	return &resp, nil
}

func toResponse(o *domain.Order) domain.Response {
	resp := domain.Response{
		ID:        snowflake.ID(o.ID).String(),
		Status:    o.Status,
		Total:     o.Total,
		Address:   o.Address,
		Items:     make([]domain.ItemResponse, 0, len(o.Details)),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	for _, d := range o.Details {
		resp.Items = append(resp.Items, domain.ItemResponse{
			ID:       snowflake.ID(d.ID).String(),
			StockID:  snowflake.ID(d.StockID).String(),
			Quantity: d.Quantity,
		})
	}
	return resp
}
