package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	branddomain "github.com/capstore/capstore/internal/brand/domain"
	"github.com/capstore/capstore/internal/clock"
	"github.com/capstore/capstore/internal/config"
	mediadomain "github.com/capstore/capstore/internal/media/domain"
	pricedomain "github.com/capstore/capstore/internal/price/domain"
	"github.com/capstore/capstore/internal/product/domain"
	"github.com/capstore/capstore/internal/product/repository"
	"github.com/capstore/capstore/pkg/db/pagination"
)

type stubPriceService struct {
	current map[string]decimal.Decimal
}

func (s *stubPriceService) SetPrice(ctx context.Context, req pricedomain.SetPriceRequest) (*pricedomain.Response, error) {
	return nil, nil
}

func (s *stubPriceService) CurrentPrice(ctx context.Context, productID string) (*pricedomain.Response, error) {
	value, ok := s.current[productID]
	if !ok {
		return nil, pricedomain.ErrNoActivePrice
	}
	return &pricedomain.Response{ProductID: productID, Value: value, Active: true}, nil
}

func (s *stubPriceService) History(ctx context.Context, productID string) ([]pricedomain.Response, error) {
	return nil, nil
}

type stubMediaService struct {
	mediadomain.Service
	photos map[string][]mediadomain.PhotoResponse
}

func (s *stubMediaService) ListPhotos(ctx context.Context, productID string) ([]mediadomain.PhotoResponse, error) {
	return s.photos[productID], nil
}

type env struct {
	svc    domain.Service
	db     *gorm.DB
	genID  *snowflake.Node
	prices *stubPriceService
	media  *stubMediaService
}

func newTestEnv(t *testing.T) *env {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&branddomain.Brand{}, &domain.Product{}, &pricedomain.Price{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	prices := &stubPriceService{current: map[string]decimal.Decimal{}}
	media := &stubMediaService{photos: map[string][]mediadomain.PhotoResponse{}}
	svc := New(Params{
		Config: config.Config{FeaturedProductName: "hoodie"},
		DB:     gdb,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  clock.NewFakeClock(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)),
		Repo:   repository.Provide(),
		Prices: prices,
		Media:  media,
	})
	return &env{svc: svc, db: gdb, genID: node, prices: prices, media: media}
}

func (e *env) createBrand(t *testing.T, name string) string {
	t.Helper()

	b := &branddomain.Brand{ID: e.genID.Generate().Int64(), Name: name}
	if err := e.db.Create(b).Error; err != nil {
		t.Fatalf("create brand: %v", err)
	}
	return snowflake.ID(b.ID).String()
}

func TestCreateProductDerivesSlug(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	created, err := e.svc.Create(ctx, domain.CreateRequest{Name: "Blue Winter Hoodie"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Slug != "blue-winter-hoodie" {
		t.Fatalf("slug = %q", created.Slug)
	}

	// Same name again gets a disambiguated slug rather than failing.
	second, err := e.svc.Create(ctx, domain.CreateRequest{Name: "Blue Winter Hoodie"})
	if err != nil {
		t.Fatalf("create duplicate name: %v", err)
	}
	if second.Slug == created.Slug {
		t.Fatalf("duplicate slug %q", second.Slug)
	}
}

func TestListSearchMatchesProductOrBrandName(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	brandID := e.createBrand(t, "Northwind")
	if _, err := e.svc.Create(ctx, domain.CreateRequest{Name: "hoodie", BrandIDs: []string{brandID}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := e.svc.Create(ctx, domain.CreateRequest{Name: "beanie"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	byProduct, err := e.svc.List(ctx, domain.ListRequest{Search: "hood"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byProduct.Items) != 1 || byProduct.Items[0].Name != "hoodie" {
		t.Fatalf("items = %+v, want only hoodie", byProduct.Items)
	}

	byBrand, err := e.svc.List(ctx, domain.ListRequest{Search: "Northwind"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byBrand.Items) != 1 || byBrand.Items[0].Name != "hoodie" {
		t.Fatalf("items = %+v, want only hoodie via brand", byBrand.Items)
	}
}

func TestListSortByPrice(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	cheap, err := e.svc.Create(ctx, domain.CreateRequest{Name: "beanie"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	dear, err := e.svc.Create(ctx, domain.CreateRequest{Name: "hoodie"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for id, value := range map[string]int64{cheap.ID: 10, dear.ID: 90} {
		parsed, _ := snowflake.ParseString(id)
		row := &pricedomain.Price{
			ID:        e.genID.Generate().Int64(),
			ProductID: parsed.Int64(),
			Value:     decimal.NewFromInt(value),
			StartAt:   time.Now().UTC(),
			EndAt:     pricedomain.SentinelEnd,
			Active:    true,
		}
		if err := e.db.Create(row).Error; err != nil {
			t.Fatalf("seed price: %v", err)
		}
	}

	resp, err := e.svc.List(ctx, domain.ListRequest{SortBy: "price", OrderBy: "desc"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(resp.Items))
	}
	if resp.Items[0].ID != dear.ID {
		t.Fatalf("first item = %s, want the expensive one", resp.Items[0].Name)
	}

	if _, err := e.svc.List(ctx, domain.ListRequest{SortBy: "name"}); err != domain.ErrInvalidSort {
		t.Fatalf("err = %v, want ErrInvalidSort", err)
	}
}

func TestListPagination(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		if _, err := e.svc.Create(ctx, domain.CreateRequest{Name: name}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	resp, err := e.svc.List(ctx, domain.ListRequest{Page: pagination.Page{Page: 1, PageSize: 2}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(resp.Items))
	}
	if resp.PageInfo.TotalItems != 3 || !resp.PageInfo.HasMore {
		t.Fatalf("page info = %+v", resp.PageInfo)
	}
}

func TestGetIncludesCurrentPriceAndPhotos(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	created, err := e.svc.Create(ctx, domain.CreateRequest{Name: "hoodie"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	e.prices.current[created.ID] = decimal.NewFromInt(120)
	e.media.photos[created.ID] = []mediadomain.PhotoResponse{
		{ID: "1", URL: "https://img.example/front.jpg"},
	}

	detail, err := e.svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.CurrentPrice == nil || !detail.CurrentPrice.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("current price = %v, want 120", detail.CurrentPrice)
	}
	if len(detail.Photos) != 1 {
		t.Fatalf("photos = %d, want 1", len(detail.Photos))
	}
}

func TestGetUnpricedProductHasNoCurrentPrice(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	created, err := e.svc.Create(ctx, domain.CreateRequest{Name: "beanie"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	detail, err := e.svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.CurrentPrice != nil {
		t.Fatalf("current price = %v, want nil", detail.CurrentPrice)
	}
}

func TestFeaturedUsesConfiguredPredicate(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	if _, err := e.svc.Create(ctx, domain.CreateRequest{Name: "hoodie"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := e.svc.Create(ctx, domain.CreateRequest{Name: "beanie"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	featured, err := e.svc.Featured(ctx)
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if len(featured) != 1 || featured[0].Name != "hoodie" {
		t.Fatalf("featured = %+v, want only hoodie", featured)
	}
}

func TestArchiveAndDelete(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	created, err := e.svc.Create(ctx, domain.CreateRequest{Name: "hoodie"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	archived, err := e.svc.Archive(ctx, created.ID)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if archived.Active {
		t.Fatal("archived product still active")
	}

	if err := e.svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := e.svc.Get(ctx, created.ID); err != domain.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteBlockedWhilePricesExist(t *testing.T) {
	// FK enforcement on, prices table declared with the RESTRICT FK the SQL
	// migrations use, since AutoMigrate does not derive one for plain int64
	// columns.
	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared&_fk=1"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&branddomain.Brand{}, &domain.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := gdb.Exec(`CREATE TABLE prices (
		id INTEGER PRIMARY KEY,
		product_id INTEGER NOT NULL REFERENCES products (id) ON DELETE RESTRICT,
		value NUMERIC NOT NULL,
		active BOOLEAN NOT NULL
	)`).Error; err != nil {
		t.Fatalf("create prices table: %v", err)
	}

	node, err := snowflake.NewNode(2)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	svc := New(Params{
		Config: config.Config{},
		DB:     gdb,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  clock.NewFakeClock(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)),
		Repo:   repository.Provide(),
		Prices: &stubPriceService{current: map[string]decimal.Decimal{}},
		Media:  &stubMediaService{photos: map[string][]mediadomain.PhotoResponse{}},
	})
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{Name: "hoodie"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	productID, err := snowflake.ParseString(created.ID)
	if err != nil {
		t.Fatalf("parse id: %v", err)
	}
	if err := gdb.Exec(`INSERT INTO prices (id, product_id, value, active) VALUES (?, ?, ?, ?)`,
		node.Generate().Int64(), productID.Int64(), "100", true).Error; err != nil {
		t.Fatalf("insert price: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != domain.ErrDeletionBlocked {
		t.Fatalf("err = %v, want ErrDeletionBlocked", err)
	}

	if err := gdb.Exec(`DELETE FROM prices WHERE product_id = ?`, productID.Int64()).Error; err != nil {
		t.Fatalf("clear prices: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete after clearing prices: %v", err)
	}
}
