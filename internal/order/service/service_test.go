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

	"github.com/capstore/capstore/internal/clock"
	"github.com/capstore/capstore/internal/order/domain"
	"github.com/capstore/capstore/internal/order/repository"
	stockdomain "github.com/capstore/capstore/internal/stock/domain"
	"github.com/capstore/capstore/internal/usercontext"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&stockdomain.Stock{}, &domain.Order{}, &domain.OrderDetail{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(),
	})
	return svc, gdb, node
}

func createStock(t *testing.T, gdb *gorm.DB, node *snowflake.Node) snowflake.ID {
	t.Helper()

	id := node.Generate()
	s := &stockdomain.Stock{
		ID:        id.Int64(),
		ProductID: node.Generate().Int64(),
		Size:      stockdomain.SizeMedium,
		Color:     "#00FF00",
	}
	if err := gdb.Create(s).Error; err != nil {
		t.Fatalf("create stock: %v", err)
	}
	return id
}

func asUser(userID snowflake.ID) context.Context {
	return usercontext.WithUserID(context.Background(), userID.Int64())
}

func TestCreateOrderPersistsDetails(t *testing.T) {
	svc, gdb, node := newTestService(t)
	user := node.Generate()
	stockID := createStock(t, gdb, node)

	resp, err := svc.Create(asUser(user), domain.CreateRequest{
		Address: "1 Main St",
		Total:   decimal.NewFromInt(250),
		Items: []domain.CreateItem{
			{StockID: stockID.String(), Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Quantity != 2 {
		t.Fatalf("items = %+v, want one line of quantity 2", resp.Items)
	}

	var detailCount int64
	if err := gdb.Model(&domain.OrderDetail{}).Count(&detailCount).Error; err != nil {
		t.Fatalf("count details: %v", err)
	}
	if detailCount != 1 {
		t.Fatalf("detail rows = %d, want 1", detailCount)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	svc, gdb, node := newTestService(t)
	user := node.Generate()
	stockID := createStock(t, gdb, node)

	cases := []struct {
		name string
		req  domain.CreateRequest
		want error
	}{
		{"missing address", domain.CreateRequest{Total: decimal.NewFromInt(1), Items: []domain.CreateItem{{StockID: stockID.String(), Quantity: 1}}}, domain.ErrInvalidAddress},
		{"negative total", domain.CreateRequest{Address: "x", Total: decimal.NewFromInt(-1), Items: []domain.CreateItem{{StockID: stockID.String(), Quantity: 1}}}, domain.ErrInvalidTotal},
		{"no items", domain.CreateRequest{Address: "x", Total: decimal.NewFromInt(1)}, domain.ErrNoItems},
		{"zero quantity", domain.CreateRequest{Address: "x", Total: decimal.NewFromInt(1), Items: []domain.CreateItem{{StockID: stockID.String(), Quantity: 0}}}, domain.ErrInvalidQuantity},
		{"bad stock id", domain.CreateRequest{Address: "x", Total: decimal.NewFromInt(1), Items: []domain.CreateItem{{StockID: "nope", Quantity: 1}}}, domain.ErrInvalidID},
	}
	for _, tc := range cases {
		if _, err := svc.Create(asUser(user), tc.req); err != tc.want {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestCreateOrderRequiresIdentity(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Address: "1 Main St",
		Total:   decimal.NewFromInt(1),
		Items:   []domain.CreateItem{{StockID: "1", Quantity: 1}},
	})
	if err != domain.ErrUnauthorized {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.List(context.Background()); err != domain.ErrUnauthorized {
		t.Fatalf("list err = %v, want ErrUnauthorized", err)
	}
}

func TestOrdersScopedToOwner(t *testing.T) {
	svc, gdb, node := newTestService(t)
	alice := node.Generate()
	bob := node.Generate()
	stockID := createStock(t, gdb, node)

	created, err := svc.Create(asUser(bob), domain.CreateRequest{
		Address: "2 Side St",
		Total:   decimal.NewFromInt(99),
		Items:   []domain.CreateItem{{StockID: stockID.String(), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, err := svc.List(asUser(alice))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 0 {
		t.Fatalf("alice sees %d of bob's orders", len(mine))
	}

	if _, err := svc.Get(asUser(alice), created.ID); err != domain.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound for another user's order", err)
	}

	own, err := svc.Get(asUser(bob), created.ID)
	if err != nil {
		t.Fatalf("get own order: %v", err)
	}
	if own.ID != created.ID {
		t.Fatalf("id = %s, want %s", own.ID, created.ID)
	}
}
