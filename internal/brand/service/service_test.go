package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/capstore/capstore/internal/brand/domain"
	"github.com/capstore/capstore/internal/brand/repository"
	"github.com/capstore/capstore/internal/clock"
	productdomain "github.com/capstore/capstore/internal/product/domain"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared&_fk=1"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&domain.Brand{}, &productdomain.Product{}); err != nil {
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
		Clock: clock.NewFakeClock(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(),
	})
	return svc, gdb, node
}

func TestCreateAndGetBrand(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{Name: "  Northwind  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Northwind" {
		t.Fatalf("name = %q, want trimmed", created.Name)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("id = %s, want %s", got.ID, created.ID)
	}
}

func TestCreateBrandValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, domain.CreateRequest{Name: "   "}); err != domain.ErrInvalidName {
		t.Fatalf("err = %v, want ErrInvalidName", err)
	}

	if _, err := svc.Create(ctx, domain.CreateRequest{Name: "Acme"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, domain.CreateRequest{Name: "Acme"}); err != domain.ErrBrandExists {
		t.Fatalf("err = %v, want ErrBrandExists", err)
	}
}

func TestDeleteBrandBlockedWhileReferenced(t *testing.T) {
	svc, gdb, node := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{Name: "Acme"})
	if err != nil {
		t.Fatalf("create brand: %v", err)
	}

	brandID, _ := snowflake.ParseString(created.ID)
	p := &productdomain.Product{
		ID:     node.Generate().Int64(),
		Name:   "hoodie",
		Slug:   "hoodie",
		Active: true,
		Brands: []domain.Brand{{ID: brandID.Int64(), Name: "Acme"}},
	}
	if err := gdb.Create(p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != domain.ErrDeletionBlocked {
		t.Fatalf("err = %v, want ErrDeletionBlocked", err)
	}

	// Once the product no longer references the brand the delete goes
	// through.
	if err := gdb.Model(p).Association("Brands").Clear(); err != nil {
		t.Fatalf("clear brands: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); err != domain.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
