package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/marketnest/internal/models"
	"github.com/marketnest/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newWishlistTestEnv(t *testing.T, name string) (*WishlistService, *repository.GormProductRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:wishlist_service_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Brand{}, &models.Product{}, &models.WishlistItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	productRepo := repository.NewProductRepository(db)
	return NewWishlistService(repository.NewWishlistRepository(db), productRepo), productRepo
}

func TestToggleAddsThenRemoves(t *testing.T) {
	service, productRepo := newWishlistTestEnv(t, "toggle")
	product := &models.Product{
		CategoryID: 1,
		Slug:       "headphones",
		Name:       "Headphones",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(120)),
		Stock:      5,
		IsActive:   true,
	}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	saved, err := service.Toggle(1, product.ID)
	if err != nil {
		t.Fatalf("toggle on failed: %v", err)
	}
	if !saved {
		t.Fatalf("first toggle should add")
	}

	items, err := service.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != product.ID {
		t.Fatalf("unexpected wishlist: %+v", items)
	}
	if items[0].Name != "Headphones" {
		t.Fatalf("snapshot name want Headphones got %q", items[0].Name)
	}

	saved, err = service.Toggle(1, product.ID)
	if err != nil {
		t.Fatalf("toggle off failed: %v", err)
	}
	if saved {
		t.Fatalf("second toggle should remove")
	}

	contains, err := service.Contains(1, product.ID)
	if err != nil {
		t.Fatalf("contains failed: %v", err)
	}
	if contains {
		t.Fatalf("item should be gone after double toggle")
	}

	// 移出后同键可重新加入
	saved, err = service.Toggle(1, product.ID)
	if err != nil {
		t.Fatalf("toggle back on failed: %v", err)
	}
	if !saved {
		t.Fatalf("third toggle should add again")
	}
}

func TestToggleUnknownProduct(t *testing.T) {
	service, _ := newWishlistTestEnv(t, "unknown")
	if _, err := service.Toggle(1, 404); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}

func TestRemoveAndClearAreIdempotent(t *testing.T) {
	service, productRepo := newWishlistTestEnv(t, "idempotent")
	product := &models.Product{
		CategoryID: 1,
		Slug:       "keyboard",
		Name:       "Keyboard",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(80)),
		Stock:      5,
		IsActive:   true,
	}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	// 未收藏时移除不报错
	if err := service.Remove(1, product.ID); err != nil {
		t.Fatalf("remove missing item should be silent: %v", err)
	}

	if _, err := service.Toggle(1, product.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := service.Clear(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := service.Clear(1); err != nil {
		t.Fatalf("second clear should be silent: %v", err)
	}

	items, err := service.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("wishlist should be empty, got %d", len(items))
	}
}
